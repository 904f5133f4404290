package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Default is the logger used by core components that were not given one.
var Default *slog.Logger

func init() {
	Default = New(Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	})
}

// Format represents the output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// New creates a new logger with the given configuration
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: toSlogLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record. Tests use it to keep
// output clean.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a flag value ("debug", "info", "warn", "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat converts a flag value ("text", "json") to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", s)
	}
}

// toSlogLevel converts our Level to slog.Level
func toSlogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OrDefault returns l, or Default when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Default
	}
	return l
}

// Debug logs a debug message using the default logger
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Info logs an info message using the default logger
func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

// Error logs an error message using the default logger
func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With creates a child logger with the given attributes
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}

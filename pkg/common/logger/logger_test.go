package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitcore/pkg/common/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config logger.Config
	}{
		{"debug_text", logger.Config{Level: logger.LevelDebug, Format: logger.FormatText, Output: &bytes.Buffer{}}},
		{"info_json", logger.Config{Level: logger.LevelInfo, Format: logger.FormatJSON, Output: &bytes.Buffer{}}},
		{"warn_text", logger.Config{Level: logger.LevelWarn, Format: logger.FormatText, Output: &bytes.Buffer{}}},
		{"nil_output", logger.Config{Level: logger.LevelError, Format: logger.FormatJSON}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.New(tt.config)
			require.NotNil(t, log)
			log.Info("test message", "key", "value")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{Level: logger.LevelWarn, Format: logger.FormatText, Output: buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{Level: logger.LevelInfo, Format: logger.FormatJSON, Output: buf})

	log.Info("stored object", "hash", "32f95c0d1244a78b2be1bab8de17906fabb2c4a8")

	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"msg":"stored object"`)
	assert.Contains(t, out, `"hash":"32f95c0d1244a78b2be1bab8de17906fabb2c4a8"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"INFO", logger.LevelInfo, false},
		{"", logger.LevelInfo, false},
		{"warning", logger.LevelWarn, false},
		{"error", logger.LevelError, false},
		{"loud", logger.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := logger.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	f, err = logger.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatText, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}

func TestOrDefault(t *testing.T) {
	assert.Same(t, logger.Default, logger.OrDefault(nil))

	l := logger.Discard()
	assert.Same(t, l, logger.OrDefault(l))
}

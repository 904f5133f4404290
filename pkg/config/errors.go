package config

import (
	"fmt"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
)

const (
	pkgName = "config"

	// Package-specific error codes
	CodeNotFoundErr      = scerr.CodeNotFound
	CodeInvalidFormatErr = scerr.CodeInvalidFormat
	CodeValidationErr    = scerr.CodeValidation
	CodeIOErr            = scerr.CodeIO
	CodeReadOnlyErr      = "READ_ONLY"
	CodeConversionErr    = "CONVERSION_FAILED"
	CodeInvalidLevelErr  = "INVALID_LEVEL"
)

// ConfigError represents a configuration-related error with detailed context
type ConfigError struct {
	base  *scerr.Error
	Path  string // file path if applicable
	Key   string // config key if applicable
	Level string // config level if applicable
}

// NewConfigError creates a new ConfigError
func NewConfigError(op, code, key, path, level string, underlying error) *ConfigError {
	return &ConfigError{
		base:  scerr.New(pkgName, code, op, "", underlying),
		Path:  path,
		Key:   key,
		Level: level,
	}
}

// NewInvalidFormatError reports a config file that could not be decoded or encoded.
func NewInvalidFormatError(op, path string, underlying error) *ConfigError {
	return NewConfigError(op, CodeInvalidFormatErr, "", path, "", underlying)
}

// NewValidationError reports a value that is well formed but unacceptable for its key.
func NewValidationError(key string, underlying error) *ConfigError {
	return NewConfigError("validate", CodeValidationErr, key, "", "", underlying)
}

// NewNotFoundError reports a missing key.
func NewNotFoundError(key, level string) *ConfigError {
	return NewConfigError("get", CodeNotFoundErr, key, "", level, ErrNotFound)
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.base.Error()
	if e.Key != "" {
		msg += fmt.Sprintf(" [key=%s]", e.Key)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	if e.Level != "" {
		msg += fmt.Sprintf(" [level=%s]", e.Level)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	// ErrNotFound indicates a configuration key was not found
	ErrNotFound = scerr.New(pkgName, CodeNotFoundErr, "", "configuration key not found", nil)

	// ErrInvalidFormat indicates the config file has invalid format
	ErrInvalidFormat = scerr.New(pkgName, CodeInvalidFormatErr, "", "invalid configuration format", nil)

	// ErrValidation indicates a configuration value is unacceptable
	ErrValidation = scerr.New(pkgName, CodeValidationErr, "", "invalid configuration value", nil)

	// ErrInvalidLevel indicates an invalid configuration level
	ErrInvalidLevel = scerr.New(pkgName, CodeInvalidLevelErr, "", "invalid configuration level", nil)

	// ErrReadOnly indicates an attempt to modify a read-only configuration
	ErrReadOnly = scerr.New(pkgName, CodeReadOnlyErr, "", "configuration is read-only", nil)

	// ErrConversion indicates a type conversion error
	ErrConversion = scerr.New(pkgName, CodeConversionErr, "", "configuration value conversion failed", nil)
)

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(e error) bool {
	return scerr.IsCode(e, CodeNotFoundErr)
}

// IsInvalidFormat returns true if the error is ErrInvalidFormat
func IsInvalidFormat(e error) bool {
	return scerr.IsCode(e, CodeInvalidFormatErr)
}

// IsValidation returns true if the error is ErrValidation
func IsValidation(e error) bool {
	return scerr.IsCode(e, CodeValidationErr)
}

// IsReadOnly returns true if the error is ErrReadOnly
func IsReadOnly(e error) bool {
	return scerr.IsCode(e, CodeReadOnlyErr)
}

// IsConversion returns true if the error is ErrConversion
func IsConversion(e error) bool {
	return scerr.IsCode(e, CodeConversionErr)
}

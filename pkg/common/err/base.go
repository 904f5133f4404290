package err

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every package of the object store.
//
// Each failure carries the package it came from, a machine-readable code
// from the taxonomy below, the operation that was running and, optionally,
// the underlying error.
type Error struct {
	// Package identifies the originating package (e.g., "objects", "store", "tree")
	Package string

	// Code is one of the Code* constants below.
	Code string

	// Op is the operation being performed when the error occurred
	// ("read", "write", "parse_header", "build_commit", ...).
	Op string

	// Message provides human-readable context. Keep it brief.
	Message string

	// Err is the underlying error. Can be nil for leaf errors.
	Err error

	// Context holds optional structured metadata about the error, such as
	// the object hash or the filesystem path involved.
	Context map[string]any
}

// Error implements the error interface.
// Format: [package][code] operation: message: wrapped_error
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Package)
		prefix.WriteString("]")
	}
	if e.Code != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Code)
		prefix.WriteString("]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")

	if e.Err != nil {
		if result != "" {
			result += ": " + e.Err.Error()
		} else {
			result = e.Err.Error()
		}
	}

	return result
}

// Unwrap returns the underlying error for errors.Is() and errors.As() support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors by code, so a package sentinel such as
// objects.ErrNotFound matches any NOT_FOUND error regardless of origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a key-value pair to the error's context.
// Returns the error for method chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves a value from the error's context.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New creates a new base error with the specified fields.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with package and operation context.
// Returns nil if err is nil.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Package: pkg,
		Op:      op,
		Err:     err,
	}
}

// WrapWithCode wraps an error with package, operation, and code.
// Returns nil if err is nil.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Err:     err,
	}
}

// Error taxonomy of the object store.
const (
	// CodeNotFound indicates a referenced hash has no stored object.
	CodeNotFound = "NOT_FOUND"

	// CodeInvalidFormat indicates malformed stored bytes: a header without a
	// separator, an unparseable size, an unknown kind token, invalid UTF-8
	// where text is required or a truncated NUL-terminated field.
	CodeInvalidFormat = "INVALID_FORMAT"

	// CodeValidation indicates an object exists but has the wrong kind, or
	// caller-supplied data was rejected.
	CodeValidation = "VALIDATION"

	// CodeIO indicates an underlying filesystem or compression failure.
	CodeIO = "IO"

	// CodeInvalidInput indicates invalid caller parameters.
	CodeInvalidInput = "INVALID_INPUT"
)

// NotFound builds a NOT_FOUND error.
func NotFound(pkg, op, message string, err error) *Error {
	return New(pkg, CodeNotFound, op, message, err)
}

// InvalidFormat builds an INVALID_FORMAT error.
func InvalidFormat(pkg, op, message string, err error) *Error {
	return New(pkg, CodeInvalidFormat, op, message, err)
}

// Validation builds a VALIDATION error.
func Validation(pkg, op, message string, err error) *Error {
	return New(pkg, CodeValidation, op, message, err)
}

// IO builds an IO error. Returns nil if err is nil, so it can wrap the
// result of a filesystem call directly.
func IO(pkg, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(pkg, CodeIO, op, "", err)
}

// IsCode checks if an error has a specific error code.
// Works with wrapped errors.
func IsCode(err error, code string) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// GetCode extracts the outermost error code from an error.
// Returns empty string if the error is not a base Error.
func GetCode(err error) string {
	var e *Error
	for errors.As(err, &e) {
		if e.Code != "" {
			return e.Code
		}
		err = e.Err
	}
	return ""
}

// GetPackage extracts the package name from an error.
func GetPackage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Package
	}
	return ""
}

// GetOp extracts the operation from an error.
func GetOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

package objects

import (
	"errors"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
)

const pkgName = "objects"

// Sentinels for errors.Is. They match any error in the chain carrying the
// same code, whichever package produced it.
var (
	ErrNotFound      = &scerr.Error{Code: scerr.CodeNotFound, Message: "object not found"}
	ErrInvalidFormat = &scerr.Error{Code: scerr.CodeInvalidFormat, Message: "malformed object"}
	ErrValidation    = &scerr.Error{Code: scerr.CodeValidation, Message: "unexpected object kind"}
	ErrIO            = &scerr.Error{Code: scerr.CodeIO, Message: "i/o failure"}
)

// IsNotFound reports whether err means a referenced object is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidFormat reports whether err means stored bytes are malformed.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsValidation reports whether err means an object had the wrong kind.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsIO reports whether err is an underlying filesystem or compression failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

func formatError(op, msg string, err error) error {
	return scerr.InvalidFormat(pkgName, op, msg, err)
}

package commitmanager

import (
	"fmt"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

const pkgName = "commitmanager"

// CommitError represents an error that occurred during commit operations
type CommitError struct {
	Op      string // Operation that failed
	Err     error  // Underlying error
	Details string // Additional details
}

// Error implements the error interface
func (e *CommitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("commit %s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("commit %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a new CommitError
func NewCommitError(op string, err error, details string) error {
	return &CommitError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// kindMismatch reports an object that exists but has the wrong kind.
func kindMismatch(op string, hash objects.ObjectHash, want, got objects.ObjectKind) error {
	return scerr.Validation(pkgName, op,
		fmt.Sprintf("object %s is a %s, not a %s", hash.Short(), got, want), nil).
		WithContext("hash", hash.String())
}

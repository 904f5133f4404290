package sourcerepo

import (
	"fmt"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
)

// RepoError records the repository path an operation failed on.
type RepoError struct {
	Op   string
	Path scpath.RepositoryPath
	Err  error
}

func (e *RepoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RepoError) Unwrap() error {
	return e.Err
}

// NewRepoError wraps err with the operation and repository path.
func NewRepoError(op string, path scpath.RepositoryPath, err error) error {
	if err == nil {
		return nil
	}
	return &RepoError{Op: op, Path: path, Err: err}
}

// IsNotRepository reports whether err means no .source directory was found.
func IsNotRepository(err error) bool {
	if !scerr.IsCode(err, scerr.CodeNotFound) || scerr.GetPackage(err) != pkgName {
		return false
	}
	op := scerr.GetOp(err)
	return op == "open" || op == "find"
}

// IsAlreadyInitialized reports whether Initialize found an existing
// repository.
func IsAlreadyInitialized(err error) bool {
	return scerr.IsCode(err, scerr.CodeInvalidInput) && scerr.GetPackage(err) == pkgName
}

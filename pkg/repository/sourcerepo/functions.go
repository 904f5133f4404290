package sourcerepo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/common/fileops"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
)

// FindRepository searches for a repository by traversing up the directory
// tree from startPath and opens the nearest one.
func FindRepository(ctx context.Context, startPath scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	o := buildOptions(opts)
	currentPath := startPath.String()

	for {
		repoPath, err := scpath.NewRepositoryPath(currentPath)
		if err != nil {
			return nil, scerr.IO(pkgName, "find", err)
		}

		exists, err := repositoryExists(o.fs, repoPath)
		if err != nil {
			return nil, NewRepoError("find", repoPath, err)
		}
		if exists {
			return newSourceRepository(ctx, repoPath, o)
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			return nil, scerr.NotFound(pkgName, "find",
				fmt.Sprintf("not a source repository (or any of the parent directories): %s", startPath), nil)
		}
		currentPath = parentPath
	}
}

// RepositoryExists checks whether path holds a .source directory.
func RepositoryExists(fsys afero.Fs, path scpath.RepositoryPath) (bool, error) {
	return repositoryExists(fsys, path)
}

func repositoryExists(fsys afero.Fs, path scpath.RepositoryPath) (bool, error) {
	ok, err := fileops.IsDirectory(fsys, path.SourcePath().String())
	if err != nil {
		return false, scerr.IO(pkgName, "exists", err)
	}
	return ok, nil
}

// Open opens the repository rooted at path.
func Open(ctx context.Context, path scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	o := buildOptions(opts)

	exists, err := repositoryExists(o.fs, path)
	if err != nil {
		return nil, NewRepoError("open", path, err)
	}
	if !exists {
		return nil, scerr.NotFound(pkgName, "open", fmt.Sprintf("not a source repository: %s", path), nil).
			WithContext("path", path.String())
	}

	return newSourceRepository(ctx, path, o)
}

// Initialize creates .source/objects, .source/refs and HEAD under path and opens the new
// repository. It fails when path already holds one.
func Initialize(ctx context.Context, path scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	o := buildOptions(opts)

	exists, err := repositoryExists(o.fs, path)
	if err != nil {
		return nil, NewRepoError("init", path, err)
	}
	if exists {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "init",
			fmt.Sprintf("already a source repository: %s", path), nil).
			WithContext("path", path.String())
	}

	if err := fileops.EnsureDir(o.fs, path.SourcePath().ObjectsPath().String()); err != nil {
		return nil, scerr.IO(pkgName, "init", err)
	}

	repo, err := newSourceRepository(ctx, path, o)
	if err != nil {
		return nil, err
	}
	if err := repo.refs.Init(); err != nil {
		return nil, err
	}
	return repo, nil
}

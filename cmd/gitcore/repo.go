package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/gitcore/pkg/common"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
	"github.com/utkarsh5026/gitcore/pkg/repository/sourcerepo"
)

// commitClock timestamps commits created by commit-tree.
var commitClock common.Clock = common.SystemClock{}

// repoOptions translates the global flags into repository options.
func (f *globalFlags) repoOptions() ([]sourcerepo.Option, error) {
	opts := []sourcerepo.Option{
		sourcerepo.WithLogger(f.logger),
		sourcerepo.WithVerify(f.verify),
		sourcerepo.WithClock(commitClock),
	}

	for _, kv := range f.overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid config override %q, expected key=value", kv)
		}
		opts = append(opts, sourcerepo.WithConfig(strings.TrimSpace(key), value))
	}

	return opts, nil
}

// startPath returns the absolute directory the command runs in.
func (f *globalFlags) startPath() (scpath.RepositoryPath, error) {
	repoPath, err := scpath.NewRepositoryPath(f.repoDir)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return repoPath, nil
}

// findRepository opens the nearest repository at or above the start path.
func (f *globalFlags) findRepository(ctx context.Context) (*sourcerepo.SourceRepository, error) {
	start, err := f.startPath()
	if err != nil {
		return nil, err
	}

	opts, err := f.repoOptions()
	if err != nil {
		return nil, err
	}

	return sourcerepo.FindRepository(ctx, start, opts...)
}

// resolvePath makes a command-line path absolute relative to --repo.
func (f *globalFlags) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	start, err := f.startPath()
	if err != nil {
		return "", err
	}
	return start.Join(path), nil
}

// resolveName turns a command-line object name into a hash: a full
// 40-character hex name or a reference such as HEAD or a branch.
func resolveName(repo *sourcerepo.SourceRepository, arg string) (objects.ObjectHash, error) {
	hash, err := repo.ResolveObjectName(strings.TrimSpace(arg))
	if err != nil {
		return objects.ZeroHash, fmt.Errorf("not a valid object name %q: %w", arg, err)
	}
	return hash, nil
}

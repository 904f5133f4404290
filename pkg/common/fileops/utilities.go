package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// Exists checks if a file or directory exists at the given path.
// Returns an error only if there's a filesystem error other than non-existence.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("check existence: %w", err)
}

// EnsureDir ensures that a directory exists, creating it and any necessary
// parent directories if they don't exist.
func EnsureDir(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", path, err)
	}
	return nil
}

// Lstat returns the metadata of path without following a final symlink when
// the filesystem supports it, and falls back to Stat otherwise.
func Lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if lst, ok := fsys.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// Readlink returns the target of the symlink at path. ok is false when the
// filesystem cannot read links.
func Readlink(fsys afero.Fs, path string) (target string, ok bool, err error) {
	lr, ok := fsys.(afero.LinkReader)
	if !ok {
		return "", false, nil
	}
	target, err = lr.ReadlinkIfPossible(path)
	if err != nil {
		if errors.Is(err, afero.ErrNoReadlink) {
			return "", false, nil
		}
		return "", true, fmt.Errorf("read link %s: %w", path, err)
	}
	return target, true, nil
}

// ReadBytes reads a file and returns its raw bytes.
// If the file doesn't exist, returns nil and nil error.
// This is useful for optional files such as configuration.
func ReadBytes(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// IsDirectory checks if the path exists and is a directory.
func IsDirectory(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return info.IsDir(), nil
}

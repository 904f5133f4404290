package scpath

import (
	"path/filepath"
	"strings"
)

// RepositoryPath represents an absolute path to a working tree root.
// Example: "/home/user/myproject" or "C:\Users\user\myproject"
type RepositoryPath string

// SourcePath represents a path inside the repository directory (.source).
type SourcePath string

// RelativePath represents a normalized path relative to a working tree root
// (forward slashes, no leading "./"). Used when reporting paths.
type RelativePath string

// ObjectPath represents a path within the objects directory.
// Format: "ab/cdef123..." (2-char prefix + 38-char suffix)
type ObjectPath string

// String returns the path as a string
func (rp RelativePath) String() string {
	return string(rp)
}

// Rel returns target relative to base in normalized form. A target outside
// base is returned cleaned but otherwise unchanged.
func Rel(base, target string) RelativePath {
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return RelativePath(NormalizePath(target))
	}
	return RelativePath(NormalizePath(rel))
}

// NormalizePath normalizes a path for display (forward slashes, no trailing slash)
func NormalizePath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "./")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

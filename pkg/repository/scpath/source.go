package scpath

import (
	"path/filepath"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// String returns the path as a string
func (sp SourcePath) String() string {
	return string(sp)
}

// IsValid checks if this is a valid source path
func (sp SourcePath) IsValid() bool {
	return len(sp) > 0
}

// Join joins path elements to the source path
func (sp SourcePath) Join(elem ...string) SourcePath {
	parts := append([]string{string(sp)}, elem...)
	return SourcePath(filepath.Join(parts...))
}

// ObjectsPath returns the path to the objects directory
func (sp SourcePath) ObjectsPath() SourcePath {
	return sp.Join(ObjectsDir)
}

// ConfigPath returns the path to the repository config file
func (sp SourcePath) ConfigPath() SourcePath {
	return sp.Join(ConfigFile)
}

// RefsPath returns the path to the refs directory
func (sp SourcePath) RefsPath() SourcePath {
	return sp.Join(RefsDir)
}

// HeadPath returns the path to the HEAD file
func (sp SourcePath) HeadPath() SourcePath {
	return sp.Join(HeadFile)
}

// ObjectFilePath returns the path to an object file given its hash, when sp
// is an objects directory.
// Example: hash "abcdef..." returns ".source/objects/ab/cdef..."
func (sp SourcePath) ObjectFilePath(hash objects.ObjectHash) SourcePath {
	return NewObjectPath(hash).ToSourcePath(sp)
}

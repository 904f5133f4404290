package scpath

import (
	"fmt"
	"path/filepath"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// String returns the object path as a string
func (op ObjectPath) String() string {
	return string(op)
}

// Prefix returns the 2-character directory prefix
func (op ObjectPath) Prefix() string {
	return string(op[:2])
}

// Suffix returns the 38-character file name
func (op ObjectPath) Suffix() string {
	return string(op[3:])
}

// Hash returns the hash named by this path.
func (op ObjectPath) Hash() (objects.ObjectHash, error) {
	if len(op) != objects.HashLength+1 || op[2] != '/' {
		return objects.ZeroHash, fmt.Errorf("invalid object path %q", string(op))
	}
	return objects.ParseObjectHash(op.Prefix() + op.Suffix())
}

// ToSourcePath converts to a source path within the objects directory
func (op ObjectPath) ToSourcePath(objectsDir SourcePath) SourcePath {
	return objectsDir.Join(op.Prefix(), op.Suffix())
}

// NewObjectPath creates an ObjectPath from a hash
func NewObjectPath(hash objects.ObjectHash) ObjectPath {
	dir, file := hash.Hex()
	return ObjectPath(dir + "/" + file)
}

// ObjectPathFromFile builds an ObjectPath from a fan-out directory name and
// a file name found while listing the objects directory.
func ObjectPathFromFile(dir, file string) ObjectPath {
	return ObjectPath(filepath.ToSlash(dir + "/" + file))
}

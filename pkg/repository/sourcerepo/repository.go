package sourcerepo

import (
	"context"

	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/tree"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
	"github.com/utkarsh5026/gitcore/pkg/store"
)

// Repository is the surface the command layer talks to. Hashes cross it as
// ObjectHash values; callers render them with String.
type Repository interface {
	// WorkingDirectory returns the path to the repository's working directory
	WorkingDirectory() scpath.RepositoryPath

	// SourceDirectory returns the path to the .source directory
	SourceDirectory() scpath.SourcePath

	// ObjectStore returns the object store for this repository
	ObjectStore() store.ObjectStore

	// WriteBlob stores the file at path as a blob
	WriteBlob(path string) (objects.ObjectHash, error)

	// HashBlob computes the blob hash of the file at path without storing it
	HashBlob(path string) (objects.ObjectHash, error)

	// ResolveObjectName turns a hex object name or a reference name into a hash
	ResolveObjectName(name string) (objects.ObjectHash, error)

	// ReadObject opens a stored object. The caller must Close it.
	ReadObject(hash objects.ObjectHash) (*objects.Object, error)

	// ReadTree decodes a stored tree with every entry's kind resolved
	ReadTree(hash objects.ObjectHash) (*tree.Tree, error)

	// BuildTree snapshots dir into the store. ok is false when nothing
	// under dir is stored.
	BuildTree(ctx context.Context, dir string) (hash objects.ObjectHash, ok bool, err error)

	// BuildCommit stores a commit of treeHash with an optional parent
	BuildCommit(ctx context.Context, treeHash objects.ObjectHash, parentHash *objects.ObjectHash, message string) (objects.ObjectHash, error)
}

package blob

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/common/fileops"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

const pkgName = "blob"

// Blob is an in-memory file payload.
type Blob struct {
	content []byte
	hash    *objects.ObjectHash
}

// NewBlob creates a new Blob object from raw data
func NewBlob(data []byte) *Blob {
	return &Blob{
		content: data,
		hash:    nil, // Lazy computation
	}
}

// Content returns the raw content of the blob
func (b *Blob) Content() []byte {
	return b.content
}

// Size returns the size of the content in bytes
func (b *Blob) Size() int64 {
	return int64(len(b.content))
}

// Hash returns the SHA-1 hash of the blob
func (b *Blob) Hash() objects.ObjectHash {
	if b.hash != nil {
		return *b.hash
	}

	hash := objects.HashBytes(objects.BlobKind, b.content)
	b.hash = &hash
	return hash
}

// Object returns a fresh envelope over the blob's content.
func (b *Blob) Object() *objects.Object {
	return objects.NewObjectFromBytes(objects.BlobKind, b.content)
}

// String returns a human-readable representation
func (b *Blob) String() string {
	return fmt.Sprintf("Blob{size: %d, hash: %s}", b.Size(), b.Hash().Short())
}

// Open returns a blob object streaming the file at path. A symlink yields
// its target path as content when the filesystem can read links, and the
// file it points to otherwise. The caller must Close the object.
func Open(fsys afero.Fs, path string) (*objects.Object, error) {
	info, err := fileops.Lstat(fsys, path)
	if err != nil {
		return nil, scerr.IO(pkgName, "open", err)
	}
	if info.IsDir() {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "open", fmt.Sprintf("%s is a directory", path), nil)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, ok, err := fileops.Readlink(fsys, path)
		if err != nil {
			return nil, scerr.IO(pkgName, "readlink", err)
		}
		if ok {
			return objects.NewObjectFromBytes(objects.BlobKind, []byte(target)), nil
		}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, scerr.IO(pkgName, "open", err)
	}

	// Stat the opened file: for a symlink that could not be read, this is
	// the target's size.
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, scerr.IO(pkgName, "stat", err)
	}

	return objects.NewObjectReadCloser(objects.BlobKind, st.Size(), f), nil
}

package store

import (
	"io"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// ObjectStore maps hashes to stored objects. The layout on disk is the
// only index: objects/<2 hex>/<38 hex>.
type ObjectStore interface {
	// PathFor returns the location of the object file for hash
	PathFor(hash objects.ObjectHash) string

	// Exists reports whether an object file exists for hash
	Exists(hash objects.ObjectHash) (bool, error)

	// ReadRaw opens the compressed object file. Fails with NotFound if absent.
	ReadRaw(hash objects.ObjectHash) (io.ReadCloser, error)

	// WriteRaw atomically places already compressed bytes at the path for hash
	WriteRaw(hash objects.ObjectHash, data []byte) error

	// WriteObject encodes, hashes and persists obj, returning its hash.
	// Writing an object that already exists replaces it with identical bytes.
	WriteObject(obj *objects.Object) (objects.ObjectHash, error)

	// ReadObject opens an object and parses its header. The caller must
	// Close the returned object.
	ReadObject(hash objects.ObjectHash) (*objects.Object, error)

	// ReadHeader returns the kind and size of an object without reading
	// its payload
	ReadHeader(hash objects.ObjectHash) (objects.ObjectKind, int64, error)
}

package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/common/fileops"
	"github.com/utkarsh5026/gitcore/pkg/common/logger"
	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
)

const pkgName = "store"

// ObjectFileMode is the permission of every stored object file.
// Objects are immutable once written.
const ObjectFileMode = 0o444

// FileObjectStore stores objects as individual compressed files.
//
// Each object is:
// 1. Serialized to the canonical format (header + content)
// 2. Hashed over those uncompressed bytes
// 3. Compressed with zlib
// 4. Staged in a uniquely named temp file and renamed to its hash path
//
// Directory Structure:
// ┌─ .source/objects/
// │ ├─ ab/ ← First 2 characters of the hash
// │ │ └─ cdef123... ← Remaining 38 characters
// │ ├─ cd/
// │ │ └─ ef456789...
// │ └─ ...
//
// No locking is done. Concurrent writers of the same object produce
// identical bytes and the rename is atomic, so readers never see a partial
// file.
type FileObjectStore struct {
	fs          afero.Fs
	objectsPath scpath.SourcePath
	logger      *slog.Logger
	verify      bool
}

// Option configures a FileObjectStore.
type Option func(*FileObjectStore)

// WithLogger sets the logger used for write diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileObjectStore) {
		s.logger = l
	}
}

// WithVerify makes ReadObject re-hash content as it is read and fail with
// a format error if it does not match the requested hash.
func WithVerify(verify bool) Option {
	return func(s *FileObjectStore) {
		s.verify = verify
	}
}

// NewFileObjectStore creates a store rooted at objectsPath on fsys.
// Directories are created lazily on first write.
func NewFileObjectStore(fsys afero.Fs, objectsPath scpath.SourcePath, opts ...Option) *FileObjectStore {
	s := &FileObjectStore{
		fs:          fsys,
		objectsPath: objectsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.OrDefault(s.logger)
	return s
}

// ObjectsPath returns the path to the objects directory
func (s *FileObjectStore) ObjectsPath() scpath.SourcePath {
	return s.objectsPath
}

// PathFor converts a hash to the corresponding file path.
//
// A two-level structure keeps any single directory small.
//
// Example: hash "abcdef1234567890abcdef1234567890abcdef12"
// Returns: .source/objects/ab/cdef1234567890abcdef1234567890abcdef12
func (s *FileObjectStore) PathFor(hash objects.ObjectHash) string {
	return s.objectsPath.ObjectFilePath(hash).String()
}

// Exists reports whether the object file for hash is present.
func (s *FileObjectStore) Exists(hash objects.ObjectHash) (bool, error) {
	ok, err := fileops.Exists(s.fs, s.PathFor(hash))
	if err != nil {
		return false, scerr.IO(pkgName, "exists", err)
	}
	return ok, nil
}

// ReadRaw opens the compressed object file for hash.
func (s *FileObjectStore) ReadRaw(hash objects.ObjectHash) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.PathFor(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, scerr.NotFound(pkgName, "read", hash.String(), err).
				WithContext("hash", hash.String())
		}
		return nil, scerr.IO(pkgName, "read", err)
	}
	return f, nil
}

// WriteRaw atomically writes compressed bytes to the path for hash. The
// bytes are trusted to be the compressed encoding of an object with that
// hash.
func (s *FileObjectStore) WriteRaw(hash objects.ObjectHash, data []byte) error {
	target := s.PathFor(hash)
	if err := fileops.EnsureDir(s.fs, filepath.Dir(target)); err != nil {
		return scerr.IO(pkgName, "write_raw", err)
	}
	if err := fileops.AtomicWrite(s.fs, target, data, ObjectFileMode); err != nil {
		return scerr.IO(pkgName, "write_raw", err)
	}
	return nil
}

// WriteObject streams obj through the hasher and compressor into a staging
// file and renames it to the hash path once the hash is known. It does not
// check for an existing copy first.
func (s *FileObjectStore) WriteObject(obj *objects.Object) (objects.ObjectHash, error) {
	if err := fileops.EnsureDir(s.fs, s.objectsPath.String()); err != nil {
		return objects.ZeroHash, scerr.IO(pkgName, "write", err)
	}

	var hash objects.ObjectHash
	err := fileops.StagedWrite(s.fs, s.objectsPath.String(), ObjectFileMode, func(w io.Writer) (string, error) {
		h, err := obj.Encode(w)
		if err != nil {
			return "", err
		}
		hash = h
		return s.PathFor(h), nil
	})
	if err != nil {
		return objects.ZeroHash, wrapError("write", err)
	}

	s.logger.Debug("stored object",
		"hash", hash.String(),
		"kind", obj.Kind.String(),
		"size", obj.Size)

	return hash, nil
}

// ReadObject opens the object for hash and parses its header. The payload
// is streamed, bounded to the declared size.
func (s *FileObjectStore) ReadObject(hash objects.ObjectHash) (*objects.Object, error) {
	rc, err := s.ReadRaw(hash)
	if err != nil {
		return nil, err
	}

	obj, err := objects.ReadObject(rc)
	if err != nil {
		rc.Close()
		return nil, wrapError("read", err)
	}
	obj.OnClose(rc)

	if s.verify {
		obj.Verify(hash)
	}
	return obj, nil
}

// ReadHeader returns the kind and size of the object for hash.
func (s *FileObjectStore) ReadHeader(hash objects.ObjectHash) (objects.ObjectKind, int64, error) {
	rc, err := s.ReadRaw(hash)
	if err != nil {
		return "", 0, err
	}
	defer rc.Close()

	kind, size, err := objects.ReadHeader(rc)
	if err != nil {
		return "", 0, wrapError("read_header", err)
	}
	return kind, size, nil
}

// ObjectCount returns the total number of objects in the store.
// Staging files are not counted. This is useful for statistics and
// diagnostics.
func (s *FileObjectStore) ObjectCount() (int, error) {
	root := s.objectsPath.String()
	ok, err := fileops.IsDirectory(s.fs, root)
	if err != nil {
		return 0, scerr.IO(pkgName, "count", err)
	}
	if !ok {
		return 0, nil
	}

	count := 0
	err = afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		op := scpath.ObjectPathFromFile(filepath.Base(filepath.Dir(path)), info.Name())
		if _, err := op.Hash(); err == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, scerr.IO(pkgName, "count", fmt.Errorf("walk %s: %w", root, err))
	}
	return count, nil
}

// wrapError keeps coded errors from lower layers and marks everything else
// as IO.
func wrapError(op string, err error) error {
	if scerr.GetCode(err) != "" {
		return scerr.Wrap(err, pkgName, op)
	}
	return scerr.IO(pkgName, op, err)
}

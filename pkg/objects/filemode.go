package objects

import (
	"fmt"
	"os"
	"strconv"
)

// FileMode is the mode of a tree entry. Only four values are valid in a
// stored tree: directory, symlink, executable and regular file.
type FileMode uint32

const (
	FileModeDirectory  FileMode = 0o040000 // Directory (subtree)
	FileModeSymlink    FileMode = 0o120000 // Symbolic link
	FileModeExecutable FileMode = 0o100755 // Executable file, rwxr-xr-x
	FileModeRegular    FileMode = 0o100644 // Regular file, rw-r--r--
)

// IsDirectory returns true if this is a directory.
func (m FileMode) IsDirectory() bool {
	return m == FileModeDirectory
}

// IsSymlink returns true if this is a symbolic link.
func (m FileMode) IsSymlink() bool {
	return m == FileModeSymlink
}

// IsExecutable returns true if this is an executable file.
func (m FileMode) IsExecutable() bool {
	return m == FileModeExecutable
}

// IsValid reports whether m is one of the four tree modes.
func (m FileMode) IsValid() bool {
	switch m {
	case FileModeDirectory, FileModeSymlink, FileModeExecutable, FileModeRegular:
		return true
	default:
		return false
	}
}

// Kind returns the kind of object an entry with this mode points to.
func (m FileMode) Kind() ObjectKind {
	if m.IsDirectory() {
		return TreeKind
	}
	return BlobKind
}

// Token returns the mode as written inside a tree record: octal without
// leading zeros, so a directory is "40000".
func (m FileMode) Token() string {
	return strconv.FormatUint(uint64(m), 8)
}

// String returns the mode zero-padded to six digits ("040000"), the form
// used when listing trees.
func (m FileMode) String() string {
	return fmt.Sprintf("%06o", uint32(m))
}

// ParseFileMode parses a tree record mode token. Only the four canonical
// tokens are accepted, so a zero-padded "040000" is a format error.
func ParseFileMode(s string) (FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, formatError("parse_mode", fmt.Sprintf("invalid mode %q", s), err)
	}
	m := FileMode(v)
	if !m.IsValid() {
		return 0, formatError("parse_mode", fmt.Sprintf("unsupported mode %q", s), nil)
	}
	if m.Token() != s {
		return 0, formatError("parse_mode", fmt.Sprintf("non-canonical mode %q", s), nil)
	}
	return m, nil
}

// IsStorable reports whether a directory entry with this metadata can be
// snapshotted. Pipes, sockets and devices cannot.
func IsStorable(mode os.FileMode) bool {
	return mode.IsDir() || mode.IsRegular() || mode&os.ModeSymlink != 0
}

// FromOSFileMode converts filesystem metadata to a tree mode.
// Any execute bit makes a regular file executable.
func FromOSFileMode(mode os.FileMode) FileMode {
	switch {
	case mode.IsDir():
		return FileModeDirectory
	case mode&os.ModeSymlink != 0:
		return FileModeSymlink
	case mode&0o111 != 0:
		return FileModeExecutable
	default:
		return FileModeRegular
	}
}

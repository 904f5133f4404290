package objects

import "fmt"

// ObjectKind is the type of a stored object. The set is closed: blob, tree
// and commit.
type ObjectKind string

const (
	BlobKind   ObjectKind = "blob"
	TreeKind   ObjectKind = "tree"
	CommitKind ObjectKind = "commit"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

// String implements the Stringer interface
func (k ObjectKind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known kinds.
func (k ObjectKind) IsValid() bool {
	switch k {
	case BlobKind, TreeKind, CommitKind:
		return true
	default:
		return false
	}
}

// ParseObjectKind converts a header token to an ObjectKind.
// Any token other than "blob", "tree" or "commit" is a format error.
func ParseObjectKind(s string) (ObjectKind, error) {
	k := ObjectKind(s)
	if !k.IsValid() {
		return "", formatError("parse_kind", fmt.Sprintf("unknown object kind %q", s), nil)
	}
	return k, nil
}

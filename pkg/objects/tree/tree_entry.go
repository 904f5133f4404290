package tree

import (
	"fmt"
	"strings"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

const pkgName = "tree"

// TreeEntry represents a single entry in a tree object.
//
// Each entry contains:
// - mode: one of 40000, 120000, 100755, 100644
// - name: raw path segment bytes
// - hash: hash of the referenced object
//
// Serialized format in tree object:
// [mode] [space] [name] [null byte] [20-byte SHA-1 binary]
//
// Example serialized entry for "hello.txt" file:
// "100644 hello.txt\0[20 bytes of SHA-1]"
type TreeEntry struct {
	mode objects.FileMode
	name string
	hash objects.ObjectHash

	// kind of the referenced object, set once resolved against a store
	kind objects.ObjectKind
}

// NewTreeEntry creates a new TreeEntry with validation
func NewTreeEntry(mode objects.FileMode, name string, hash objects.ObjectHash) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "new_entry", fmt.Sprintf("unsupported mode %s", mode), nil)
	}
	if err := validateName(name); err != nil {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "new_entry", err.Error(), nil)
	}
	return &TreeEntry{mode: mode, name: name, hash: hash}, nil
}

// Mode returns the entry mode
func (e *TreeEntry) Mode() objects.FileMode {
	return e.mode
}

// Name returns the entry name
func (e *TreeEntry) Name() string {
	return e.name
}

// Hash returns the hash of the referenced object
func (e *TreeEntry) Hash() objects.ObjectHash {
	return e.hash
}

// Kind returns the resolved kind of the referenced object. Before
// resolution it is the kind implied by the mode.
func (e *TreeEntry) Kind() objects.ObjectKind {
	if e.kind != "" {
		return e.kind
	}
	return e.mode.Kind()
}

// IsResolved reports whether Kind came from the store rather than the mode.
func (e *TreeEntry) IsResolved() bool {
	return e.kind != ""
}

// Resolve looks up the kind of the referenced object once and caches it.
func (e *TreeEntry) Resolve(r KindResolver) (objects.ObjectKind, error) {
	if e.kind != "" {
		return e.kind, nil
	}
	kind, err := r.ResolveKind(e.hash)
	if err != nil {
		return "", err
	}
	e.kind = kind
	return kind, nil
}

// IsDirectory returns true if this entry is a directory
func (e *TreeEntry) IsDirectory() bool {
	return e.mode.IsDirectory()
}

// AppendTo appends the serialized record to b.
// Format: [mode] [space] [name] [null byte] [20-byte SHA-1 binary]
func (e *TreeEntry) AppendTo(b []byte) []byte {
	b = append(b, e.mode.Token()...)
	b = append(b, objects.SpaceByte)
	b = append(b, e.name...)
	b = append(b, objects.NullByte)
	return append(b, e.hash[:]...)
}

// String formats the entry the way trees are listed:
// "<mode> <kind> <hash>\t<name>".
func (e *TreeEntry) String() string {
	return fmt.Sprintf("%s %s %s\t%s", e.mode, e.Kind(), e.hash, e.name)
}

// CompareEntries orders entries by raw name bytes. When one name is a strict
// prefix of the other, a directory continues with an implied '/' and any
// other entry ends, sorting before every byte. So "foo" < "foo.txt" for
// files, while "foo.bin" < "foo/" < "foog" when foo is a directory.
func CompareEntries(a, b *TreeEntry) int {
	n := min(len(a.name), len(b.name))
	if c := strings.Compare(a.name[:n], b.name[:n]); c != 0 {
		return c
	}

	ca, cb := nextByte(a, n), nextByte(b, n)
	switch {
	case ca < cb:
		return -1
	case ca > cb:
		return 1
	default:
		return 0
	}
}

// nextByte returns the name byte at i, the implied '/' of a directory, or
// -1 once a non-directory name has ended.
func nextByte(e *TreeEntry, i int) int {
	if i < len(e.name) {
		return int(e.name[i])
	}
	if e.mode.IsDirectory() {
		return '/'
	}
	return -1
}

// validateName rejects names that cannot be stored in a tree record.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("invalid characters in name: %q", name)
	}
	return nil
}

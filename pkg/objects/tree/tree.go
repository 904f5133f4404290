package tree

import (
	"fmt"
	"io"
	"slices"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// Tree represents a directory snapshot.
//
// Tree Object Structure:
// ┌─────────────────────────────────────────────────────────────────┐
// │ Header: "tree" SPACE size NULL                                  │
// │ Entry 1: mode SPACE name NULL [20-byte SHA-1]                   │
// │ Entry 2: mode SPACE name NULL [20-byte SHA-1]                   │
// │ ...                                                             │
// │ Entry N: mode SPACE name NULL [20-byte SHA-1]                   │
// └─────────────────────────────────────────────────────────────────┘
//
// Example tree object content (without header):
// "100644 README.md\0[20 bytes]40000 src\0[20 bytes]100755 build.sh\0[20 bytes]"
//
// Records carry no separator: the reader knows to take exactly 20 bytes
// after each NUL. Entries are stored in CompareEntries order, which makes
// the hash of a directory snapshot deterministic.
type Tree struct {
	entries []*TreeEntry
	hash    *objects.ObjectHash
}

// NewTree creates a Tree holding entries in canonical order.
// The input slice is not modified.
func NewTree(entries []*TreeEntry) *Tree {
	sorted := slices.Clone(entries)
	Sort(sorted)
	return &Tree{entries: sorted}
}

// Sort orders entries in place with CompareEntries.
func Sort(entries []*TreeEntry) {
	slices.SortStableFunc(entries, CompareEntries)
}

// Entries returns a copy of the tree entries to prevent external modification
func (t *Tree) Entries() []*TreeEntry {
	return slices.Clone(t.entries)
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// IsEmpty returns true if the tree has no entries
func (t *Tree) IsEmpty() bool {
	return len(t.entries) == 0
}

// Bytes returns the serialized entries without header.
func (t *Tree) Bytes() []byte {
	var buf []byte
	for _, e := range t.entries {
		buf = e.AppendTo(buf)
	}
	return buf
}

// Hash returns the hash of the tree object
func (t *Tree) Hash() objects.ObjectHash {
	if t.hash == nil {
		h := objects.HashBytes(objects.TreeKind, t.Bytes())
		t.hash = &h
	}
	return *t.hash
}

// Object wraps the serialized entries as a tree object.
func (t *Tree) Object() *objects.Object {
	return objects.NewObjectFromBytes(objects.TreeKind, t.Bytes())
}

// String returns a human-readable representation
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{entries: %d, hash: %s}", len(t.entries), t.Hash().Short())
}

// Encode writes the records of entries in the order given.
func Encode(w io.Writer, entries []*TreeEntry) error {
	var buf []byte
	for _, e := range entries {
		buf = e.AppendTo(buf[:0])
		if _, err := w.Write(buf); err != nil {
			return scerr.IO(pkgName, "encode", err)
		}
	}
	return nil
}

// Decode reads every record from r in stored order. When resolver is not
// nil each entry's kind is resolved through it.
func Decode(r io.Reader, resolver KindResolver) ([]*TreeEntry, error) {
	reader := NewReader(r)

	var entries []*TreeEntry
	for {
		entry, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if resolver != nil {
			if _, err := entry.Resolve(resolver); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FromObject decodes a tree object and closes it. Objects of any other
// kind are a validation error. Entries keep their stored order.
func FromObject(obj *objects.Object, resolver KindResolver) (*Tree, error) {
	defer obj.Close()

	if obj.Kind != objects.TreeKind {
		return nil, scerr.Validation(pkgName, "from_object", fmt.Sprintf("expected tree, got %s", obj.Kind), nil)
	}

	entries, err := Decode(obj.Content, resolver)
	if err != nil {
		return nil, err
	}
	return &Tree{entries: entries}, nil
}

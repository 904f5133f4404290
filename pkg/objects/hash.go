package objects

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ObjectHash is the 20-byte SHA-1 digest identifying an object.
// At API boundaries it is rendered as 40 lowercase hex characters.
type ObjectHash [RawHashLength]byte

// ShortHash represents an abbreviated hash (typically 7 characters)
// Example: "e69de29"
type ShortHash string

const (
	// HashLength is the length of a full SHA-1 hash in hex (40 characters)
	HashLength = 40
	// ShortHashLength is the default length for abbreviated hashes (7 characters)
	ShortHashLength = 7
	// RawHashLength is the length of a SHA-1 hash in bytes (20 bytes)
	RawHashLength = 20
)

// ZeroHash is the all-zero hash. No stored object has it.
var ZeroHash ObjectHash

// NewObjectHashFromBytes creates an ObjectHash from 20 raw bytes.
func NewObjectHashFromBytes(b []byte) (ObjectHash, error) {
	var h ObjectHash
	if len(b) != RawHashLength {
		return h, formatError("parse_hash", fmt.Sprintf("raw hash must be %d bytes, got %d", RawHashLength, len(b)), nil)
	}
	copy(h[:], b)
	return h, nil
}

// ParseObjectHash parses a 40-character hex string. Upper-case input is
// accepted and normalised.
func ParseObjectHash(s string) (ObjectHash, error) {
	var h ObjectHash
	if len(s) != HashLength {
		return h, formatError("parse_hash", fmt.Sprintf("hash must be %d characters long, got %d", HashLength, len(s)), nil)
	}
	if _, err := hex.Decode(h[:], []byte(strings.ToLower(s))); err != nil {
		return ZeroHash, formatError("parse_hash", fmt.Sprintf("invalid hash %q", s), err)
	}
	return h, nil
}

// MustParseObjectHash is like ParseObjectHash but panics on error.
// Intended for constants in tests.
func MustParseObjectHash(s string) ObjectHash {
	h, err := ParseObjectHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

// String returns the 40-character lowercase hex form.
func (h ObjectHash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the raw 20 bytes.
func (h ObjectHash) Bytes() []byte {
	return h[:]
}

// IsZero returns true if this is the zero hash
func (h ObjectHash) IsZero() bool {
	return h == ZeroHash
}

// Short returns the abbreviated version of the hash
func (h ObjectHash) Short() ShortHash {
	return h.ShortN(ShortHashLength)
}

// ShortN returns the first n characters of the hash
func (h ObjectHash) ShortN(n int) ShortHash {
	s := h.String()
	if n <= 0 {
		n = ShortHashLength
	}
	if n > len(s) {
		n = len(s)
	}
	return ShortHash(s[:n])
}

// Hex returns the directory and file name components of the store path:
// the first two hex characters and the remaining thirty-eight.
func (h ObjectHash) Hex() (dir, file string) {
	s := h.String()
	return s[:2], s[2:]
}

// HasPrefix returns true if the hash starts with the given prefix
func (h ObjectHash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(h.String(), strings.ToLower(prefix))
}

// MarshalText implements encoding.TextMarshaler
func (h ObjectHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *ObjectHash) UnmarshalText(text []byte) error {
	hash, err := ParseObjectHash(string(text))
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

// String returns the short hash as a string
func (sh ShortHash) String() string {
	return string(sh)
}

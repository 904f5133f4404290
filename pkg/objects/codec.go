package objects

import (
	"crypto/sha1"
	"hash"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
)

// Content addressing needs one agreed hash function and one compression
// format. Both are fixed.
const (
	HashAlgorithm    = "sha1"
	CompressionLevel = zlib.DefaultCompression
)

// NewHasher returns a fresh SHA-1 state.
func NewHasher() hash.Hash {
	return sha1.New()
}

// SumHash finalises h into an ObjectHash.
func SumHash(h hash.Hash) ObjectHash {
	var out ObjectHash
	copy(out[:], h.Sum(nil))
	return out
}

// Header returns the canonical header "<kind> <size>\x00".
func Header(kind ObjectKind, size int64) []byte {
	b := make([]byte, 0, len(kind)+22)
	b = append(b, string(kind)...)
	b = append(b, SpaceByte)
	b = strconv.AppendInt(b, size, 10)
	return append(b, NullByte)
}

// HashBytes returns the hash of the canonical bytes of an object holding data.
func HashBytes(kind ObjectKind, data []byte) ObjectHash {
	h := NewHasher()
	h.Write(Header(kind, int64(len(data))))
	h.Write(data)
	return SumHash(h)
}

// Compress returns a zlib writer over w. The caller must Close it to flush
// the stream.
func Compress(w io.Writer) (io.WriteCloser, error) {
	zw, err := zlib.NewWriterLevel(w, CompressionLevel)
	if err != nil {
		return nil, scerr.IO(pkgName, "compress", err)
	}
	return zw, nil
}

// Decompress returns a zlib reader over r. A corrupt stream header is
// reported as an IO error.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, scerr.IO(pkgName, "decompress", err)
	}
	return zr, nil
}

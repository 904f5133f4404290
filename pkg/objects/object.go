package objects

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"hash"
	"io"
	"strconv"
	"unicode/utf8"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
)

// Object is one stored unit: a kind, a declared size and a content stream
// yielding exactly Size bytes. An Object is consumed once.
type Object struct {
	Kind    ObjectKind
	Size    int64
	Content io.Reader

	closers []io.Closer
}

// NewObject wraps a content stream of a known size.
func NewObject(kind ObjectKind, size int64, content io.Reader) *Object {
	return &Object{Kind: kind, Size: size, Content: content}
}

// NewObjectFromBytes wraps an in-memory payload, such as a freshly
// serialised tree or commit.
func NewObjectFromBytes(kind ObjectKind, data []byte) *Object {
	return NewObject(kind, int64(len(data)), bytes.NewReader(data))
}

// NewObjectReadCloser wraps a stream that must be released after use, such
// as an open file. Close on the object closes rc.
func NewObjectReadCloser(kind ObjectKind, size int64, rc io.ReadCloser) *Object {
	return &Object{Kind: kind, Size: size, Content: rc, closers: []io.Closer{rc}}
}

// OnClose registers c to be closed with the object, after any closers
// already registered.
func (o *Object) OnClose(c io.Closer) {
	o.closers = append(o.closers, c)
}

// Close releases the streams the object was read from, if any.
func (o *Object) Close() error {
	var errs []error
	for _, c := range o.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	o.closers = nil
	return errors.Join(errs...)
}

// ReadAll consumes the content and closes the object.
func (o *Object) ReadAll() ([]byte, error) {
	defer o.Close()
	data, err := io.ReadAll(o.Content)
	if err != nil {
		return nil, contentError("read_content", err)
	}
	return data, nil
}

// Encode streams the canonical bytes into the hasher and, compressed, into
// w. The returned hash covers the uncompressed bytes. Content shorter than
// Size is an error; bytes beyond Size are never read.
//
// Encoding into io.Discard computes the hash without storing anything.
func (o *Object) Encode(w io.Writer) (ObjectHash, error) {
	zw, err := Compress(w)
	if err != nil {
		return ZeroHash, err
	}

	h := NewHasher()
	if err := o.writeCanonical(io.MultiWriter(h, zw)); err != nil {
		zw.Close()
		return ZeroHash, err
	}

	if err := zw.Close(); err != nil {
		return ZeroHash, scerr.IO(pkgName, "encode", err)
	}
	return SumHash(h), nil
}

// Hash computes the object's hash without compressing. It consumes the
// content.
func (o *Object) Hash() (ObjectHash, error) {
	h := NewHasher()
	if err := o.writeCanonical(h); err != nil {
		return ZeroHash, err
	}
	return SumHash(h), nil
}

func (o *Object) writeCanonical(w io.Writer) error {
	if !o.Kind.IsValid() {
		return scerr.New(pkgName, scerr.CodeInvalidInput, "encode", fmt.Sprintf("unknown object kind %q", o.Kind), nil)
	}
	if o.Size < 0 {
		return scerr.New(pkgName, scerr.CodeInvalidInput, "encode", fmt.Sprintf("negative size %d", o.Size), nil)
	}

	if _, err := w.Write(Header(o.Kind, o.Size)); err != nil {
		return scerr.IO(pkgName, "encode", err)
	}

	n, err := io.CopyN(w, o.Content, o.Size)
	if errors.Is(err, io.EOF) {
		return formatError("encode", fmt.Sprintf("content ended after %d of %d bytes", n, o.Size), io.ErrUnexpectedEOF)
	}
	if err != nil {
		return contentError("encode", err)
	}
	return nil
}

// ReadObject decompresses a stored object, parses its header eagerly and
// exposes the payload as a stream bounded to the declared size. The caller
// must Close the returned object.
func ReadObject(r io.Reader) (*Object, error) {
	zr, err := Decompress(r)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(zr)
	kind, size, err := readHeader(br)
	if err != nil {
		zr.Close()
		return nil, err
	}

	return &Object{
		Kind:    kind,
		Size:    size,
		Content: NewSizedReader(br, size),
		closers: []io.Closer{zr},
	}, nil
}

// ReadHeader decompresses only as far as the header and returns the kind
// and size.
func ReadHeader(r io.Reader) (ObjectKind, int64, error) {
	zr, err := Decompress(r)
	if err != nil {
		return "", 0, err
	}
	defer zr.Close()

	return readHeader(bufio.NewReader(zr))
}

func readHeader(br *bufio.Reader) (ObjectKind, int64, error) {
	header, err := br.ReadBytes(NullByte)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", 0, formatError("parse_header", "truncated header", err)
		}
		return "", 0, scerr.IO(pkgName, "parse_header", err)
	}
	return ParseHeader(header[:len(header)-1])
}

// ParseHeader parses "<kind> <size>" (without the trailing NUL).
func ParseHeader(header []byte) (ObjectKind, int64, error) {
	if !utf8.Valid(header) {
		return "", 0, formatError("parse_header", "header is not valid UTF-8", nil)
	}

	kindTok, sizeTok, ok := bytes.Cut(header, []byte{SpaceByte})
	if !ok {
		return "", 0, formatError("parse_header", fmt.Sprintf("missing space in header %q", header), nil)
	}

	kind, err := ParseObjectKind(string(kindTok))
	if err != nil {
		return "", 0, err
	}

	size, err := parseSize(sizeTok)
	if err != nil {
		return "", 0, err
	}
	return kind, size, nil
}

func parseSize(tok []byte) (int64, error) {
	if len(tok) == 0 {
		return 0, formatError("parse_header", "empty size", nil)
	}

	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, formatError("parse_header", fmt.Sprintf("invalid size %q", tok), nil)
		}
	}

	size, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return 0, formatError("parse_header", fmt.Sprintf("size %q out of range", tok), err)
	}
	return size, nil
}

// contentError keeps format errors raised by nested readers and reports the
// rest as IO.
func contentError(op string, err error) error {
	if IsInvalidFormat(err) {
		return err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return formatError(op, "content shorter than declared size", err)
	}
	return scerr.IO(pkgName, op, err)
}

// Verify makes the object check, once its content has been fully read,
// that the canonical bytes hash to expected. A mismatch surfaces from Read
// as a format error.
func (o *Object) Verify(expected ObjectHash) {
	h := NewHasher()
	h.Write(Header(o.Kind, o.Size))
	o.Content = &verifyingReader{r: o.Content, h: h, expected: expected}
}

type verifyingReader struct {
	r        io.Reader
	h        hash.Hash
	expected ObjectHash
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	v.h.Write(p[:n])
	if err == io.EOF {
		if got := SumHash(v.h); got != v.expected {
			return n, formatError("verify", fmt.Sprintf("hash mismatch: expected %s, got %s", v.expected, got), nil)
		}
	}
	return n, err
}

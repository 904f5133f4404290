package tree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	scerr "github.com/utkarsh5026/gitcore/pkg/common/err"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// Reader streams records out of a tree payload one at a time.
type Reader struct {
	br *bufio.Reader
}

// NewReader reads records from r, typically an object's content stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next record, or io.EOF when the payload ends cleanly
// between records.
func (r *Reader) Next() (*TreeEntry, error) {
	if _, err := r.br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, readError(err)
	}

	field, err := r.br.ReadBytes(objects.NullByte)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, scerr.InvalidFormat(pkgName, "read_entry", "truncated entry: missing NUL", nil)
		}
		return nil, readError(err)
	}
	field = field[:len(field)-1]

	modeTok, name, ok := bytes.Cut(field, []byte{objects.SpaceByte})
	if !ok {
		return nil, scerr.InvalidFormat(pkgName, "read_entry", fmt.Sprintf("missing space in entry %q", field), nil)
	}

	mode, err := objects.ParseFileMode(string(modeTok))
	if err != nil {
		return nil, err
	}
	if err := validateName(string(name)); err != nil {
		return nil, scerr.InvalidFormat(pkgName, "read_entry", err.Error(), nil)
	}

	var hash objects.ObjectHash
	if _, err := io.ReadFull(r.br, hash[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, scerr.InvalidFormat(pkgName, "read_entry", fmt.Sprintf("short hash for entry %q", name), nil)
		}
		return nil, readError(err)
	}

	return &TreeEntry{mode: mode, name: string(name), hash: hash}, nil
}

// readError passes through structured errors from the content stream and
// wraps everything else as IO.
func readError(err error) error {
	var se *scerr.Error
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return scerr.InvalidFormat(pkgName, "read_entry", "payload shorter than declared size", err)
	}
	return scerr.IO(pkgName, "read_entry", err)
}

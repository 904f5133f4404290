package objects

import "io"

// SizedReader yields exactly the declared number of bytes of an underlying
// stream. It never reads past the limit, even if the stream has more, and
// reports io.ErrUnexpectedEOF if the stream ends first.
type SizedReader struct {
	r         io.Reader
	remaining int64
}

// NewSizedReader limits r to size bytes.
func NewSizedReader(r io.Reader, size int64) *SizedReader {
	return &SizedReader{r: r, remaining: size}
}

// Read implements io.Reader.
func (s *SizedReader) Read(p []byte) (int, error) {
	if s.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > s.remaining {
		p = p[:s.remaining]
	}

	n, err := s.r.Read(p)
	s.remaining -= int64(n)

	if err == io.EOF {
		if s.remaining > 0 {
			return n, io.ErrUnexpectedEOF
		}
		return n, io.EOF
	}
	return n, err
}

// Remaining returns how many bytes are still to be read.
func (s *SizedReader) Remaining() int64 {
	return s.remaining
}

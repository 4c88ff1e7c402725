package line

import (
	"bufio"
	"io"
)

// Reader reads newline-terminated lines from an input stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// Read reads the next line into l. It returns io.EOF, and leaves l alone, when
// the stream ends before any byte of a new line. A last line missing its
// newline gets one.
//
// A line that does not fit in l is consumed up to and including its newline and
// reported with ErrCapacityExceeded; the following call reads the next line.
func (r *Reader) Read(l *Line) error {
	b := newBuilder(l.capacity)
	overflow := false
	for {
		c, err := r.r.ReadByte()
		if err == io.EOF {
			if b.Len() == 0 && !overflow {
				return io.EOF
			}
			break
		}
		if err != nil {
			return err
		}
		if overflow {
			if c == '\n' {
				return ErrCapacityExceeded
			}
			continue
		}
		if err := b.WriteByte(c); err != nil {
			overflow = true
			if c == '\n' {
				return ErrCapacityExceeded
			}
			continue
		}
		if c == '\n' {
			l.replace(b.buf)
			return nil
		}
	}
	if overflow {
		return ErrCapacityExceeded
	}
	if err := b.WriteByte('\n'); err != nil {
		return ErrCapacityExceeded
	}
	l.replace(b.buf)
	return nil
}

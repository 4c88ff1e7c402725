package line

import (
	"bytes"

	"golang.org/x/text/transform"
)

// Transformer applies a Func to every line of a stream. It implements
// transform.Transformer, so it can be used with transform.NewReader,
// transform.NewWriter and transform.String.
type Transformer struct {
	transform.NopResetter

	fn   Func
	line *Line
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer applying fn to lines of the given
// capacity.
func NewTransformer(fn Func, capacity int) *Transformer {
	return &Transformer{
		fn:   fn,
		line: New(capacity),
	}
}

// MaxStreamCapacity is the largest capacity a Transformer can serve through
// transform.NewReader and transform.NewWriter, whose buffers hold 4096 bytes.
const MaxStreamCapacity = 4096 + 1

// Transform implements transform.Transformer. A final line without a newline
// gets one. Lines that do not fit the capacity fail the transformation with
// ErrCapacityExceeded.
//
// The Func is applied to each line at most once: Transform asks for a larger
// dst before applying it, not after.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		// A transformed line holds at most capacity-1 bytes.
		if len(dst)-nDst < t.line.capacity-1 {
			return nDst, nSrc, transform.ErrShortDst
		}
		rest := src[nSrc:]
		n := bytes.IndexByte(rest, '\n') + 1
		var p []byte
		switch {
		case n > 0:
			p = rest[:n]
		case !atEOF:
			if !fits(len(rest)+1, t.line.capacity) {
				return nDst, nSrc, ErrCapacityExceeded
			}
			return nDst, nSrc, transform.ErrShortSrc
		default:
			n = len(rest)
			p = append(rest[:n:n], '\n')
		}
		if err := t.line.Set(p); err != nil {
			return nDst, nSrc, err
		}
		if err := t.fn(t.line); err != nil {
			return nDst, nSrc, err
		}
		nDst += copy(dst[nDst:], t.line.Bytes())
		nSrc += n
	}
	return nDst, nSrc, nil
}

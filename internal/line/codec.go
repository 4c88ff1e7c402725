package line

import "bytes"

// Size returns the number of bytes before the first newline.
func (l *Line) Size() (int, error) {
	i := bytes.IndexByte(l.buf, '\n')
	if i < 0 {
		return 0, ErrMalformedLine
	}
	return i, nil
}

// LastIndex returns the index of the last byte before the first newline, or -1
// for an empty line.
func (l *Line) LastIndex() (int, error) {
	n, err := l.Size()
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// Limit returns the number of bytes needed to hold the line's content, its
// newline and the sentinel.
func (l *Line) Limit() (int, error) {
	n, err := l.Size()
	if err != nil {
		return 0, err
	}
	return n + 2, nil
}

// Copy copies the content and newline of src into dst. Anything after the first
// newline of src is not copied.
func Copy(dst, src *Line) error {
	limit, err := src.Limit()
	if err != nil {
		return err
	}
	if limit > dst.capacity {
		return ErrCapacityExceeded
	}
	dst.replace(src.buf[:limit-1])
	return nil
}

// builder accumulates the output of a transformation and refuses to grow past
// what a line of the given capacity can hold.
type builder struct {
	buf      []byte
	capacity int
}

func newBuilder(capacity int) *builder {
	return &builder{
		buf:      make([]byte, 0, capacity),
		capacity: capacity,
	}
}

func (b *builder) WriteByte(c byte) error {
	if !fits(len(b.buf)+1, b.capacity) {
		return ErrCapacityExceeded
	}
	b.buf = append(b.buf, c)
	return nil
}

func (b *builder) repeat(c byte, n int) error {
	for i := 0; i < n; i++ {
		if err := b.WriteByte(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) Len() int {
	return len(b.buf)
}

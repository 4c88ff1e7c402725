// Package line implements transformations of single lines of text: reversal,
// tab expansion and collapsing, and folding at a maximum column width.
//
// A line is a bounded sequence of single-byte characters whose logical end is
// its first newline. Every operation derives the line's size from the position
// of that newline and reports, rather than ignores, lines that lack one or that
// would not fit in the line's capacity.
package line

import (
	"bytes"
	"errors"
)

const (
	// DefaultCapacity is the number of bytes a line may occupy, counting the
	// newline and the end-of-line sentinel slot.
	DefaultCapacity = 1000

	// DefaultTabWidth is the number of spaces a tab stands for.
	DefaultTabWidth = 4

	// DefaultFoldWidth is the column width lines are folded at.
	DefaultFoldWidth = 20
)

var (
	// ErrCapacityExceeded is returned when a line, or the result of
	// transforming it, does not fit in the line's capacity.
	ErrCapacityExceeded = errors.New("line capacity exceeded")

	// ErrMalformedLine is returned when a line holds no newline.
	ErrMalformedLine = errors.New("malformed line: no newline")

	// ErrInvalidWidth is returned for non-positive tab widths.
	ErrInvalidWidth = errors.New("invalid width")
)

// Line is a mutable line of text with a fixed capacity. One byte of the
// capacity is always kept for the end-of-line sentinel, so a line can hold at
// most capacity-1 bytes, newline included.
type Line struct {
	buf      []byte
	capacity int
}

// New returns an empty line with the given capacity. A capacity below 2 (room
// for a newline and the sentinel) is raised to 2.
func New(capacity int) *Line {
	if capacity < 2 {
		capacity = 2
	}
	return &Line{
		buf:      make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// FromString returns a line of the given capacity holding s.
func FromString(s string, capacity int) (*Line, error) {
	l := New(capacity)
	if err := l.Set([]byte(s)); err != nil {
		return nil, err
	}
	return l, nil
}

// Capacity returns the line's capacity.
func (l *Line) Capacity() int {
	return l.capacity
}

// Set replaces the contents of the line with a copy of p, which must contain a
// newline.
func (l *Line) Set(p []byte) error {
	if !fits(len(p), l.capacity) {
		return ErrCapacityExceeded
	}
	if bytes.IndexByte(p, '\n') < 0 {
		return ErrMalformedLine
	}
	l.buf = append(l.buf[:0], p...)
	return nil
}

// Bytes returns the raw contents of the line. For folded lines that includes
// every segment. The slice is only valid until the next change to the line.
func (l *Line) Bytes() []byte {
	return l.buf
}

func (l *Line) String() string {
	return string(l.buf)
}

// replace swaps in contents that are already known to fit and to be well
// formed.
func (l *Line) replace(p []byte) {
	l.buf = append(l.buf[:0], p...)
}

// fits reports whether n bytes plus the sentinel fit in capacity.
func fits(n, capacity int) bool {
	return n+1 <= capacity
}

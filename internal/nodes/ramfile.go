package nodes

import (
	"errors"
	"io"
)

// ErrTooLarge is returned by writes that would grow a RAMFile past its limit.
var ErrTooLarge = errors.New("file too large")

// RAMFile is an in-memory implementation of io.ReaderAt and io.WriterAt, used
// to hold the output of the line files served over 9P.
type RAMFile struct {
	buffer []byte
	off    int64
	limit  int64
}

// NewRAMFile creates a RAMFile with the given initial contents that may grow up
// to limit bytes. A limit of zero or less means no limit.
//
// It does not retain the passed slice.
func NewRAMFile(contents []byte, limit int64) *RAMFile {
	var f RAMFile
	f.buffer = make([]byte, len(contents))
	copy(f.buffer, contents)
	f.limit = limit
	return &f
}

// Size returns the length of the contents.
func (f *RAMFile) Size() int64 {
	return len64(f.buffer)
}

// Bytes returns the contents. The slice is valid until the next write.
func (f *RAMFile) Bytes() []byte {
	return f.buffer
}

func (f *RAMFile) Truncate() {
	f.buffer = nil
	f.off = 0
}

func (f *RAMFile) Read(p []byte) (n int, err error) {
	n, err = f.ReadAt(p, f.off)
	f.off += int64(n)
	return
}

// ReadAt implements io.ReaderAt.
func (f *RAMFile) ReadAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= len64(f.buffer) {
		return 0, io.EOF
	}
	n = copy(p, f.buffer[off:])
	if n < len(p) {
		err = io.EOF
	}
	return
}

// WriteAt implements io.WriterAt.
func (f *RAMFile) WriteAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if f.limit > 0 && off+len64(p) > f.limit {
		return 0, ErrTooLarge
	}
	if off > len64(f.buffer) {
		larger := make([]byte, off+len64(p))
		copy(larger, f.buffer)
		f.buffer = larger
	}
	if n := copy(f.buffer[off:], p); n < len(p) {
		f.buffer = append(f.buffer, p[n:]...)
	}
	return len(p), nil
}

// Write appends p, so a RAMFile can be the destination of io.Copy.
func (f *RAMFile) Write(p []byte) (int, error) {
	return f.WriteAt(p, len64(f.buffer))
}

func len64(p []byte) int64 {
	return int64(len(p))
}

package line

// Fold breaks the line into newline-separated segments no wider than width
// columns, breaking only between words. A word is a maximal run of bytes other
// than space and newline; it is never split, so a word wider than width gets a
// segment of its own. Tabs are expanded to tabWidth spaces first, which makes
// every byte exactly one column wide.
//
// Spaces opening a segment are dropped, and so is a trailing run of spaces that
// would take a segment past width. Newlines already present before the final
// one are kept as breaks, which makes folding an already folded line a no-op.
// A width of zero or less breaks before every word.
//
// The line must end with a newline: text after the last newline fails with
// ErrMalformedLine. On error the line is left unchanged.
func Fold(l *Line, width, tabWidth int) error {
	if tabWidth < 1 {
		return ErrInvalidWidth
	}
	end := len(l.buf) - 1
	if end < 0 || l.buf[end] != '\n' {
		return ErrMalformedLine
	}
	scratch := newBuilder(l.capacity)
	if err := expandTabs(scratch, l.buf[:end], tabWidth); err != nil {
		return err
	}
	f := newFolder(width, l.capacity)
	for _, c := range scratch.buf {
		if err := f.step(c); err != nil {
			return err
		}
	}
	if err := f.newline(); err != nil {
		return err
	}
	l.replace(f.out.buf)
	return nil
}

type folder struct {
	max int
	out *builder

	// Columns used by the current segment.
	width int
	// Whether nothing but dropped spaces has been seen since the last break.
	atBreak bool
	// Output index of the space run just written, or -1.
	runStart int

	inWord    bool
	wordStart int
	// Output index of the space run preceding the current word, or -1.
	wordRun int
	// Whether the current word may no longer cause a break.
	settled bool
}

func newFolder(width, capacity int) *folder {
	return &folder{
		max:      width,
		out:      newBuilder(capacity),
		atBreak:  true,
		runStart: -1,
		wordRun:  -1,
	}
}

func (f *folder) step(c byte) error {
	switch c {
	case '\n':
		return f.newline()
	case ' ':
		f.inWord = false
		if f.atBreak {
			return nil
		}
		if f.runStart < 0 {
			f.runStart = f.out.Len()
		}
		f.width++
		return f.out.WriteByte(' ')
	}
	if !f.inWord {
		f.inWord = true
		f.settled = false
		f.wordStart = f.out.Len()
		f.wordRun = f.runStart
		f.runStart = -1
	}
	f.atBreak = false
	if err := f.out.WriteByte(c); err != nil {
		return err
	}
	f.width++
	if f.width > f.max && !f.settled {
		f.settled = true
		return f.breakBeforeWord()
	}
	return nil
}

// breakBeforeWord moves the current word to a new segment.
func (f *folder) breakBeforeWord() error {
	wordLen := f.out.Len() - f.wordStart
	switch {
	case f.wordRun >= 0:
		// The space run before the word becomes the break.
		buf := f.out.buf
		copy(buf[f.wordRun+1:], buf[f.wordStart:])
		buf[f.wordRun] = '\n'
		f.out.buf = buf[:f.wordRun+1+wordLen]
		f.wordStart = f.wordRun + 1
		f.wordRun = -1
	case f.wordStart == 0:
		// First word of the line: there is no space to turn into a
		// break, so one is inserted.
		if err := f.out.WriteByte('\n'); err != nil {
			return err
		}
		buf := f.out.buf
		copy(buf[1:], buf[:len(buf)-1])
		buf[0] = '\n'
		f.wordStart = 1
	default:
		// The word already opens a segment.
	}
	f.width = wordLen
	return nil
}

// newline ends the current segment with a newline.
func (f *folder) newline() error {
	if f.runStart >= 0 && f.width > f.max {
		f.width -= f.out.Len() - f.runStart
		f.out.buf = f.out.buf[:f.runStart]
	}
	if err := f.out.WriteByte('\n'); err != nil {
		return err
	}
	f.width = 0
	f.atBreak = true
	f.runStart = -1
	f.inWord = false
	return nil
}

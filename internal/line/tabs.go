package line

// Detab replaces every tab before the first newline with tabWidth spaces.
// On error the line is left unchanged.
func Detab(l *Line, tabWidth int) error {
	if tabWidth < 1 {
		return ErrInvalidWidth
	}
	n, err := l.Size()
	if err != nil {
		return err
	}
	b := newBuilder(l.capacity)
	if err := expandTabs(b, l.buf[:n], tabWidth); err != nil {
		return err
	}
	if err := b.WriteByte('\n'); err != nil {
		return err
	}
	l.replace(b.buf)
	return nil
}

func expandTabs(b *builder, src []byte, tabWidth int) error {
	for _, c := range src {
		var err error
		if c == '\t' {
			err = b.repeat(' ', tabWidth)
		} else {
			err = b.WriteByte(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Entab replaces each run of tabWidth consecutive spaces before the first
// newline with a tab. Shorter runs, and what is left of longer ones, are kept
// as spaces. The newline is never part of a run.
func Entab(l *Line, tabWidth int) error {
	if tabWidth < 1 {
		return ErrInvalidWidth
	}
	n, err := l.Size()
	if err != nil {
		return err
	}
	// The output is never longer than the input.
	out := make([]byte, 0, n+1)
	count := 0
	for _, c := range l.buf[:n] {
		if c != ' ' {
			count = 0
			out = append(out, c)
			continue
		}
		count++
		if count == tabWidth {
			out = append(out[:len(out)-(tabWidth-1)], '\t')
			count = 0
		} else {
			out = append(out, ' ')
		}
	}
	out = append(out, '\n')
	l.replace(out)
	return nil
}

package line

// Reverse reverses the bytes before the first newline in place. The newline and
// whatever follows it stay where they are.
func Reverse(l *Line) error {
	last, err := l.LastIndex()
	if err != nil {
		return err
	}
	for i, j := 0, last; i < j; i, j = i+1, j-1 {
		l.buf[i], l.buf[j] = l.buf[j], l.buf[i]
	}
	return nil
}

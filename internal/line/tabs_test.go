package line

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestDetab(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"\t\tfoo\n", "        foo\n"},
		{"a\tb\n", "a    b\n"},
		{"no tabs\n", "no tabs\n"},
		{"\n", "\n"},
		// Only the logical line is kept.
		{"\tx\ny\n", "    x\n"},
	} {
		l := mustLine(t, tc.in, DefaultCapacity)
		if err := Detab(l, 4); err != nil {
			t.Fatal(err)
		}
		if got := l.String(); got != tc.want {
			t.Errorf("Detab(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDetabCapacity(t *testing.T) {
	l := mustLine(t, "\t\t\n", 8)
	if err := Detab(l, 4); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("got %v, want %v", err, ErrCapacityExceeded)
	}
	if got, want := l.String(), "\t\t\n"; got != want {
		t.Fatalf("line changed on error: got %q, want %q", got, want)
	}
	// Eight spaces, the newline and the sentinel fit exactly.
	l = mustLine(t, "\t\t\n", 10)
	if err := Detab(l, 4); err != nil {
		t.Fatal(err)
	}
}

func TestEntab(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"        foo\n", "\t\tfoo\n"},
		{"a     b\n", "a\t b\n"},
		{"ab  cd  \n", "ab  cd  \n"},
		{"foo    \n", "foo\t\n"},
		{"  x  \n", "  x  \n"},
		{"\n", "\n"},
	} {
		l := mustLine(t, tc.in, DefaultCapacity)
		if err := Entab(l, 4); err != nil {
			t.Fatal(err)
		}
		if got := l.String(); got != tc.want {
			t.Errorf("Entab(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInvalidTabWidth(t *testing.T) {
	l := mustLine(t, "\tx\n", DefaultCapacity)
	if err := Detab(l, 0); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("got %v, want %v", err, ErrInvalidWidth)
	}
	if err := Entab(l, -1); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("got %v, want %v", err, ErrInvalidWidth)
	}
	if err := Fold(l, 10, 0); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("got %v, want %v", err, ErrInvalidWidth)
	}
}

// randomTabbedLine returns words separated by either a tab or a single space,
// so that expanding the tabs never creates a space run mixing both.
func randomTabbedLine(r *rand.Rand) string {
	var b strings.Builder
	n := 1 + r.Intn(8)
	space := false
	for i := 0; i < n; i++ {
		if !space && r.Intn(3) == 0 {
			b.WriteByte('\t')
		}
		space = false
		for j := 1 + r.Intn(6); j > 0; j-- {
			b.WriteByte(byte('a' + r.Intn(26)))
		}
		switch r.Intn(3) {
		case 0:
			b.WriteByte('\t')
		case 1:
			b.WriteByte(' ')
			space = true
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func TestEntabUndoesDetab(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1000; i++ {
		in := randomTabbedLine(r)
		for _, tabWidth := range []int{2, 4, 8} {
			l := mustLine(t, in, DefaultCapacity)
			if err := Detab(l, tabWidth); err != nil {
				t.Fatal(err)
			}
			if err := Entab(l, tabWidth); err != nil {
				t.Fatal(err)
			}
			if got := l.String(); got != in {
				t.Fatalf("tab width %d: got %q, want %q", tabWidth, got, in)
			}
		}
	}
}

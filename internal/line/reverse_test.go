package line

import (
	"math/rand"
	"testing"
	"time"
)

func TestReverse(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"abc\n", "cba\n"},
		{"a\n", "a\n"},
		{"\n", "\n"},
		{"ab\ncd\n", "ba\ncd\n"},
	} {
		l := mustLine(t, tc.in, DefaultCapacity)
		if err := Reverse(l); err != nil {
			t.Fatal(err)
		}
		if got := l.String(); got != tc.want {
			t.Errorf("Reverse(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReverseTwiceIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1000; i++ {
		p := make([]byte, r.Intn(64))
		for j := range p {
			// Any byte but the newline.
			p[j] = byte(r.Intn(255))
			if p[j] == '\n' {
				p[j]++
			}
		}
		in := string(p) + "\n"
		l := mustLine(t, in, DefaultCapacity)
		if err := Reverse(l); err != nil {
			t.Fatal(err)
		}
		if err := Reverse(l); err != nil {
			t.Fatal(err)
		}
		if got := l.String(); got != in {
			t.Fatalf("got %q, want %q", got, in)
		}
	}
}

package line

import (
	"fmt"
	"sort"
)

// Func transforms a line in place.
type Func func(l *Line) error

// Options parameterize the operations returned by Lookup.
type Options struct {
	TabWidth  int
	FoldWidth int
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		TabWidth:  DefaultTabWidth,
		FoldWidth: DefaultFoldWidth,
	}
}

var ops = map[string]func(Options) Func{
	"copy": func(Options) Func {
		return func(l *Line) error {
			return Copy(l, l)
		}
	},
	"reverse": func(Options) Func {
		return Reverse
	},
	"detab": func(o Options) Func {
		return func(l *Line) error {
			return Detab(l, o.TabWidth)
		}
	},
	"entab": func(o Options) Func {
		return func(l *Line) error {
			return Entab(l, o.TabWidth)
		}
	},
	"fold": func(o Options) Func {
		return func(l *Line) error {
			return Fold(l, o.FoldWidth, o.TabWidth)
		}
	},
}

// Lookup returns the operation called name, configured with o.
func Lookup(name string, o Options) (Func, error) {
	mk, ok := ops[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	if o.TabWidth < 1 {
		return nil, fmt.Errorf("tab width %d: %w", o.TabWidth, ErrInvalidWidth)
	}
	return mk(o), nil
}

// Names returns the names of all operations, sorted.
func Names() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/nicolagi/linefs/internal/line"
	"golang.org/x/text/transform"
)

// driver applies one operation to every line of its input.
type driver struct {
	op       string
	fn       line.Func
	capacity int

	// If set, the first line that does not fit stops processing.
	strict bool

	// Optional.
	journal *journal
}

type counts struct {
	processed int
	rejected  int
}

func newDriver(config *lineConfig) (*driver, error) {
	fn, err := line.Lookup(config.Op, config.options())
	if err != nil {
		return nil, err
	}
	return &driver{
		op:       config.Op,
		fn:       fn,
		capacity: config.Capacity,
	}, nil
}

// process reads lines from r until the end of the stream and writes the
// transformed lines to w.
func (d *driver) process(r io.Reader, w io.Writer) (c counts, err error) {
	in := line.NewReader(r)
	out := bufio.NewWriter(w)
	defer func() {
		if ferr := out.Flush(); err == nil {
			err = ferr
		}
	}()
	l := line.New(d.capacity)
	var input []byte
	for n := 1; ; n++ {
		err := in.Read(l)
		if err == io.EOF {
			return c, nil
		}
		if err == nil {
			input = append(input[:0], l.Bytes()...)
			err = d.fn(l)
		}
		if errors.Is(err, line.ErrCapacityExceeded) {
			c.rejected++
			if d.strict {
				return c, fmt.Errorf("line %d: %w", n, err)
			}
			log.Printf("Skipping line %d: %v", n, err)
			continue
		}
		if err != nil {
			return c, fmt.Errorf("line %d: %w", n, err)
		}
		if _, err := out.Write(l.Bytes()); err != nil {
			return c, err
		}
		c.processed++
		if d.journal != nil {
			if err := d.journal.record(d.op, input, l.Bytes()); err != nil {
				log.Printf("Could not record line %d: %v", n, err)
			}
		}
	}
}

// stream copies r to w through a line.Transformer. Unlike process, it stops at
// the first line that does not fit, and nothing is journaled.
func (d *driver) stream(r io.Reader, w io.Writer) error {
	_, err := io.Copy(w, transform.NewReader(r, line.NewTransformer(d.fn, d.capacity)))
	return err
}

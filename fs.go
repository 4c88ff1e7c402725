package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lionkov/go9p/p"
	"github.com/lionkov/go9p/p/srv"
	"github.com/nicolagi/linefs/internal/line"
	"github.com/nicolagi/linefs/internal/nodes"
	"golang.org/x/text/transform"
)

var (
	// The user and group owning all file system nodes will be the ones owning the
	// process.
	user  = p.OsUsers.Uid2User(os.Getuid())
	group = p.OsUsers.Gid2Group(os.Getgid())
)

// outputLimit bounds how much output a line file keeps before it must be
// truncated.
const outputLimit = 1 << 24

// settings are shared by all line files and can be changed through the ctl
// file.
type settings struct {
	mu       sync.Mutex
	opts     line.Options
	capacity int
}

func (s *settings) options() line.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// setting is a change requested through the ctl file.
type setting struct {
	key   string
	value int
}

// set applies all changes, or none of them if any is invalid.
func (s *settings) set(changes ...setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts := s.opts
	for _, c := range changes {
		switch c.key {
		case "width":
			opts.FoldWidth = c.value
		case "tabwidth":
			if c.value < 1 {
				return fmt.Errorf("tab width %d: %w", c.value, line.ErrInvalidWidth)
			}
			opts.TabWidth = c.value
		default:
			return fmt.Errorf("unknown setting %q", c.key)
		}
	}
	s.opts = opts
	return nil
}

func (s *settings) String() string {
	o := s.options()
	return fmt.Sprintf("width %d\ntabwidth %d\n", o.FoldWidth, o.TabWidth)
}

// lineOps is the file system node for one operation. Each complete line written
// to it is transformed and appended to the output, which is what reads return.
type lineOps struct {
	name     string
	settings *settings
	journal  *journal

	mu    sync.Mutex
	w     *transform.Writer // Created on the first write after a flush.
	out   *nodes.RAMFile
	mtime uint32
}

func newLineOps(name string, s *settings, j *journal) *lineOps {
	return &lineOps{
		name:     name,
		settings: s,
		journal:  j,
		out:      nodes.NewRAMFile(nil, outputLimit),
	}
}

// apply looks up the operation on every call, so that changes made through the
// ctl file apply to the next line.
func (o *lineOps) apply(l *line.Line) error {
	fn, err := line.Lookup(o.name, o.settings.options())
	if err != nil {
		return err
	}
	var input []byte
	if o.journal != nil {
		input = append(input, l.Bytes()...)
	}
	if err := fn(l); err != nil {
		return err
	}
	if o.journal != nil {
		if err := o.journal.record(o.name, input, l.Bytes()); err != nil {
			log.Printf("Could not record line for %s: %v", o.name, err)
		}
	}
	return nil
}

// Stat implements srv.FStatOp.
func (o *lineOps) Stat(fid *srv.FFid) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	fid.F.Length = uint64(o.out.Size())
	if o.mtime != 0 {
		fid.F.Mtime = o.mtime
	}
	return nil
}

// Wstat implements srv.FWstatOp. It only allows truncating the file to zero
// length, which discards the output and any partial line written so far.
func (o *lineOps) Wstat(_ *srv.FFid, dir *p.Dir) error {
	if dir.ChangeLength() && dir.Length == 0 {
		o.mu.Lock()
		o.out.Truncate()
		o.w = nil
		o.mu.Unlock()
	}
	return nil
}

// Read implements srv.FReadOp.
func (o *lineOps) Read(_ *srv.FFid, buf []byte, offset uint64) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	n, err := o.out.ReadAt(buf, int64(offset))
	// In 9P, we don't answer with Rerror when we get to EOF!
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// Write implements srv.FWriteOp. The offset is ignored: data is always
// appended to the pending input. A write containing a line that does not fit
// fails, and the partial line pending before it is dropped.
func (o *lineOps) Write(_ *srv.FFid, data []byte, _ uint64) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.w == nil {
		o.w = transform.NewWriter(o.out, line.NewTransformer(o.apply, o.settings.capacity))
	}
	n, err := o.w.Write(data)
	if err != nil {
		log.Printf("Could not transform %d bytes written to %s: %v", len(data), o.name, err)
		o.w = nil
		return n, err
	}
	o.mtime = uint32(time.Now().Unix())
	return n, nil
}

// Clunk implements srv.FClunkOp. It flushes a pending partial line as if it
// ended with a newline.
func (o *lineOps) Clunk(*srv.FFid) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.w == nil {
		return nil
	}
	err := o.w.Close()
	o.w = nil
	if err != nil {
		log.Printf("Could not flush %s: %v", o.name, err)
	}
	return err
}

// ctlOps is the file system node for reading and changing the settings.
type ctlOps struct {
	settings *settings
}

// Stat implements srv.FStatOp.
func (c *ctlOps) Stat(fid *srv.FFid) error {
	fid.F.Length = uint64(len(c.settings.String()))
	return nil
}

// Read implements srv.FReadOp.
func (c *ctlOps) Read(_ *srv.FFid, buf []byte, offset uint64) (int, error) {
	s := c.settings.String()
	if offset >= uint64(len(s)) {
		return 0, nil
	}
	return copy(buf, s[offset:]), nil
}

// Write implements srv.FWriteOp. Each line is a setting name and an integer,
// e.g. "width 72". A write with a bad line changes nothing.
func (c *ctlOps) Write(_ *srv.FFid, data []byte, _ uint64) (int, error) {
	var changes []setting
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return 0, fmt.Errorf("bad ctl message %q", s.Text())
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("bad ctl message %q: %w", s.Text(), err)
		}
		changes = append(changes, setting{key: fields[0], value: value})
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	if err := c.settings.set(changes...); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Wstat implements srv.FWstatOp. It pretends all changes were successful, so
// that "echo width 72 > ctl" works.
func (c *ctlOps) Wstat(*srv.FFid, *p.Dir) error {
	return nil
}

// newTree returns the root of a file system with a file per operation and the
// ctl file.
func newTree(s *settings, j *journal) (*srv.File, error) {
	root := newFile()
	if err := root.Add(nil, "/", user, group, p.DMDIR|0755, nil); err != nil {
		return nil, err
	}
	for _, name := range line.Names() {
		if err := newFile().Add(root, name, user, group, 0600, newLineOps(name, s, j)); err != nil {
			return nil, err
		}
	}
	if err := newFile().Add(root, "ctl", user, group, 0600, &ctlOps{settings: s}); err != nil {
		return nil, err
	}
	return root, nil
}

// serve serves the tree over 9P on addr. It only returns on error.
func serve(addr string, root *srv.File) error {
	fsrv := srv.NewFileSrv(root)
	fsrv.Dotu = false
	fsrv.Id = "linefs"
	fsrv.Start(fsrv)
	if err := fsrv.StartNetListener("tcp", addr); err != nil {
		return fmt.Errorf("could not listen on %q: %w", addr, err)
	}
	return nil
}

// Placeholder/extension point.
func newFile() *srv.File {
	return &srv.File{}
}

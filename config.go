package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nicolagi/linefs/internal/line"
)

// lineConfig is read from a JSON file whose nested objects are flattened into
// the dotted keys below, e.g.
//
//	{
//		"op": "fold",
//		"fold": { "width": 72 },
//		"line": { "capacity": 4096, "tab_width": 8 },
//		"listen_addr": "localhost:5640",
//		"journal": "/home/glenda/lib/linefs/journal.bolt"
//	}
type lineConfig struct {
	Op         string // "op": the operation applied by the filter.
	Capacity   int    // "line.capacity": bytes per line, newline and sentinel included.
	TabWidth   int    // "line.tab_width"
	FoldWidth  int    // "fold.width"
	ListenAddr string // "listen_addr": the 9P server listens on this TCP address.
	Journal    string // "journal": path of the Bolt database recording processed lines.
}

var configKeys = []string{
	"op",
	"line.capacity",
	"line.tab_width",
	"fold.width",
	"listen_addr",
	"journal",
}

func defaultConfigPath() string {
	return os.ExpandEnv("$HOME/lib/linefs/config")
}

func defaultConfig() *lineConfig {
	return &lineConfig{
		Op:        "fold",
		Capacity:  line.DefaultCapacity,
		TabWidth:  line.DefaultTabWidth,
		FoldWidth: line.DefaultFoldWidth,
	}
}

// loadConfig reads the configuration at path over the defaults. A missing file
// is only an error when required is set.
func loadConfig(path string, required bool) (*lineConfig, error) {
	config := defaultConfig()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	doc, err := ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.apply(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *lineConfig) apply(doc Document) error {
	if unknown := doc.unknownKeys(configKeys); len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown keys: %s", strings.Join(unknown, ", "))
	}
	for _, key := range []string{"op", "listen_addr", "journal"} {
		if _, present := doc[key]; !present {
			continue
		}
		v, ok := doc.GetString(key)
		if !ok {
			return fmt.Errorf("%q must be a string", key)
		}
		switch key {
		case "op":
			c.Op = v
		case "listen_addr":
			c.ListenAddr = v
		case "journal":
			c.Journal = os.ExpandEnv(v)
		}
	}
	for key, dst := range map[string]*int{
		"line.capacity":  &c.Capacity,
		"line.tab_width": &c.TabWidth,
		"fold.width":     &c.FoldWidth,
	} {
		if _, present := doc[key]; !present {
			continue
		}
		v, ok := doc.GetInt(key)
		if !ok {
			return fmt.Errorf("%q must be an integer", key)
		}
		*dst = v
	}
	return nil
}

func (c *lineConfig) options() line.Options {
	return line.Options{
		TabWidth:  c.TabWidth,
		FoldWidth: c.FoldWidth,
	}
}

func (c *lineConfig) validate() error {
	if c.Capacity < 2 {
		return fmt.Errorf("line capacity %d is below 2", c.Capacity)
	}
	// The 9P files and -stream go through transform buffers of fixed size.
	if c.Capacity > line.MaxStreamCapacity {
		return fmt.Errorf("line capacity %d is above %d", c.Capacity, line.MaxStreamCapacity)
	}
	_, err := line.Lookup(c.Op, c.options())
	return err
}

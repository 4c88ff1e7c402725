package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/nicolagi/linefs/internal/line"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "", "path to configuration `file` (default $HOME/lib/linefs/config)")
	op := flag.String("op", "", "`operation` to apply: "+strings.Join(line.Names(), ", "))
	width := flag.Int("width", line.DefaultFoldWidth, "fold `width` in columns")
	tabWidth := flag.Int("tabwidth", line.DefaultTabWidth, "spaces per tab")
	capacity := flag.Int("capacity", line.DefaultCapacity, "maximum line length in bytes, newline included, plus one")
	termWidth := flag.Bool("termwidth", false, "fold at the width of the terminal on standard output")
	listenAddr := flag.String("listen", "", "serve the line files over 9P on `address` instead of filtering")
	journalPath := flag.String("journal", "", "record processed lines in the Bolt database at `path`")
	history := flag.Bool("history", false, "print the journal and exit")
	logPath := flag.String("log", "", "append logs to `file` instead of standard error")
	strict := flag.Bool("strict", false, "stop at the first line that does not fit")
	stream := flag.Bool("stream", false, "stream the input through a transformer, stopping at the first line that does not fit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: linefs [flags] [file ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	mustSetupLogging(*logPath)

	config := mustLoadConfig(*configPath)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "op":
			config.Op = *op
		case "width":
			config.FoldWidth = *width
		case "tabwidth":
			config.TabWidth = *tabWidth
		case "capacity":
			config.Capacity = *capacity
		case "listen":
			config.ListenAddr = *listenAddr
		case "journal":
			config.Journal = *journalPath
		}
	})
	if *termWidth {
		w, err := terminalWidth(os.Stdout)
		if err != nil {
			log.Fatalf("Could not get terminal width: %v", err)
		}
		config.FoldWidth = w
	}
	if err := config.validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var j *journal
	if config.Journal != "" {
		var err error
		if j, err = openJournal(config.Journal); err != nil {
			log.Fatalf("Could not open journal %q: %v", config.Journal, err)
		}
		defer func() { _ = j.Close() }()
	} else if *history {
		log.Fatal("The -history flag needs a journal")
	}
	if *history {
		if err := j.printHistory(os.Stdout); err != nil {
			log.Fatalf("Could not print history: %v", err)
		}
		return
	}

	if config.ListenAddr != "" {
		root, err := newTree(&settings{opts: config.options(), capacity: config.Capacity}, j)
		if err != nil {
			log.Fatalf("Could not build file tree: %v", err)
		}
		// This is a blocking call. The program will be terminated by sending a signal.
		if err := serve(config.ListenAddr, root); err != nil {
			log.Fatal(err)
		}
		return
	}

	d, err := newDriver(config)
	if err != nil {
		log.Fatal(err)
	}
	d.strict = *strict
	d.journal = j
	if err := run(d, flag.Args(), *stream, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run filters each named file, or standard input if there are none, to w.
func run(d *driver, paths []string, stream bool, w io.Writer) error {
	filter := func(r io.Reader, name string) error {
		if stream {
			return d.stream(r, w)
		}
		c, err := d.process(r, w)
		if c.rejected > 0 {
			log.Printf("%s: %d lines processed, %d rejected", name, c.processed, c.rejected)
		}
		return err
	}
	if len(paths) == 0 {
		if err := filter(os.Stdin, "stdin"); err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		return nil
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = filter(f, path)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func terminalWidth(f *os.File) (int, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, errors.New(f.Name() + " is not a terminal")
	}
	w, _, err := term.GetSize(fd)
	return w, err
}

func mustLoadConfig(path string) *lineConfig {
	required := path != ""
	if !required {
		path = defaultConfigPath()
	}
	config, err := loadConfig(path, required)
	if err != nil {
		log.Fatalf("Could not load configuration file %q: %v", path, err)
	}
	return config
}

func mustSetupLogging(path string) {
	log.SetPrefix("linefs: ")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		log.Fatalf("Could not open log file %q: %v", path, err)
	}
	log.SetOutput(f)
}

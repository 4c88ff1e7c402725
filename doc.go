// Command linefs transforms text one line at a time: it reverses lines,
// expands tabs into spaces (detab), collapses runs of spaces into tabs
// (entab), or folds lines at a maximum column width, breaking between words.
//
// By default it filters the named files, or standard input, to standard
// output:
//
//	linefs -op fold -width 40 notes.txt
//	linefs -op entab -tabwidth 8 < Makefile.in
//
// Lines are at most -capacity bytes long (1000 by default, counting the newline
// and one more byte). Longer lines are reported and skipped, or stop the run
// with -strict.
//
// Linefs looks for a configuration file at "$HOME/lib/linefs/config". It is
// in JSON format and is described in config.go. An alternative configuration
// file can be specified with the -config command line flag. Command line flags
// override the configuration file.
//
// With -journal, or a "journal" configuration entry, every processed line is
// recorded with its result in a Bolt database; -history prints it.
//
// With -listen, linefs serves a 9P file server instead. The root directory
// holds a file per operation: copy, detab, entab, fold, reverse. Lines written
// to one of them are transformed as soon as their newline arrives, and the
// results are read back from the same file. A partial last line is flushed
// when the file is closed, and truncating the file clears it. The ctl file
// reads as the current settings, and accepts lines such as "width 72" or
// "tabwidth 8". For example, with plan9port:
//
//	9p write linefs/ctl <<< 'width 30'
//	9p write linefs/fold < README
//	9p read linefs/fold
package main // import "github.com/nicolagi/linefs"

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nicolagi/linefs/internal/line"
)

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`{ "user": { "name": "Frank", "age": 42 }, "flag": true }`))
	if err != nil {
		t.Fatal(err)
	}
	want := Document{
		"user.name": "Frank",
		"user.age":  float64(42),
		"flag":      true,
	}
	if d := cmp.Diff(want, doc); d != "" {
		t.Fatal(d)
	}
	if got, ok := doc.GetInt("user.age"); !ok || got != 42 {
		t.Fatalf("got %d, %v, want 42, true", got, ok)
	}
	if _, ok := doc.GetInt("user.name"); ok {
		t.Fatal("got ok for a string, want not ok")
	}
	if got, ok := doc.GetString("user.name"); !ok || got != "Frank" {
		t.Fatalf("got %q, %v, want %q, true", got, ok, "Frank")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", "/home/glenda")
	path := writeConfig(t, `{
		"op": "entab",
		"fold": { "width": 72 },
		"line": { "capacity": 4096, "tab_width": 8 },
		"listen_addr": "localhost:5640",
		"journal": "$HOME/lib/linefs/journal.bolt"
	}`)
	got, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	want := &lineConfig{
		Op:         "entab",
		Capacity:   4096,
		TabWidth:   8,
		FoldWidth:  72,
		ListenAddr: "localhost:5640",
		Journal:    "/home/glenda/lib/linefs/journal.bolt",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatal(d)
	}
	if err := got.validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	got, err := loadConfig(writeConfig(t, `{"fold": {"width": 0}}`), true)
	if err != nil {
		t.Fatal(err)
	}
	want := defaultConfig()
	want.FoldWidth = 0
	if d := cmp.Diff(want, got); d != "" {
		t.Fatal(d)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent")
	got, err := loadConfig(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(defaultConfig(), got); d != "" {
		t.Fatal(d)
	}
	if _, err := loadConfig(path, true); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want %v", err, os.ErrNotExist)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, content := range []string{
		`not json`,
		`{"fold": {"width": "wide"}}`,
		`{"fold": {"width": 7.5}}`,
		`{"op": 3}`,
		`{"fold": {"height": 3}}`,
	} {
		if _, err := loadConfig(writeConfig(t, content), true); err == nil {
			t.Errorf("%s: got nil, want error", content)
		}
	}
}

func TestValidate(t *testing.T) {
	config := defaultConfig()
	config.Capacity = 1
	if err := config.validate(); err == nil {
		t.Error("capacity 1: got nil, want error")
	}
	config = defaultConfig()
	config.Capacity = line.MaxStreamCapacity + 1
	if err := config.validate(); err == nil {
		t.Error("capacity above the stream buffers: got nil, want error")
	}
	config.Capacity = line.MaxStreamCapacity
	if err := config.validate(); err != nil {
		t.Errorf("capacity %d: %v", config.Capacity, err)
	}
	config = defaultConfig()
	config.Op = "sort"
	if err := config.validate(); err == nil {
		t.Error("unknown operation: got nil, want error")
	}
	config = defaultConfig()
	config.TabWidth = 0
	if err := config.validate(); err == nil {
		t.Error("tab width 0: got nil, want error")
	}
}

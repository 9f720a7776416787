package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveOpen(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache"))
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	body := "5.1,3.5,1.4,0.2,0\n"
	entry, err := s.Save("iris.csv", "https://example.com/data/iris.csv", strings.NewReader(body))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if entry.Size != int64(len(body)) {
		t.Errorf("expected size %d, got %d", len(body), entry.Size)
	}
	if entry.File != "iris.csv" {
		t.Errorf("expected file iris.csv, got %s", entry.File)
	}

	if !s.Has("iris.csv") {
		t.Error("expected entry to be cached")
	}

	rc, err := s.Open("iris.csv")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != body {
		t.Errorf("expected %q, got %q", body, got)
	}

	loaded, err := s.Load("iris.csv")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.URL != entry.URL {
		t.Errorf("expected url %s, got %s", entry.URL, loaded.URL)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "iris.csv", "metadata.json")); err != nil {
		t.Errorf("metadata.json missing: %v", err)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save("a", "http://x/a.csv", strings.NewReader("old")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("a", "http://x/a.csv", strings.NewReader("new")); err != nil {
		t.Fatal(err)
	}
	rc, err := s.Open("a")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "new" {
		t.Errorf("expected replaced contents, got %q", got)
	}
}

func TestListAndRemove(t *testing.T) {
	s := New(t.TempDir())
	for _, name := range []string{"digits.csv.gz", "boston_house_prices.csv"} {
		if _, err := s.Save(name, "http://x/"+name, strings.NewReader(name)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "boston_house_prices.csv" {
		t.Errorf("expected sorted entries, got %s first", entries[0].Name)
	}

	if err := s.Remove("digits.csv.gz"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Has("digits.csv.gz") {
		t.Error("entry still cached after remove")
	}
	if err := s.Remove("digits.csv.gz"); !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached, got %v", err)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	entries, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestInvalidNames(t *testing.T) {
	s := New(t.TempDir())
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Save(name, "http://x/y", strings.NewReader("")); !errors.Is(err, ErrInvalidName) {
				t.Errorf("expected ErrInvalidName, got %v", err)
			}
		})
	}
}

func TestOpenMissing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Open("iris.csv"); !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached, got %v", err)
	}
}

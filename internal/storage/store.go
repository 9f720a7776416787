// Package storage caches downloaded dataset files on disk. Each entry is a
// directory holding the file and a metadata.json describing its origin.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNotCached   = errors.New("storage: entry not cached")
	ErrInvalidName = errors.New("storage: invalid entry name")
)

const metadataFile = "metadata.json"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type Entry struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	File      string    `json:"file"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

func (s *Store) entryDir(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.baseDir, name), nil
}

// Save copies r into the cache under name, replacing any previous entry.
func (s *Store) Save(name, url string, r io.Reader) (*Entry, error) {
	dir, err := s.entryDir(name)
	if err != nil {
		return nil, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file := path.Base(url)
	if file == "." || file == "/" || file == metadataFile {
		file = name
	}

	size, err := writeFile(filepath.Join(dir, file), r)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	entry := &Entry{
		Name:      name,
		URL:       url,
		File:      file,
		Timestamp: time.Now(),
		Size:      size,
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	err = enc.Encode(entry)
	if cerr := metaFile.Close(); cerr != nil {
		err = multierror.Append(err, cerr).ErrorOrNil()
	}
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	return entry, nil
}

func writeFile(p string, r io.Reader) (n int64, err error) {
	f, err := os.Create(p)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	return io.Copy(f, r)
}

func (s *Store) Load(name string) (*Entry, error) {
	dir, err := s.entryDir(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotCached, name)
		}
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Open returns the cached file for name.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	entry, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, name, entry.File))
}

func (s *Store) Has(name string) bool {
	_, err := s.Load(name)
	return err == nil
}

// List returns all entries sorted by name.
func (s *Store) List() ([]Entry, error) {
	dirs, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		entry, err := s.Load(d.Name())
		if err != nil {
			continue
		}
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (s *Store) Remove(name string) error {
	if !s.Has(name) {
		return fmt.Errorf("%w: %s", ErrNotCached, name)
	}
	dir, _ := s.entryDir(name)
	return os.RemoveAll(dir)
}

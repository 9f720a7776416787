package fetch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDataset  = errors.New("fetch: dataset not in metadata")
	ErrUnknownEncoding = errors.New("fetch: unknown encoding")
	ErrDecode          = errors.New("fetch: invalid byte sequence")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

// EntryNotFoundError reports a zip member that is not in the archive.
type EntryNotFoundError struct {
	Name      string
	Available []string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("zip entry %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

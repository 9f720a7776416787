package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/encoding/ianaindex"
)

// DecodeBytes converts b from the named IANA charset to a string. UTF-8,
// the default, is strict: invalid sequences fail with ErrDecode.
func DecodeBytes(b []byte, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		if !utf8.Valid(b) {
			return "", ErrDecode
		}
		return string(b), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownEncoding, encoding)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(out), nil
}

// DecodeLines decodes all of b before splitting it after each newline, so
// multi-byte charsets such as UTF-16 survive intact.
func DecodeLines(b []byte, encoding string) ([]string, error) {
	text, err := DecodeBytes(b, encoding)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// WriteLines writes lines to dir/fname as they are, without separators.
func WriteLines(dir, fname string, lines []string) (err error) {
	f, err := os.Create(filepath.Join(dir, fname))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()

	for _, line := range lines {
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}

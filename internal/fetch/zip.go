package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
)

// FetchZip downloads an archive into memory.
func (c *Client) FetchZip(ctx context.Context, url string) (*zip.Reader, error) {
	data, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}

// FetchZipEntry returns the contents of one member of the archive at url.
func (c *Client) FetchZipEntry(ctx context.Context, url, entry string) ([]byte, error) {
	zr, err := c.FetchZip(ctx, url)
	if err != nil {
		return nil, err
	}
	return ReadZipEntry(zr, entry)
}

// ReadZipEntry matches entry against the member names exactly as stored in
// the archive.
func ReadZipEntry(zr *zip.Reader, entry string) ([]byte, error) {
	names := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		if zf.Name != entry {
			names = append(names, zf.Name)
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, &EntryNotFoundError{Name: entry, Available: names}
}

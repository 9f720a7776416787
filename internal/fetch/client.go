// Package fetch downloads files and zip archives over HTTP and reads the
// JSON dataset metadata catalog.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

const DefaultChunkSize = 1024

type Client struct {
	http   *http.Client
	logger *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(opts ...Option) *Client {
	c := &Client{http: http.DefaultClient, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open issues a GET and returns the body of a 2xx response.
func (c *Client) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}

// Get returns the whole body of url.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// DownloadFile streams url into destPath in chunkSize pieces. The body goes
// to a temporary file next to destPath which is renamed on success, so
// destPath never holds a partial download.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	body, err := c.Open(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(destPath), "."+filepath.Base(destPath)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	n, err := copyChunks(tmp, body, chunkSize)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if cerr := tmp.Close(); cerr != nil {
		err = multierror.Append(err, cerr).ErrorOrNil()
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	c.logger.Printf("downloaded %s -> %s (%d bytes)", url, destPath, n)
	return nil
}

func copyChunks(w io.Writer, r io.Reader, chunkSize int) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// DownloadDataset looks name up in the metadata catalog and downloads its
// archive into destDir, returning the written path.
func (c *Client) DownloadDataset(ctx context.Context, metadataPath, name, destDir string) (string, error) {
	info, err := DatasetMetadata(metadataPath, name)
	if err != nil {
		return "", err
	}
	if info.DownloadURL == "" {
		return "", fmt.Errorf("dataset %s: no download_url", name)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	base := path.Base(info.DownloadURL)
	if base == "." || base == "/" {
		base = name
	}
	dest := filepath.Join(destDir, base)
	if err := c.DownloadFile(ctx, info.DownloadURL, dest, DefaultChunkSize); err != nil {
		return "", err
	}
	return dest, nil
}

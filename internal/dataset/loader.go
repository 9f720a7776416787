package dataset

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/san-kum/mlutils/internal/fetch"
	"github.com/san-kum/mlutils/internal/storage"
)

type Loader struct {
	mode     Mode
	baseURL  string
	cache    *storage.Store
	fetcher  *fetch.Client
	logger   *log.Logger
	registry *Registry
}

type Option func(*Loader)

func WithBaseURL(u string) Option {
	return func(l *Loader) { l.baseURL = u }
}

// WithCache keeps downloaded source files in s.
func WithCache(s *storage.Store) Option {
	return func(l *Loader) { l.cache = s }
}

func WithFetcher(c *fetch.Client) Option {
	return func(l *Loader) { l.fetcher = c }
}

func WithLogger(lg *log.Logger) Option {
	return func(l *Loader) { l.logger = lg }
}

func NewLoader(mode Mode, opts ...Option) *Loader {
	l := &Loader{
		mode:     mode,
		baseURL:  DefaultBaseURL,
		registry: defaultRegistry,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = fetch.New(fetch.WithLogger(l.logger))
	}
	return l
}

func (l *Loader) Mode() Mode { return l.mode }

// LoadData fetches and parses the named dataset in the loader's mode.
func (l *Loader) LoadData(ctx context.Context, name string) (*Data, error) {
	src, err := l.registry.Get(name)
	if err != nil {
		return nil, err
	}

	files, err := l.readSources(ctx, src.Files)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	r, err := src.parse(files)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	data := &Data{
		Name:         name,
		Mode:         l.mode,
		FeatureNames: r.features,
		TargetNames:  r.targetNames,
	}
	if l.mode == Table {
		data.Table = r.table()
	} else {
		data.X, data.Y = r.arrays()
	}

	n, d := data.Dims()
	l.logger.Printf("name=%s n_samples=%d n_features=%d", strings.ToUpper(name), n, d)
	return data, nil
}

// LoadTrainTest loads name and splits it. In table mode the caller must set
// ignoreType; the features are then every column except target.
func (l *Loader) LoadTrainTest(ctx context.Context, name string, testSize float64, ignoreType bool, seed int64) (*Split, error) {
	if l.mode == Table && !ignoreType {
		return nil, ErrTypeConstraint
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTestSize, testSize)
	}

	data, err := l.LoadData(ctx, name)
	if err != nil {
		return nil, err
	}

	x, y := data.X, data.Y
	if data.Mode == Table {
		if x, y, err = tableArrays(data.Table); err != nil {
			return nil, err
		}
	}
	return TrainTestSplit(x, y, testSize, seed)
}

func (l *Loader) sourceURL(file string) string {
	return strings.TrimRight(l.baseURL, "/") + "/" + file
}

// readSources fetches every file concurrently. Cache entries are per file,
// so the goroutines never share a directory.
func (l *Loader) readSources(ctx context.Context, names []string) (map[string][]byte, error) {
	bodies := make([][]byte, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(idx int, file string) {
			defer wg.Done()
			bodies[idx], errs[idx] = l.readSource(ctx, file)
		}(i, name)
	}
	wg.Wait()

	files := make(map[string][]byte, len(names))
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		files[names[i]] = bodies[i]
	}
	return files, nil
}

func (l *Loader) readSource(ctx context.Context, file string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if l.cache != nil {
		b, err = l.readCached(ctx, file)
	} else {
		b, err = l.fetcher.Get(ctx, l.sourceURL(file))
	}
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(file, ".gz") {
		return b, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func (l *Loader) readCached(ctx context.Context, file string) ([]byte, error) {
	if !l.cache.Has(file) {
		url := l.sourceURL(file)
		body, err := l.fetcher.Open(ctx, url)
		if err != nil {
			return nil, err
		}
		_, err = l.cache.Save(file, url, body)
		body.Close()
		if err != nil {
			return nil, err
		}
		l.logger.Printf("cached %s", file)
	}

	rc, err := l.cache.Open(file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/san-kum/mlutils/internal/anim"
	"golang.org/x/sync/errgroup"
)

// FrameSequence keeps every full frame for export as numbered PNG files.
type FrameSequence struct {
	frames []image.Image
}

var _ FrameSink = (*FrameSequence)(nil)

func (s *FrameSequence) WriteFrame(img image.Image, _ image.Rectangle, _ anim.Frame) error {
	s.frames = append(s.frames, img)
	return nil
}

func (s *FrameSequence) Len() int { return len(s.frames) }

// FrameName is the file name of frame i (0 is the empty initial frame).
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}

// WriteDir encodes the frames into dir in parallel.
func (s *FrameSequence) WriteDir(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, img := range s.frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writePNG(filepath.Join(dir, FrameName(i)), img)
		})
	}
	return g.Wait()
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	return png.Encode(f, img)
}

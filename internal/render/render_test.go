package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mlutils/internal/anim"
	"gonum.org/v1/plot/vg"
)

func smallOptions() Options {
	return Options{Width: 3 * vg.Inch, Height: 2 * vg.Inch, DPI: 60}
}

func playAll(t *testing.T, kind anim.PlotKind, canvas *PlotCanvas, points []anim.Point) *anim.Animation {
	t.Helper()
	a, err := anim.New(kind, canvas).Play(points, "test", true)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if err := a.RenderAll(); err != nil {
		t.Fatalf("render all: %v", err)
	}
	return a
}

func TestGIFBlitFrames(t *testing.T) {
	points := []anim.Point{{0, 0}, {1, 1}, {2, 4}, {3, 9}}

	for _, kind := range []anim.PlotKind{anim.Line, anim.Scatter} {
		t.Run(kind.String(), func(t *testing.T) {
			sink := NewGIF(DefaultColor, anim.FrameInterval)
			canvas := NewPlotCanvas(smallOptions(), sink)
			playAll(t, kind, canvas, points)

			if sink.Len() != len(points)+1 {
				t.Fatalf("expected %d gif frames, got %d", len(points)+1, sink.Len())
			}

			full := sink.Frames()[0].Bounds()
			if full != canvas.Image().Bounds() {
				t.Errorf("initial frame %v does not cover canvas %v", full, canvas.Image().Bounds())
			}
			for i, fr := range sink.Frames()[1:] {
				b := fr.Bounds()
				if !b.In(full) {
					t.Errorf("frame %d bounds %v outside canvas %v", i, b, full)
				}
				if b.Dx()*b.Dy() >= full.Dx()*full.Dy() {
					t.Errorf("frame %d repaints the whole canvas", i)
				}
			}

			var buf bytes.Buffer
			if err := sink.Encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			decoded, err := gif.DecodeAll(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(decoded.Image) != len(points)+1 {
				t.Errorf("decoded %d frames", len(decoded.Image))
			}
			for _, d := range decoded.Delay {
				if d != 2 {
					t.Errorf("expected delay 2, got %d", d)
				}
			}
		})
	}
}

func TestRenderBeforeConfigure(t *testing.T) {
	c := NewPlotCanvas(smallOptions())
	if err := c.Render(anim.Frame{Index: -1}); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestFrameSequenceWriteDir(t *testing.T) {
	seq := &FrameSequence{}
	canvas := NewPlotCanvas(smallOptions(), seq)
	playAll(t, anim.Scatter, canvas, []anim.Point{{1, 2}, {2, 3}, {3, 1}})

	dir := filepath.Join(t.TempDir(), "frames")
	if err := seq.WriteDir(context.Background(), dir); err != nil {
		t.Fatalf("write dir: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 frame files, got %d", len(entries))
	}
	if _, err := os.Stat(filepath.Join(dir, FrameName(3))); err != nil {
		t.Errorf("last frame missing: %v", err)
	}
}

func TestSavePlot(t *testing.T) {
	canvas := NewPlotCanvas(smallOptions())
	playAll(t, anim.Line, canvas, []anim.Point{{0, 1}, {1, 3}, {2, 2}})

	dir := t.TempDir()
	for _, name := range []string{"final.png", "final.svg"} {
		path := filepath.Join(dir, name)
		if err := canvas.SavePlot(path); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestPalette(t *testing.T) {
	pal := Palette(color.RGBA{R: 0, G: 0, B: 255, A: 255})
	if len(pal) != 256 {
		t.Fatalf("expected 256 colors, got %d", len(pal))
	}
	r, g, b, _ := pal[0].RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Errorf("first entry should be the primary color, got %v", pal[0])
	}
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloser) Close() error { return f.closeErr }

func TestWriteClosePlotReportsCloseError(t *testing.T) {
	canvas := NewPlotCanvas(smallOptions())
	playAll(t, anim.Scatter, canvas, []anim.Point{{0, 1}, {1, 3}})

	closeErr := errors.New("disk full")
	out := &failingCloser{closeErr: closeErr}
	err := canvas.WriteClosePlot(out, "svg")
	if !errors.Is(err, closeErr) {
		t.Fatalf("expected close error, got %v", err)
	}
	if out.Len() == 0 {
		t.Error("plot should be written before close")
	}

	if err := canvas.WriteClosePlot(&failingCloser{}, "svg"); err != nil {
		t.Errorf("expected nil error when close succeeds, got %v", err)
	}
}

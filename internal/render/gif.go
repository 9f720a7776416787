package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/mlutils/internal/anim"
)

// GIF collects frames into an animated GIF. The initial frame covers the
// whole canvas; every later frame only carries its dirty rectangle and is
// composited over the previous one.
type GIF struct {
	pal   color.Palette
	delay int
	anim  gif.GIF
}

var _ FrameSink = (*GIF)(nil)

// NewGIF returns a sink whose palette is tuned for primary.
func NewGIF(primary color.Color, interval time.Duration) *GIF {
	delay := int(interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	return &GIF{
		pal:   Palette(primary),
		delay: delay,
		anim:  gif.GIF{LoopCount: 0},
	}
}

// Palette blends primary toward white in Lab space and adds a gray ramp for
// axes and text.
func Palette(primary color.Color) color.Palette {
	c, ok := colorful.MakeColor(primary)
	if !ok {
		c, _ = colorful.MakeColor(DefaultColor)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}

	pal := make(color.Palette, 0, 256)
	pal = append(pal, c)
	for i := 1; i < 128; i++ {
		pal = append(pal, c.BlendLab(white, float64(i)/127).Clamped())
	}
	for i := 0; i < 128; i++ {
		v := float64(i) / 127
		pal = append(pal, colorful.Color{R: v, G: v, B: v})
	}
	return pal
}

func (g *GIF) WriteFrame(img image.Image, dirty image.Rectangle, f anim.Frame) error {
	r := dirty
	if len(g.anim.Image) == 0 {
		r = img.Bounds()
		g.anim.Config = image.Config{
			ColorModel: g.pal,
			Width:      r.Dx(),
			Height:     r.Dy(),
		}
	}
	if r.Empty() {
		r = image.Rectangle{Min: img.Bounds().Min, Max: img.Bounds().Min.Add(image.Pt(1, 1))}
	}

	pm := image.NewPaletted(r, g.pal)
	draw.Draw(pm, r, img, r.Min, draw.Src)

	g.anim.Image = append(g.anim.Image, pm)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	g.anim.Disposal = append(g.anim.Disposal, gif.DisposalNone)
	return nil
}

func (g *GIF) Len() int { return len(g.anim.Image) }

// Frames exposes the encoded frames, mainly for inspection.
func (g *GIF) Frames() []*image.Paletted { return g.anim.Image }

func (g *GIF) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &g.anim)
}

func (g *GIF) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	return g.Encode(f)
}

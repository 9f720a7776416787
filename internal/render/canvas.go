// Package render draws animation frames with gonum/plot and hands the
// rasterized result to frame sinks (GIF, PNG sequence).
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/san-kum/mlutils/internal/anim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var ErrNotConfigured = errors.New("render: canvas used before Configure")

// DefaultColor is the primitive color (ggplot red).
var DefaultColor color.Color = color.RGBA{R: 0xe2, G: 0x4a, B: 0x33, A: 0xff}

// FrameSink receives every rasterized frame. dirty is the pixel rectangle
// that changed since the previous frame; it spans the whole image for the
// initial frame.
type FrameSink interface {
	WriteFrame(img image.Image, dirty image.Rectangle, f anim.Frame) error
}

type Options struct {
	Width, Height vg.Length
	DPI           int
	Color         color.Color
	LineWidth     vg.Length
	Radius        vg.Length
}

func DefaultOptions() Options {
	return Options{
		Width:     6.4 * vg.Inch,
		Height:    4.8 * vg.Inch,
		DPI:       100,
		Color:     DefaultColor,
		LineWidth: vg.Points(1.5),
		Radius:    vg.Points(3),
	}
}

// PlotCanvas is an anim.Canvas backed by a gonum plot with fixed axes.
type PlotCanvas struct {
	opts   Options
	sinks  []FrameSink
	plot   *plot.Plot
	kind   anim.PlotKind
	points []anim.Point
	last   image.Image
}

var _ anim.Canvas = (*PlotCanvas)(nil)

func NewPlotCanvas(opts Options, sinks ...FrameSink) *PlotCanvas {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.DPI <= 0 {
		opts.DPI = def.DPI
	}
	if opts.Color == nil {
		opts.Color = def.Color
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if opts.Radius <= 0 {
		opts.Radius = def.Radius
	}
	return &PlotCanvas{opts: opts, sinks: sinks}
}

// AddSink attaches another frame sink.
func (c *PlotCanvas) AddSink(s FrameSink) { c.sinks = append(c.sinks, s) }

func (c *PlotCanvas) Configure(ax anim.Axes) error {
	p := plot.New()
	p.Title.Text = ax.Title
	p.X.Min, p.X.Max = 0, ax.Bounds.XMax
	p.Y.Min, p.Y.Max = 0, ax.Bounds.YMax
	if ax.Ticks != nil {
		p.X.Tick.Marker = ax.Ticks
		p.Y.Tick.Marker = ax.Ticks
	}

	c.plot = p
	c.points = nil
	c.last = nil
	return nil
}

func (c *PlotCanvas) Render(f anim.Frame) error {
	if c.plot == nil {
		return ErrNotConfigured
	}
	if f.Index < 0 {
		c.kind = f.Kind
	}
	c.points = f.Points

	cnv := vgimg.NewWith(vgimg.UseWH(c.opts.Width, c.opts.Height), vgimg.UseDPI(c.opts.DPI))
	dc := draw.New(cnv)
	data, err := c.drawOn(dc)
	if err != nil {
		return err
	}
	img := cnv.Image()

	dirty := img.Bounds()
	if f.Index >= 0 {
		dirty = c.pixelRect(data, f.Dirty, img.Bounds())
	}
	for _, s := range c.sinks {
		if err := s.WriteFrame(img, dirty, f); err != nil {
			return fmt.Errorf("frame %d: %w", f.Index, err)
		}
	}
	c.last = img
	return nil
}

// Image returns the most recently rendered frame.
func (c *PlotCanvas) Image() image.Image { return c.last }

// drawOn draws axes, title and the primitive onto dc and returns the data
// area canvas.
func (c *PlotCanvas) drawOn(dc draw.Canvas) (draw.Canvas, error) {
	c.plot.Draw(dc)
	data := c.plot.DataCanvas(dc)
	if len(c.points) == 0 {
		return data, nil
	}
	prim, err := c.primitive()
	if err != nil {
		return data, err
	}
	prim.Plot(data, c.plot)
	return data, nil
}

func (c *PlotCanvas) primitive() (plot.Plotter, error) {
	xys := make(plotter.XYs, len(c.points))
	for i, p := range c.points {
		xys[i].X, xys[i].Y = p.X, p.Y
	}

	if c.kind == anim.Scatter {
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = c.opts.Color
		s.GlyphStyle.Radius = c.opts.Radius
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		return s, nil
	}

	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c.opts.Color
	l.LineStyle.Width = c.opts.LineWidth
	return l, nil
}

// pixelRect maps a data-space region to image pixels, padded by the
// primitive's stroke and marker size.
func (c *PlotCanvas) pixelRect(data draw.Canvas, r anim.Region, bounds image.Rectangle) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	xf, yf := c.plot.Transforms(&data)
	pad := c.opts.Radius + c.opts.LineWidth + vg.Points(1)
	scale := float64(c.opts.DPI) / vg.Inch.Points()
	h := float64(bounds.Dy())

	x0 := float64(xf(r.Min.X)-pad) * scale
	x1 := float64(xf(r.Max.X)+pad) * scale
	y0 := h - float64(yf(r.Max.Y)+pad)*scale
	y1 := h - float64(yf(r.Min.Y)-pad)*scale

	rect := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	)
	return rect.Add(bounds.Min).Intersect(bounds)
}

package render

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot/vg/draw"

	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// WritePlot writes the current frame in format (png, svg, pdf, ...).
func (c *PlotCanvas) WritePlot(output io.Writer, format string) error {
	if c.plot == nil {
		return ErrNotConfigured
	}
	cw, err := draw.NewFormattedCanvas(c.opts.Width, c.opts.Height, format)
	if err != nil {
		return err
	}
	if _, err := c.drawOn(draw.New(cw)); err != nil {
		return err
	}
	_, err = cw.WriteTo(output)
	return err
}

func (c *PlotCanvas) WriteClosePlot(output io.WriteCloser, format string) (err error) {
	defer func() {
		if cerr := output.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	return c.WritePlot(output, format)
}

// SavePlot writes the current frame to path; the format follows the
// file extension.
func (c *PlotCanvas) SavePlot(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	return c.WriteClosePlot(output, format)
}

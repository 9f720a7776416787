package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/mlutils/internal/anim"
	"github.com/san-kum/mlutils/internal/config"
	"github.com/san-kum/mlutils/internal/render"
	"github.com/san-kum/mlutils/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func animatePoints(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	if preset != "" {
		if len(args) == 0 {
			return fmt.Errorf("--preset needs a dataset")
		}
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		if !cmd.Flags().Changed("x") {
			xColumn = p.X
		}
		if !cmd.Flags().Changed("y") {
			yColumn = p.Y
		}
		if !cmd.Flags().Changed("kind") {
			cfg.Animation.Kind = p.Kind
		}
		if !cmd.Flags().Changed("integer-ticks") {
			cfg.Animation.IntegerTicks = p.IntegerTicks
		}
	}

	var (
		points []anim.Point
		title  string
		err    error
	)
	switch {
	case csvPath != "":
		points, err = readPoints(csvPath)
		title = csvPath
	case len(args) == 1:
		points, err = datasetPoints(ctx, args[0])
		title = fmt.Sprintf("%s: %s", args[0], yColumn)
	default:
		return fmt.Errorf("need a dataset or --csv")
	}
	if err != nil {
		return err
	}

	plotKind, err := cfg.PlotKind()
	if err != nil {
		return err
	}

	if gifPath == "" && framesDir == "" && savePath == "" {
		if termWidth < 1 || termHeight < 1 {
			return fmt.Errorf("terminal canvas %dx%d: width and height must be positive", termWidth, termHeight)
		}
		screen := viz.NewScreen(termWidth, termHeight)
		a, err := anim.New(plotKind, screen).Play(points, title, cfg.Animation.IntegerTicks)
		if err != nil {
			return err
		}
		return viz.Play(a, screen, viz.WithColor(cfg.Animation.Color))
	}

	primary, err := colorful.Hex(cfg.Animation.Color)
	if err != nil {
		return err
	}
	canvas := render.NewPlotCanvas(render.Options{
		Width:  vg.Length(cfg.Animation.Width) * vg.Inch,
		Height: vg.Length(cfg.Animation.Height) * vg.Inch,
		DPI:    cfg.Animation.DPI,
		Color:  primary,
	})

	var (
		gif    *render.GIF
		frames *render.FrameSequence
	)
	if gifPath != "" {
		gif = render.NewGIF(primary, anim.FrameInterval)
		canvas.AddSink(gif)
	}
	if framesDir != "" {
		frames = &render.FrameSequence{}
		canvas.AddSink(frames)
	}

	a, err := anim.New(plotKind, canvas).Play(points, title, cfg.Animation.IntegerTicks)
	if err != nil {
		return err
	}
	if err := a.RenderAll(); err != nil {
		return err
	}

	if gif != nil {
		if err := gif.Save(gifPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d frames)\n", gifPath, gif.Len())
	}
	if frames != nil {
		if err := os.MkdirAll(framesDir, 0755); err != nil {
			return err
		}
		if err := frames.WriteDir(ctx, framesDir); err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", frames.Len(), framesDir)
	}
	if savePath != "" {
		if err := canvas.SavePlot(savePath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", savePath)
	}
	return nil
}

// datasetPoints pairs two columns of a dataset. An empty x column uses the
// sample index.
func datasetPoints(ctx context.Context, name string) ([]anim.Point, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	data, err := loader.LoadData(ctx, name)
	if err != nil {
		return nil, err
	}

	ys, err := columnValues(data, yColumn)
	if err != nil {
		return nil, err
	}
	var xs []float64
	if xColumn != "" {
		if xs, err = columnValues(data, xColumn); err != nil {
			return nil, err
		}
	}

	points := make([]anim.Point, len(ys))
	for i, y := range ys {
		x := float64(i)
		if xs != nil {
			x = xs[i]
		}
		points[i] = anim.Point{X: x, Y: y}
	}
	return points, nil
}

// readPoints reads x,y records. A first record that does not parse is
// treated as a header.
func readPoints(path string) ([]anim.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]anim.Point, 0, len(records))
	for i, rec := range records {
		x, xerr := strconv.ParseFloat(rec[0], 64)
		y, yerr := strconv.ParseFloat(rec[1], 64)
		if xerr != nil || yerr != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("%s:%d: invalid point %v", path, i+1, rec)
		}
		points = append(points, anim.Point{X: x, Y: y})
	}
	return points, nil
}

package anim

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/plot"
)

// FrameInterval is the fixed delay between two frames.
const FrameInterval = 20 * time.Millisecond

type Point struct {
	X, Y float64
}

// PlotKind selects the draw primitive of an engine.
type PlotKind int

const (
	Line PlotKind = iota
	Scatter
)

func ParsePlotKind(s string) (PlotKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "scatter":
		return Scatter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlotKind, s)
}

func (k PlotKind) String() string {
	switch k {
	case Line:
		return "line"
	case Scatter:
		return "scatter"
	}
	return fmt.Sprintf("PlotKind(%d)", int(k))
}

// Bounds is the fixed viewport [0, XMax] x [0, YMax] of a session.
type Bounds struct {
	XMax, YMax float64
}

// ComputeBounds returns (max(x)+1, max(y)+1) over the whole sequence.
func ComputeBounds(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{XMax: 1, YMax: 1}
	}
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Bounds{XMax: maxX + 1, YMax: maxY + 1}
}

func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.XMax && p.Y <= b.YMax
}

// Region is a data-space rectangle marking what changed in a frame.
type Region struct {
	Min, Max Point
	empty    bool
}

// EmptyRegion marks a frame that changed nothing.
func EmptyRegion() Region {
	return Region{empty: true}
}

func regionOf(points ...Point) Region {
	if len(points) == 0 {
		return EmptyRegion()
	}
	r := Region{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

func (r Region) Empty() bool { return r.empty }

// TickMode selects between integer-only and continuous tick placement.
type TickMode int

const (
	ContinuousTicks TickMode = iota
	IntegerTicksOnly
)

// Ticker returns the tick locator for the mode.
func (m TickMode) Ticker() plot.Ticker {
	if m == IntegerTicksOnly {
		return IntegerTicks{Max: DefaultMaxTicks}
	}
	return plot.DefaultTicks{}
}

// Axes describes how a canvas must be configured for a session.
type Axes struct {
	Bounds Bounds
	Title  string
	Mode   TickMode
	Ticks  plot.Ticker
}

// Frame is one step of an animation handed to the canvas.
// Index is -1 for the initial empty frame.
type Frame struct {
	Index  int
	Kind   PlotKind
	Points []Point
	Dirty  Region
}

// Canvas renders frames. Configure is called once per session before the
// initial frame; Render is called for the initial frame and every step.
type Canvas interface {
	Configure(ax Axes) error
	Render(f Frame) error
}

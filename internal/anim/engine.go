package anim

import (
	"context"
	"fmt"
	"time"
)

// Engine binds one draw strategy to one canvas.
type Engine struct {
	kind    PlotKind
	canvas  Canvas
	current *Animation
}

// New returns an engine drawing kind onto canvas. A nil canvas discards
// every frame, which is useful for driving sessions headless.
func New(kind PlotKind, canvas Canvas) *Engine {
	if canvas == nil {
		canvas = nopCanvas{}
	}
	return &Engine{kind: kind, canvas: canvas}
}

func (e *Engine) Kind() PlotKind { return e.kind }

// Play starts a fresh session over points. Any previous animation of this
// engine is terminated once the new points validate; the canvas is
// reconfigured on Init.
func (e *Engine) Play(points []Point, title string, integerTicks bool) (*Animation, error) {
	mode := ContinuousTicks
	if integerTicks {
		mode = IntegerTicksOnly
	}
	s, err := NewSession(points, e.kind, mode)
	if err != nil {
		return nil, err
	}
	if e.current != nil {
		e.current.session.Discard()
	}

	a := &Animation{
		canvas:  e.canvas,
		session: s,
		axes: Axes{
			Bounds: s.Bounds(),
			Title:  title,
			Mode:   mode,
			Ticks:  mode.Ticker(),
		},
		interval: FrameInterval,
	}
	e.current = a
	return a, nil
}

// Animation is the playback controller returned by Play.
type Animation struct {
	canvas   Canvas
	session  *Session
	axes     Axes
	interval time.Duration
}

func (a *Animation) FrameCount() int         { return a.session.Len() }
func (a *Animation) Interval() time.Duration { return a.interval }
func (a *Animation) Axes() Axes              { return a.axes }
func (a *Animation) Session() *Session       { return a.session }
func (a *Animation) Done() bool              { return a.session.State() == Terminated }

// Init configures the canvas and draws the empty primitive.
func (a *Animation) Init() error {
	f, err := a.session.Init()
	if err != nil {
		return err
	}
	if err := a.canvas.Configure(a.axes); err != nil {
		return fmt.Errorf("configure canvas: %w", err)
	}
	if err := a.canvas.Render(f); err != nil {
		return fmt.Errorf("render initial frame: %w", err)
	}
	return nil
}

// Next reveals and renders the next frame.
func (a *Animation) Next() (Frame, bool, error) {
	f, ok, err := a.session.Step()
	if err != nil || !ok {
		return f, ok, err
	}
	if err := a.canvas.Render(f); err != nil {
		return f, false, fmt.Errorf("render frame %d: %w", f.Index, err)
	}
	return f, true, nil
}

// Run plays the whole animation, one frame per interval.
func (a *Animation) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for !a.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if _, _, err := a.Next(); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll initializes the animation if needed and renders every
// remaining frame without waiting between them.
func (a *Animation) RenderAll() error {
	if a.session.State() == BoundsSet {
		if err := a.Init(); err != nil {
			return err
		}
	}
	for {
		_, ok, err := a.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

type nopCanvas struct{}

func (nopCanvas) Configure(Axes) error { return nil }
func (nopCanvas) Render(Frame) error   { return nil }

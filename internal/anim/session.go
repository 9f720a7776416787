package anim

import (
	"fmt"
	"math"
)

// State is the lifecycle position of a session.
type State int

const (
	Uninitialized State = iota
	BoundsSet
	PrimitiveInitialized
	Playing
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case BoundsSet:
		return "bounds-set"
	case PrimitiveInitialized:
		return "primitive-initialized"
	case Playing:
		return "playing"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is the transient state of one playback. It owns a private copy
// of the point sequence; the revealed prefix only ever grows.
type Session struct {
	points   []Point
	revealed []int
	shown    []Point
	kind     PlotKind
	prim     primitive
	bounds   Bounds
	mode     TickMode
	state    State
}

// NewSession validates points and computes the session bounds.
func NewSession(points []Point, kind PlotKind, mode TickMode) (*Session, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}

	s := &Session{
		points:   append([]Point(nil), points...),
		revealed: make([]int, 0, len(points)),
		shown:    make([]Point, 0, len(points)),
		kind:     kind,
		prim:     newPrimitive(kind),
		mode:     mode,
		state:    Uninitialized,
	}
	s.bounds = ComputeBounds(s.points)
	s.state = BoundsSet
	return s, nil
}

// Validate checks the preconditions of a playback: at least one point, all
// coordinates finite and non-negative.
func Validate(points []Point) error {
	if len(points) == 0 {
		return ErrEmptySequence
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return &PointError{Index: i, Point: p, Wrapped: ErrNonFinite}
		}
		if p.X < 0 || p.Y < 0 {
			return &PointError{Index: i, Point: p, Wrapped: ErrNegativeCoordinate}
		}
	}
	return nil
}

// Init produces the empty primitive. It may only be called once.
func (s *Session) Init() (Frame, error) {
	if s.state != BoundsSet {
		return Frame{}, fmt.Errorf("%w (state %s)", ErrNotRestartable, s.state)
	}
	s.state = PrimitiveInitialized
	return Frame{Index: -1, Kind: s.kind, Dirty: s.prim.init()}, nil
}

// Step reveals the next point. It reports false once all points are shown.
func (s *Session) Step() (Frame, bool, error) {
	switch s.state {
	case Uninitialized, BoundsSet:
		return Frame{}, false, ErrNotInitialized
	case Terminated:
		return Frame{}, false, nil
	}

	i := len(s.revealed)
	s.revealed = append(s.revealed, i)
	s.shown = append(s.shown, s.points[i])
	s.state = Playing

	// Cap the view so a consumer appending to it cannot alias later frames.
	shown := s.shown[:len(s.shown):len(s.shown)]
	f := Frame{
		Index:  i,
		Kind:   s.kind,
		Points: shown,
		Dirty:  s.prim.draw(shown),
	}

	if len(s.revealed) == len(s.points) {
		s.state = Terminated
	}
	return f, true, nil
}

// Discard terminates the session without playing the remaining frames.
func (s *Session) Discard() { s.state = Terminated }

func (s *Session) State() State       { return s.state }
func (s *Session) Bounds() Bounds     { return s.bounds }
func (s *Session) Kind() PlotKind     { return s.kind }
func (s *Session) TickMode() TickMode { return s.mode }
func (s *Session) Len() int           { return len(s.points) }

// Revealed returns the indices drawn so far.
func (s *Session) Revealed() []int {
	return append([]int(nil), s.revealed...)
}

// RevealedPoints returns the points drawn so far, in reveal order.
func (s *Session) RevealedPoints() []Point {
	return append([]Point(nil), s.shown...)
}

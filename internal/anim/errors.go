package anim

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPlotKind indicates a plot kind selector that is not line or scatter.
	ErrUnknownPlotKind = errors.New("anim: unknown plot kind")

	// ErrEmptySequence indicates Play was called without points.
	ErrEmptySequence = errors.New("anim: empty point sequence")

	// ErrNegativeCoordinate indicates a point outside the first quadrant.
	ErrNegativeCoordinate = errors.New("anim: negative coordinate")

	// ErrNonFinite indicates a NaN or Inf coordinate.
	ErrNonFinite = errors.New("anim: non-finite coordinate")

	// ErrNotRestartable indicates Init was called on a session that already started.
	ErrNotRestartable = errors.New("anim: frame sequence is not restartable")

	// ErrNotInitialized indicates Next was called before Init.
	ErrNotInitialized = errors.New("anim: session not initialized")
)

// PointError wraps a validation error with the offending point.
type PointError struct {
	Index   int
	Point   Point
	Wrapped error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("point %d (%g, %g): %v", e.Index, e.Point.X, e.Point.Y, e.Wrapped)
}

func (e *PointError) Unwrap() error {
	return e.Wrapped
}

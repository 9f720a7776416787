package anim

// primitive is one of the two draw strategies. init yields the empty path
// or marker set; draw takes every point revealed so far and returns the
// area that changed since the previous frame.
type primitive interface {
	init() Region
	draw(revealed []Point) Region
}

func newPrimitive(kind PlotKind) primitive {
	if kind == Scatter {
		return scatterPrimitive{}
	}
	return linePrimitive{}
}

type linePrimitive struct{}

func (linePrimitive) init() Region { return EmptyRegion() }

// The path only grows, so the dirty area is its newest segment.
func (linePrimitive) draw(revealed []Point) Region {
	switch n := len(revealed); n {
	case 0:
		return EmptyRegion()
	case 1:
		return regionOf(revealed[0])
	default:
		return regionOf(revealed[n-2], revealed[n-1])
	}
}

type scatterPrimitive struct{}

func (scatterPrimitive) init() Region { return EmptyRegion() }

func (scatterPrimitive) draw(revealed []Point) Region {
	if len(revealed) == 0 {
		return EmptyRegion()
	}
	return regionOf(revealed[len(revealed)-1])
}

package anim

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// DefaultMaxTicks is the default bin count of the integer locator.
const DefaultMaxTicks = 10

// IntegerTicks places at most Max+1 major ticks, all on integer values.
// When the range holds no integer it defers to plot.DefaultTicks.
type IntegerTicks struct {
	Max int
}

var _ plot.Ticker = IntegerTicks{}

func (t IntegerTicks) Ticks(min, max float64) []plot.Tick {
	bins := t.Max
	if bins <= 0 {
		bins = DefaultMaxTicks
	}
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi < lo {
		return plot.DefaultTicks{}.Ticks(min, max)
	}

	step := integerStep(hi-lo, bins)
	ticks := make([]plot.Tick, 0, bins+1)
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

// integerStep returns the smallest step in 1, 2, 5, 10, 20, 50, ... that
// splits span into at most bins intervals.
func integerStep(span float64, bins int) float64 {
	for mag := 1.0; ; mag *= 10 {
		for _, f := range []float64{1, 2, 5} {
			step := f * mag
			if math.Floor(span/step) <= float64(bins) {
				return step
			}
		}
	}
}

package anim

import (
	"math"
	"testing"

	"gonum.org/v1/plot"
)

func TestIntegerTicks(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		want     []float64
	}{
		{"small range", 0, 5, []float64{0, 1, 2, 3, 4, 5}},
		{"fractional bounds", 0.5, 3.5, []float64{1, 2, 3}},
		{"wide range", 0, 100, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
		{"step two", 0, 15, []float64{0, 2, 4, 6, 8, 10, 12, 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := IntegerTicks{Max: 10}.Ticks(tt.min, tt.max)
			if len(ticks) != len(tt.want) {
				t.Fatalf("got %d ticks %v, want %v", len(ticks), ticks, tt.want)
			}
			for i, tk := range ticks {
				if tk.Value != tt.want[i] {
					t.Errorf("tick %d = %v, want %v", i, tk.Value, tt.want[i])
				}
				if tk.Label == "" {
					t.Errorf("tick %d has no label", i)
				}
			}
		})
	}
}

func TestIntegerTicksAllIntegers(t *testing.T) {
	for _, max := range []float64{1, 3, 7.3, 42, 1234.5} {
		ticks := IntegerTicks{}.Ticks(0, max)
		if len(ticks) > DefaultMaxTicks+1 {
			t.Errorf("range [0,%v]: %d ticks exceed limit", max, len(ticks))
		}
		for _, tk := range ticks {
			if tk.Value != math.Trunc(tk.Value) {
				t.Errorf("range [0,%v]: non-integer tick %v", max, tk.Value)
			}
		}
	}
}

func TestIntegerTicksNoIntegerInRange(t *testing.T) {
	ticks := IntegerTicks{}.Ticks(0.1, 0.9)
	want := plot.DefaultTicks{}.Ticks(0.1, 0.9)
	if len(ticks) != len(want) {
		t.Errorf("expected fallback to default ticks, got %v", ticks)
	}
}

func TestTickModeTicker(t *testing.T) {
	if _, ok := ContinuousTicks.Ticker().(plot.DefaultTicks); !ok {
		t.Error("continuous mode should use default ticks")
	}
	if _, ok := IntegerTicksOnly.Ticker().(IntegerTicks); !ok {
		t.Error("integer mode should use integer ticks")
	}
}

package viz

import (
	"errors"
	"image"
	"math"

	"github.com/san-kum/mlutils/internal/anim"
)

var ErrNotConfigured = errors.New("viz: screen used before Configure")

// Screen is an anim.Canvas drawing onto a braille canvas. The grid persists
// between frames; each frame only rasterizes the newest segment or marker.
type Screen struct {
	canvas *Canvas
	axes   anim.Axes
	ready  bool
	frame  anim.Frame
	dirty  image.Rectangle
}

var _ anim.Canvas = (*Screen)(nil)

// NewScreen returns a screen of w x h braille cells, at least one by one.
func NewScreen(w, h int) *Screen {
	return &Screen{canvas: NewCanvas(max(w, 1), max(h, 1))}
}

func (s *Screen) Configure(ax anim.Axes) error {
	s.axes = ax
	s.ready = true
	s.frame = anim.Frame{Index: -1}
	s.dirty = image.Rectangle{}
	s.canvas.Clear()
	return nil
}

func (s *Screen) Render(f anim.Frame) error {
	if !s.ready {
		return ErrNotConfigured
	}
	s.frame = f

	if f.Index < 0 {
		s.canvas.Clear()
		s.dirty = image.Rect(0, 0, s.canvas.Width, s.canvas.Height)
		return nil
	}

	n := len(f.Points)
	if n == 0 {
		s.dirty = image.Rectangle{}
		return nil
	}
	x1, y1 := s.project(f.Points[n-1])
	switch {
	case f.Kind == anim.Scatter:
		s.marker(x1, y1)
		s.dirty = cells(x1-1, y1-1, x1+1, y1+1)
	case n == 1:
		s.canvas.Set(x1, y1)
		s.dirty = cells(x1, y1, x1, y1)
	default:
		x0, y0 := s.project(f.Points[n-2])
		s.canvas.DrawLine(x0, y0, x1, y1)
		s.dirty = cells(x0, y0, x1, y1)
	}
	return nil
}

// project maps a data point into dot coordinates of the fixed viewport.
func (s *Screen) project(p anim.Point) (int, int) {
	w, h := s.canvas.DotsWide()-1, s.canvas.DotsHigh()-1
	x := int(math.Round(p.X / s.axes.Bounds.XMax * float64(w)))
	y := h - int(math.Round(p.Y/s.axes.Bounds.YMax*float64(h)))
	return x, y
}

func (s *Screen) marker(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 && dy != 0 {
				continue
			}
			s.canvas.Set(x+dx, y+dy)
		}
	}
}

// cells converts a dot rectangle into the braille cells it touches.
func cells(x0, y0, x1, y1 int) image.Rectangle {
	r := image.Rect(x0, y0, x1, y1).Canon()
	return image.Rect(r.Min.X/2, r.Min.Y/4, r.Max.X/2+1, r.Max.Y/4+1)
}

func (s *Screen) Canvas() *Canvas   { return s.canvas }
func (s *Screen) Axes() anim.Axes   { return s.axes }
func (s *Screen) Frame() anim.Frame { return s.frame }

// Dirty returns the cells touched by the last frame.
func (s *Screen) Dirty() image.Rectangle { return s.dirty }

// yLabels returns a label per canvas row, empty where no tick falls.
func (s *Screen) yLabels() []string {
	labels := make([]string, s.canvas.Height)
	if s.axes.Ticks == nil {
		return labels
	}
	last := s.canvas.Height - 1
	for _, tk := range s.axes.Ticks.Ticks(0, s.axes.Bounds.YMax) {
		if tk.Label == "" || tk.Value < 0 || tk.Value > s.axes.Bounds.YMax {
			continue
		}
		row := last - int(math.Round(tk.Value/s.axes.Bounds.YMax*float64(last)))
		if labels[row] == "" {
			labels[row] = tk.Label
		}
	}
	return labels
}

// xLabels lays tick labels out on a single line of canvas width.
func (s *Screen) xLabels() string {
	line := make([]rune, s.canvas.Width)
	for i := range line {
		line[i] = ' '
	}
	if s.axes.Ticks == nil {
		return string(line)
	}
	last := s.canvas.Width - 1
	next := 0
	for _, tk := range s.axes.Ticks.Ticks(0, s.axes.Bounds.XMax) {
		if tk.Label == "" || tk.Value < 0 || tk.Value > s.axes.Bounds.XMax {
			continue
		}
		col := int(math.Round(tk.Value / s.axes.Bounds.XMax * float64(last)))
		label := []rune(tk.Label)
		if col+len(label) > len(line) {
			col = len(line) - len(label)
		}
		if col < next || col < 0 {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return string(line)
}

package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	if c.DotsWide() != 4 || c.DotsHigh() != 4 {
		t.Fatalf("expected 4x4 dots, got %dx%d", c.DotsWide(), c.DotsHigh())
	}

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected set dots to be on")
	}
	if c.IsSet(1, 0) || c.IsSet(4, 0) {
		t.Error("unexpected dot")
	}
	if got := c.Grid[0][0]; got != brailleBlank|0x1 {
		t.Errorf("expected %U, got %U", brailleBlank|0x1, got)
	}
	if got := c.Grid[0][1]; got != brailleBlank|0x80 {
		t.Errorf("expected %U, got %U", brailleBlank|0x80, got)
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear should reset dots")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("dot (%d,0) not set", x)
		}
	}

	c.Clear()
	c.DrawLine(0, 3, 3, 0)
	for i := 0; i < 4; i++ {
		if !c.IsSet(i, 3-i) {
			t.Errorf("diagonal dot (%d,%d) not set", i, 3-i)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	rows := c.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len([]rune(rows[0])) != 3 {
		t.Errorf("expected 3 cells per row, got %d", len([]rune(rows[0])))
	}
	if strings.Count(c.String(), "\n") != 2 {
		t.Error("expected newline after each row")
	}
}

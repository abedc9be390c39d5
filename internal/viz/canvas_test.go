package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSetAndLit(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(3, 5, InkBody)
	if !c.Lit(3, 5) {
		t.Error("expected pixel lit")
	}
	if c.Lit(2, 5) {
		t.Error("neighbouring pixel should be dark")
	}
	// Out of bounds writes are ignored.
	c.Set(-1, 0, InkBody)
	c.Set(8, 0, InkBody)
	c.Set(0, 8, InkBody)
	if got := c.Grid[1][1]; got != blank|pixelMap[1][1] {
		t.Errorf("cell = %U", got)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19, InkFlame)
	for i := 0; i < 20; i++ {
		if !c.Lit(i, i) {
			t.Fatalf("diagonal pixel %d not lit", i)
		}
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Circle(20, 20, 8, InkBody)
	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("expected %v on the circle", p)
		}
	}
	if c.Lit(20, 20) {
		t.Error("center should be empty")
	}
}

func TestCanvasResizeClears(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(1, 1, InkBody)
	c.Resize(6, 3)
	if c.Lit(1, 1) {
		t.Error("resize should clear")
	}
	if w, h := c.Pixels(); w != 12 || h != 12 {
		t.Errorf("pixels = %dx%d", w, h)
	}
	if rows := strings.Count(c.String(), "\n") + 1; rows != 3 {
		t.Errorf("expected 3 rows, got %d", rows)
	}
}

func TestCanvasRenderKeepsRunes(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, InkHot)
	var styles [numInks]lipgloss.Style
	out := c.Render(styles)
	if !strings.ContainsRune(out, blank|pixelMap[0][0]) {
		t.Errorf("rendered output lost the lit cell: %q", out)
	}
	if strings.Count(out, string(rune(blank))) != 2 {
		t.Errorf("expected two blank cells in %q", out)
	}
}

func TestCanvasInkAt(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(3, 5, InkFlame)
	if got := c.InkAt(1, 1); got != InkFlame {
		t.Errorf("expected flame ink, got %v", got)
	}
	if got := c.InkAt(9, 9); got != InkDim {
		t.Errorf("out of range should be dim, got %v", got)
	}
}

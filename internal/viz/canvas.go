package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Ink selects the style a cell is rendered with. The last ink written to a
// cell wins.
type Ink uint8

const (
	InkDim Ink = iota
	InkBody
	InkFlame
	InkIntake
	InkHot
	InkHUD
	numInks
)

// Canvas is a braille bitmap of Width×Height cells, each holding 2×4
// sub-pixels. Coordinates passed to the drawing methods are sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	ink           [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas and clears it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.ink = make([][]Ink, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.ink[i] = make([]Ink, w)
	}
	c.Clear()
}

// Pixels is the sub-pixel resolution.
func (c *Canvas) Pixels() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set lights the sub-pixel at (x, y) with ink.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	c.ink[row][col] = ink
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.ink[i][j] = InkDim
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect outlines the rectangle with its top-left corner at (x, y).
func (c *Canvas) Rect(x, y, w, h int, ink Ink) {
	if w <= 0 || h <= 0 {
		return
	}
	c.DrawLine(x, y, x+w-1, y, ink)
	c.DrawLine(x, y+h-1, x+w-1, y+h-1, ink)
	c.DrawLine(x, y, x, y+h-1, ink)
	c.DrawLine(x+w-1, y, x+w-1, y+h-1, ink)
}

// Circle outlines a circle with the midpoint algorithm. A radius below one
// sub-pixel sets only the center.
func (c *Canvas) Circle(cx, cy, r int, ink Ink) {
	if r < 1 {
		c.Set(cx, cy, ink)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+p[0], cy+p[1], ink)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// InkAt is the ink of the cell at col, row.
func (c *Canvas) InkAt(col, row int) Ink {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
		return InkDim
	}
	return c.ink[row][col]
}

// Inks lists every ink in draw order.
func Inks() []Ink {
	out := make([]Ink, numInks)
	for i := range out {
		out[i] = Ink(i)
	}
	return out
}

// Render draws the grid with one lipgloss style per ink. Runs of cells
// sharing an ink are rendered together; blank cells are left unstyled.
func (c *Canvas) Render(styles [numInks]lipgloss.Style) string {
	var b strings.Builder
	var run strings.Builder
	for i, row := range c.Grid {
		cur := Ink(255)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == Ink(255) {
				b.WriteString(run.String())
			} else {
				b.WriteString(styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for j, r := range row {
			ink := c.ink[i][j]
			if r == blank {
				ink = Ink(255)
			}
			if ink != cur {
				flush()
				cur = ink
			}
			run.WriteRune(r)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

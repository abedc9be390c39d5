package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

func vec(p dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func v2(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x), float32(y))
}

func rgba(c params.Color, alpha float64) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(dynamo.Clamp01(alpha)*255))
}

func rect(r dynamo.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

// triangle draws a filled triangle in whatever winding the caller gives;
// raylib culls clockwise faces.
func triangle(a, b, c rl.Vector2, col rl.Color) {
	if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, col)
}

// fan fills the polygon outline as triangles around center.
func fan(center rl.Vector2, outline []rl.Vector2, col rl.Color) {
	for i := 0; i+1 < len(outline); i++ {
		triangle(center, outline[i], outline[i+1], col)
	}
}

// quadCurve samples a quadratic Bezier from p0 to p2 into dst.
func quadCurve(dst []rl.Vector2, p0, p1, p2 rl.Vector2, n int) []rl.Vector2 {
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		u := 1 - t
		dst = append(dst, rl.NewVector2(
			u*u*p0.X+2*u*t*p1.X+t*t*p2.X,
			u*u*p0.Y+2*u*t*p1.Y+t*t*p2.Y,
		))
	}
	return dst
}

func drawArrow(from, to rl.Vector2, col rl.Color) {
	rl.DrawLineEx(from, to, 3, col)
	angle := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
	s1, c1 := math.Sincos(angle - math.Pi/7)
	s2, c2 := math.Sincos(angle + math.Pi/7)
	triangle(to,
		rl.NewVector2(to.X-float32(8*c1), to.Y-float32(8*s1)),
		rl.NewVector2(to.X-float32(8*c2), to.Y-float32(8*s2)),
		col)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// drawTextCentered centers text horizontally on x.
func (a *App) drawTextCentered(text string, x, y float64, size int, color rl.Color) {
	m := rl.MeasureTextEx(a.Font, text, float32(size), 1)
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x)-m.X/2, float32(y)), float32(size), 1, color)
}

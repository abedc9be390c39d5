// Package hud computes the decoration shared by the window and terminal
// hosts: dial readouts, the starfield, the pressure wave trace and the
// overload blast. Everything here is pure so both hosts draw the same
// picture from the same frame.
package hud

import (
	"fmt"
	"math"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/sim"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

// Dial is one circular gauge.
type Dial struct {
	Label   string
	Display string
	Value   float64 // [0,1] fill
	X, Y    float64 // center
	Radius  float64
	Color   params.Color
}

var (
	Cyan    = params.Color{R: 104, G: 224, B: 255}
	Magenta = params.Color{R: 255, G: 125, B: 242}
	White   = params.Color{R: 255, G: 255, B: 255}
)

const dialRadius = 60

// Dials lays out the thrust, temperature and rate gauges across the top of
// a w×h surface.
func Dials(w, h float64, s telemetry.Snapshot) []Dial {
	thrust, temp, rate := s.Dials()
	y := h * 0.18
	return []Dial{
		{Label: "THRUST", Display: fmt.Sprintf("%.1f N", s.Thrust), Value: thrust, X: w * 0.18, Y: y, Radius: dialRadius, Color: Cyan},
		{Label: "TEMP", Display: fmt.Sprintf("%.0f K", s.ChamberTemp), Value: temp, X: w * 0.5, Y: y, Radius: dialRadius, Color: Magenta},
		{Label: "RATE", Display: fmt.Sprintf("%.1f Hz", s.PulseRate), Value: rate, X: w * 0.82, Y: y, Radius: dialRadius, Color: White},
	}
}

// Star is one twinkling backdrop point.
type Star struct {
	X, Y  float64
	Alpha float64
}

// Stars places n stars on a fixed lattice; only their brightness changes
// with time.
func Stars(w, h, t float64, n int) []Star {
	if w < 1 || h < 1 {
		return nil
	}
	iw, ih := int(w), int(h)
	out := make([]Star, n)
	for i := range out {
		tw := (dynamo.FastSin((t*0.8+float64(i))*0.9) + 1) / 2
		out[i] = Star{
			X:     float64(i * 97 % iw),
			Y:     float64(i * 173 % ih),
			Alpha: 0.06 + tw*0.16,
		}
	}
	return out
}

// Wave traces the standing pressure wave inside the chamber as n points.
func Wave(g sim.Geometry, p params.Params, t float64, n int) []dynamo.Vec2 {
	if n < 2 {
		n = 2
	}
	cycles := 2 + p.PulseFrequency*0.5
	out := make([]dynamo.Vec2, n)
	for i := range out {
		rel := float64(i) / float64(n-1)
		phase := rel*2*math.Pi*cycles + t*p.PulseFrequency*2
		out[i] = dynamo.Vec2{
			X: g.Chamber.X + rel*g.Chamber.W,
			Y: g.CenterY + dynamo.FastSin(phase)*g.Chamber.H*0.18,
		}
	}
	return out
}

// ChamberGlow is the opacity of the combustion glow.
func ChamberGlow(fuel float64) float64 {
	return math.Min(0.32+fuel*0.5, 0.85)
}

// Debris is one blast fragment.
type Debris struct {
	Pos    dynamo.Vec2
	Radius float64
	Color  params.Color
	Smoke  bool
}

var flameColors = [...]params.Color{
	{R: 255, G: 220, B: 80},
	{R: 255, G: 140, B: 40},
	{R: 255, G: 255, B: 255},
}

// Blast scatters the overload fireball around the chamber center: 12 flame
// fragments on a ring and 8 smoke puffs further out.
func Blast(g sim.Geometry, rng Rand) []Debris {
	c := g.Chamber.Center()
	h := g.Chamber.H
	out := make([]Debris, 0, 20)
	for i := 0; i < 12; i++ {
		a := 2 * math.Pi / 12 * float64(i)
		s, co := math.Sincos(a)
		out = append(out, Debris{
			Pos:    dynamo.Vec2{X: c.X + co*h*(0.7+rng.Float64()*0.3), Y: g.CenterY + s*h*(0.7+rng.Float64()*0.3)},
			Radius: 8 + rng.Float64()*8,
			Color:  flameColors[int(rng.Float64()*float64(len(flameColors)))%len(flameColors)],
		})
	}
	for i := 0; i < 8; i++ {
		a := 2 * math.Pi / 8 * float64(i)
		s, co := math.Sincos(a)
		out = append(out, Debris{
			Pos:    dynamo.Vec2{X: c.X + co*h*(0.9+rng.Float64()*0.5), Y: g.CenterY + s*h*(0.9+rng.Float64()*0.5)},
			Radius: 18 + rng.Float64()*12,
			Color:  params.Color{R: 80, G: 80, B: 80},
			Smoke:  true,
		})
	}
	return out
}

// Rand is the blast jitter source.
type Rand interface {
	Float64() float64
}

// Status is the one-line state summary.
func Status(p params.Params, audioState string) string {
	s := fmt.Sprintf("%s · %s · audio %s", p.Design, p.Camera, audioState)
	if p.Muted {
		s += " · MUTED"
	}
	if p.Paused {
		s += " · PAUSED"
	}
	if p.Overloaded() {
		s += " · OVERLOAD"
	}
	return s
}

// Arrow is a flow direction indicator.
type Arrow struct {
	From, To dynamo.Vec2
	Color    params.Color
}

// FlowArrows points air into the intake and exhaust out of the nozzle.
func FlowArrows(g sim.Geometry, flameLength float64) []Arrow {
	above := g.CenterY - g.ChamberHeight*0.8
	return []Arrow{
		{
			From:  dynamo.Vec2{X: g.Chamber.X - 110, Y: g.CenterY},
			To:    dynamo.Vec2{X: g.Chamber.X - 30, Y: g.CenterY},
			Color: Cyan,
		},
		{
			From:  dynamo.Vec2{X: g.NozzleX + 20, Y: above},
			To:    dynamo.Vec2{X: g.NozzleX + math.Max(60, flameLength*0.6), Y: above},
			Color: Magenta,
		},
	}
}

var heatStops = [...]params.Color{
	{R: 40, G: 80, B: 255},
	{R: 255, G: 125, B: 242},
	{R: 255, G: 140, B: 40},
	{R: 255, G: 240, B: 200},
}

// HeatColor maps v in [0,1] onto a cold-to-white-hot ramp.
func HeatColor(v float64) params.Color {
	v = dynamo.Clamp01(v) * float64(len(heatStops)-1)
	i := int(v)
	if i >= len(heatStops)-1 {
		return heatStops[len(heatStops)-1]
	}
	return lerpColor(heatStops[i], heatStops[i+1], v-float64(i))
}

func lerpColor(a, b params.Color, t float64) params.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return params.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// ParticleStyle picks a tracer's color, opacity and radius. With the heat
// overlay on, exhaust tracers are colored by temperature instead of the
// exhaust tint.
func ParticleStyle(pt particles.Particle, tint params.Color, showHeat bool) (params.Color, float64, float64) {
	alpha := dynamo.Clamp01(pt.Life)
	if pt.Kind == particles.Intake {
		return Cyan, alpha * 0.5, 1.5
	}
	if showHeat {
		return HeatColor(pt.Heat / 1.1), alpha * 0.8, 2 + pt.Heat
	}
	return lerpColor(tint, White, pt.Heat*0.4), alpha * 0.8, 2 + pt.Heat
}

package hud

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/sim"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestDials(t *testing.T) {
	s := telemetry.Compute(1.25, 0.5, 20)
	d := Dials(1000, 500, s)
	if len(d) != 3 {
		t.Fatalf("expected 3 dials, got %d", len(d))
	}
	if d[0].Display != "26.0 N" {
		t.Errorf("thrust display = %q", d[0].Display)
	}
	if d[1].Display != "1105 K" {
		t.Errorf("temp display = %q", d[1].Display)
	}
	if math.Abs(d[0].Value-26.0/40) > 1e-9 {
		t.Errorf("thrust fill = %v", d[0].Value)
	}
	if d[2].X != 820 || d[0].Y != 90 {
		t.Errorf("unexpected layout %+v", d[2])
	}
}

func TestStarsStayOnSurface(t *testing.T) {
	for _, s := range Stars(640, 360, 12.5, 60) {
		if s.X < 0 || s.X >= 640 || s.Y < 0 || s.Y >= 360 {
			t.Errorf("star off surface: %+v", s)
		}
		if s.Alpha < 0.06-1e-3 || s.Alpha > 0.22+1e-3 {
			t.Errorf("alpha out of range: %v", s.Alpha)
		}
	}
	if Stars(0, 100, 0, 10) != nil {
		t.Error("zero-size surface should have no stars")
	}
}

func TestWaveSpansChamber(t *testing.T) {
	g := sim.Layout(params.CameraSide, 1280, 720, 1.4)
	p := params.Default()
	pts := Wave(g, p, 0.3, 50)
	if pts[0].X != g.Chamber.X || math.Abs(pts[49].X-g.Chamber.Right()) > 1e-9 {
		t.Errorf("wave should span the chamber: %v..%v", pts[0].X, pts[49].X)
	}
	for _, pt := range pts {
		if math.Abs(pt.Y-g.CenterY) > g.Chamber.H*0.18+1e-3 {
			t.Errorf("wave amplitude exceeded: %v", pt.Y)
		}
	}
}

func TestBlast(t *testing.T) {
	g := sim.Layout(params.CameraSide, 1280, 720, 1.4)
	d := Blast(g, constRand(0.5))
	if len(d) != 20 {
		t.Fatalf("expected 20 fragments, got %d", len(d))
	}
	smoke := 0
	for _, f := range d {
		if f.Smoke {
			smoke++
		}
	}
	if smoke != 8 {
		t.Errorf("expected 8 smoke puffs, got %d", smoke)
	}
	if d[0].Radius != 12 {
		t.Errorf("flame radius = %v", d[0].Radius)
	}
}

func TestStatus(t *testing.T) {
	p := params.Default()
	p.FuelFlow = 1
	p.Paused = true
	s := Status(p, "running")
	for _, want := range []string{"MUTED", "PAUSED", "OVERLOAD", "running"} {
		if !strings.Contains(s, want) {
			t.Errorf("status %q missing %s", s, want)
		}
	}
}

func TestChamberGlowCapped(t *testing.T) {
	if math.Abs(ChamberGlow(1)-0.82) > 1e-9 {
		t.Errorf("glow(1) = %v", ChamberGlow(1))
	}
	if ChamberGlow(2) != 0.85 {
		t.Errorf("glow should cap at 0.85, got %v", ChamberGlow(2))
	}
}

func TestHeatColorEnds(t *testing.T) {
	if got := HeatColor(0); got != heatStops[0] {
		t.Errorf("cold end = %v", got)
	}
	if got := HeatColor(1); got != heatStops[len(heatStops)-1] {
		t.Errorf("hot end = %v", got)
	}
	if got := HeatColor(-3); got != heatStops[0] {
		t.Errorf("below range should clamp, got %v", got)
	}
}

func TestParticleStyle(t *testing.T) {
	tint := params.Color{R: 104, G: 224, B: 255}
	in := particles.Particle{Kind: particles.Intake, Life: 1, Heat: 0.2}
	if c, a, _ := ParticleStyle(in, tint, true); c != Cyan || a != 0.5 {
		t.Errorf("intake style = %v %v", c, a)
	}

	ex := particles.Particle{Kind: particles.Exhaust, Life: 0.5, Heat: 1.1}
	c, a, r := ParticleStyle(ex, tint, true)
	if c != HeatColor(1) {
		t.Errorf("hot exhaust should use the heat ramp, got %v", c)
	}
	if math.Abs(a-0.4) > 1e-9 || math.Abs(r-3.1) > 1e-9 {
		t.Errorf("alpha/radius = %v/%v", a, r)
	}
	if c, _, _ := ParticleStyle(ex, tint, false); c == HeatColor(1) {
		t.Error("heat overlay off should use the exhaust tint")
	}
}

func TestFlowArrowsPointDownstream(t *testing.T) {
	g := sim.Layout(params.CameraSide, 1280, 720, 1.4)
	for _, a := range FlowArrows(g, 300) {
		if a.To.X <= a.From.X {
			t.Errorf("arrow points upstream: %+v", a)
		}
	}
}

package sim

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/params"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func TestFirstTickHasZeroDelta(t *testing.T) {
	r := newRig()
	r.driver.Tick(ms(5000))
	if got := r.driver.SimTime(); got != 0 {
		t.Errorf("first tick should not advance the clock, got %v", got)
	}
	if r.driver.Frame().Delta != 0 {
		t.Errorf("expected zero delta, got %v", r.driver.Frame().Delta)
	}
}

func TestDeltaClamped(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{"normal frame", ms(16), 0.016},
		{"stall", 2 * time.Second, 0.05},
		{"backwards", -ms(30), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			r.driver.Tick(ms(1000))
			r.driver.Tick(ms(1000) + tt.gap)
			if got := r.driver.SimTime(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("sim time = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSurfaceNotReadySkipsFrame(t *testing.T) {
	r := newRig()
	r.surface.ready = false

	if r.driver.Tick(0) {
		t.Error("tick should report skipped")
	}
	r.driver.Tick(ms(20))
	if len(r.rec.events) != 0 {
		t.Errorf("nothing should run while the surface is not ready, got %v", r.rec.events)
	}
	if r.driver.SimTime() != 0 {
		t.Error("clock advanced while surface not ready")
	}

	// The skipped tick still recorded its timestamp, so the next delta is
	// measured from it rather than from zero.
	r.surface.ready = true
	r.driver.Tick(ms(30))
	if got := r.driver.SimTime(); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("expected 10ms advance, got %v", got)
	}
}

func TestPausedFrame(t *testing.T) {
	r := newRig()
	r.driver.Tick(0)
	r.driver.Tick(ms(40))
	before := r.driver.SimTime()
	live := r.ps.Len()

	r.src.p.Paused = true
	r.rec.events = nil
	r.driver.Tick(ms(80))

	if r.driver.SimTime() != before {
		t.Error("clock advanced while paused")
	}
	if r.ps.Len() != live {
		t.Error("particles changed while paused")
	}
	want := []string{"overlay", "audio"}
	if len(r.rec.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, r.rec.events)
	}
	for i := range want {
		if r.rec.events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, r.rec.events[i], want[i])
		}
	}
	last := r.audio.calls[len(r.audio.calls)-1]
	if !last.p.Paused || last.simTime != before {
		t.Errorf("audio should see the paused snapshot at the frozen time, got %+v", last)
	}
}

func TestPausedKnobsReachAudio(t *testing.T) {
	r := newRig()
	r.driver.Tick(0)
	r.driver.Tick(ms(40))
	frozen := r.driver.SimTime()

	r.src.p.Paused = true
	r.driver.Tick(ms(60))
	r.src.p.FuelFlow = 0.9
	r.src.p.PulseFrequency = 140
	r.driver.Tick(ms(80))

	last := r.audio.calls[len(r.audio.calls)-1]
	if last.p.FuelFlow != 0.9 || last.p.PulseFrequency != 140 {
		t.Errorf("audio missed knob changes while paused, got fuel %v pulse %v",
			last.p.FuelFlow, last.p.PulseFrequency)
	}
	if last.simTime != frozen {
		t.Errorf("audio time %v, want frozen %v", last.simTime, frozen)
	}
}

func TestUnpausedFrameOrder(t *testing.T) {
	r := newRig()
	r.driver.Tick(0)
	want := []string{"scene", "overlay", "audio"}
	for i, e := range want {
		if r.rec.events[i] != e {
			t.Fatalf("event order %v, want %v", r.rec.events, want)
		}
	}
}

func TestParticlesAdvanceWithClock(t *testing.T) {
	r := newRig()
	r.driver.Tick(0)
	r.driver.Tick(ms(50))
	// floor(120 * 1.0 * 0.05) = 6
	if got := r.composer.lastCount; got != 6 {
		t.Errorf("expected 6 particles in frame, got %d", got)
	}
}

func TestComposerPanicRecovered(t *testing.T) {
	r := newRig()
	r.composer.panicScene = true

	r.driver.Tick(0)
	r.driver.Tick(ms(16))

	if r.composer.overlays != 2 {
		t.Errorf("overlay should still draw after a scene panic, drew %d", r.composer.overlays)
	}
	if len(r.audio.calls) != 2 {
		t.Errorf("audio should still update after a scene panic, got %d", len(r.audio.calls))
	}
}

func TestStop(t *testing.T) {
	r := newRig()
	r.driver.Stop() // before any tick
	r.driver.Stop()
	if r.driver.Tick(0) {
		t.Error("tick after stop should be a no-op")
	}
	if len(r.rec.events) != 0 {
		t.Errorf("expected no calls after stop, got %v", r.rec.events)
	}
}

func TestNilCollaborators(t *testing.T) {
	r := newRig()
	d := New(r.src, r.ps, r.surface, nil, nil, nopLogger())
	d.Tick(0)
	d.Tick(ms(16))
	if d.Frame().Index != 2 {
		t.Errorf("expected 2 frames, got %d", d.Frame().Index)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := r.driver.Run(ctx, 200)
	if err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if !r.driver.Stopped() {
		t.Error("run should stop the driver on exit")
	}
	if r.driver.Frame().Index < 2 {
		t.Errorf("expected several frames, got %d", r.driver.Frame().Index)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		cam        params.Camera
		chamberX   float64
		chamberW   float64
		chamberH   float64
		centerY    float64
		wantRadius bool
	}{
		{params.CameraSide, 1000 * 0.18, 500 * 1.2 * 0.45, 80, 550, false},
		{params.CameraCutaway, 500 - 420*1.2*0.45, 420 * 1.2 * 0.45, 90, 550, false},
		{params.CameraChamber, 500 - 162, 324, 162, 500, true},
	}
	for _, tt := range tests {
		t.Run(tt.cam.String(), func(t *testing.T) {
			g := Layout(tt.cam, 1000, 1000, 1.2)
			if math.Abs(g.Chamber.X-tt.chamberX) > 1e-9 {
				t.Errorf("chamber x = %v, want %v", g.Chamber.X, tt.chamberX)
			}
			if math.Abs(g.Chamber.W-tt.chamberW) > 1e-9 {
				t.Errorf("chamber w = %v, want %v", g.Chamber.W, tt.chamberW)
			}
			if math.Abs(g.ChamberHeight-tt.chamberH) > 1e-9 {
				t.Errorf("chamber h = %v, want %v", g.ChamberHeight, tt.chamberH)
			}
			if g.CenterY != tt.centerY {
				t.Errorf("center y = %v, want %v", g.CenterY, tt.centerY)
			}
			if g.NozzleX != g.Chamber.Right() {
				t.Error("nozzle should sit at the chamber's right edge")
			}
			if (g.Radius > 0) != tt.wantRadius {
				t.Errorf("radius = %v", g.Radius)
			}
		})
	}
}

func TestFlameLength(t *testing.T) {
	p := params.Default()
	p.FuelFlow = 1
	p.PulseFrequency = 10

	// Exhaust peak at t=0.025: 120 + 260*(0.4+0.9)
	if got := FlameLength(p, 0.025); math.Abs(got-458) > 1e-9 {
		t.Errorf("peak flame = %v, want 458", got)
	}
	// Intake stroke: 120 + 260*0.4
	if got := FlameLength(p, 0.075); math.Abs(got-224) > 1e-9 {
		t.Errorf("intake flame = %v, want 224", got)
	}
}

func TestExhaustTint(t *testing.T) {
	tests := []struct {
		fuel, pulse float64
		want        params.Color
	}{
		{0.5, 10, params.Color{R: 168, G: 180, B: 175}},
		{1.0, 250, params.Color{R: 255, G: 0, B: 0}},
		{0.2, 5, params.Color{R: 115, G: 178, B: 221}},
	}
	for _, tt := range tests {
		p := params.Default()
		p.FuelFlow, p.PulseFrequency = tt.fuel, tt.pulse
		if got := ExhaustTint(p); got != tt.want {
			t.Errorf("ExhaustTint(fuel=%v, pulse=%v) = %+v, want %+v", tt.fuel, tt.pulse, got, tt.want)
		}
	}
}

package sim

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

// Driver advances the simulation once per display frame. Tick is called
// from a single goroutine; Stop may be called from any.
type Driver struct {
	src       ParamSource
	particles *particles.System
	surface   Surface
	composer  Composer
	audio     AudioSink
	log       zerolog.Logger

	clock   Clock
	last    time.Duration
	started bool
	stopped atomic.Bool
	frame   Frame
}

// New wires a driver. composer and audio may be nil.
func New(src ParamSource, ps *particles.System, surface Surface, composer Composer, audio AudioSink, log zerolog.Logger) *Driver {
	return &Driver{
		src:       src,
		particles: ps,
		surface:   surface,
		composer:  composer,
		audio:     audio,
		log:       log.With().Str("component", "driver").Logger(),
	}
}

// Tick runs one frame at wall time now. It reports whether the frame ran;
// a frame is skipped when the surface is not ready or the driver is stopped.
func (d *Driver) Tick(now time.Duration) bool {
	if d.stopped.Load() {
		return false
	}

	var delta time.Duration
	if d.started {
		delta = ClampDelta(now - d.last)
	}
	d.last = now
	d.started = true

	w, h, ok := d.surface.Size()
	if !ok {
		return false
	}

	p := d.src.Load()
	dt := delta.Seconds()
	geom := Layout(p.Camera, w, h, p.TubeLength)

	if !p.Paused {
		d.clock.Advance(dt)
		d.particles.Spawn(dt, d.clock.Now(), p, geom.Particles())
		d.particles.Step(dt, w)
	}

	f := &d.frame
	f.Index++
	f.Delta = dt
	f.SimTime = d.clock.Now()
	f.Width, f.Height = w, h
	f.Params = p
	f.Geometry = geom
	f.FlameLength = FlameLength(p, f.SimTime)
	f.Telemetry = telemetry.FromParams(p)
	f.Particles = d.particles.Snapshot(f.Particles)

	if d.composer != nil {
		if !p.Paused {
			d.draw("scene", d.composer.DrawScene)
		}
		d.draw("overlay", d.composer.DrawOverlay)
	}

	if d.audio != nil {
		d.audio.Update(f.SimTime, p)
	}
	return true
}

func (d *Driver) draw(layer string, fn func(*Frame)) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("layer", layer).
				Uint64("frame", d.frame.Index).
				Str("panic", fmt.Sprint(r)).
				Msg("composer panicked, frame dropped")
		}
	}()
	fn(&d.frame)
}

// Stop ends the loop. Later ticks are no-ops. It is idempotent.
func (d *Driver) Stop() {
	if d.stopped.CompareAndSwap(false, true) {
		d.log.Debug().Uint64("frames", d.frame.Index).Msg("driver stopped")
	}
}

func (d *Driver) Stopped() bool { return d.stopped.Load() }

// SimTime is the simulated time in seconds.
func (d *Driver) SimTime() float64 { return d.clock.Now() }

// Frame returns the last composed frame. Its Particles slice is reused by
// the next tick.
func (d *Driver) Frame() *Frame { return &d.frame }

// Run ticks at fps from the wall clock until ctx is done or Stop is called.
// Windowed hosts call Tick from their own loop instead.
func (d *Driver) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	start := time.Now()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	d.Tick(0)
	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		case <-ticker.C:
			if d.stopped.Load() {
				return nil
			}
			d.Tick(time.Since(start))
		}
	}
}

// FixedSurface is a surface of constant size, for headless runs.
type FixedSurface struct {
	W, H float64
}

func (s FixedSurface) Size() (float64, float64, bool) {
	return s.W, s.H, s.W > 0 && s.H > 0
}

var _ ParamSource = (*params.Store)(nil)

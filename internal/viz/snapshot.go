package viz

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/sim"
)

// SnapshotOptions configures a headless scene render.
type SnapshotOptions struct {
	Cols, Rows int
	// At is the simulated time to stop at; particles build up until then.
	At        float64
	FPS       int
	Seed      int64
	Theme     Theme
	Particles particles.Config
}

// Snapshot runs the scene headless and returns the canvas as drawn at the
// requested time.
func Snapshot(p params.Params, opts SnapshotOptions, log zerolog.Logger) (*Canvas, error) {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		return nil, fmt.Errorf("snapshot size %dx%d: %w", opts.Cols, opts.Rows, dynamo.ErrSurfaceNotReady)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeNeon
	}

	p.Paused = false
	sc := newScene(opts.Theme, opts.Seed)
	sc.resize(opts.Cols, opts.Rows)
	ps := particles.New(opts.Particles, particles.NewRand(opts.Seed))
	d := sim.New(params.NewStore(p), ps, sc, sc, nil, log)

	step := time.Second / time.Duration(opts.FPS)
	frames := int(opts.At * float64(opts.FPS))
	for i := 0; i <= frames; i++ {
		d.Tick(time.Duration(i) * step)
	}
	return sc.canvas, nil
}

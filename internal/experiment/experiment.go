// Package experiment records headless runs: the frame driver ticks against
// a fixed-size surface while a schedule and an optional governor steer the
// parameters, and every frame is folded into the run's metrics.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/control"
	"github.com/san-kum/pulsejet/internal/metrics"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/sim"
)

// Default surface used for headless runs.
const (
	SurfaceWidth  = 1280
	SurfaceHeight = 720
)

type Config struct {
	Name     string
	Duration float64 // seconds of simulated time
	FPS      int
	Seed     int64
	Base     params.Params
	// Schedule maps simulated time to parameters. Nil holds Base.
	Schedule  func(simTime float64) params.Params
	Particles particles.Config
}

type Result struct {
	Name    string
	Times   []float64
	Samples []metrics.Sample
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg        Config
	controller control.Controller
	metrics    []metrics.Metric
	log        zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Experiment {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return &Experiment{
		cfg: cfg,
		log: log.With().Str("component", "experiment").Str("run", cfg.Name).Logger(),
	}
}

// Setup attaches the governor and the metric set. A nil controller leaves
// the schedule untouched.
func (e *Experiment) Setup(ctl control.Controller, ms []metrics.Metric) {
	if ctl == nil {
		ctl = control.NewNone()
	}
	e.controller = ctl
	e.metrics = ms
}

// Run ticks the driver for the configured duration. It stops early, with
// the partial result, when ctx is cancelled.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.controller == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.cfg.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %g", e.cfg.Duration)
	}

	base := e.cfg.Base.Clamped()
	base.Paused = false
	schedule := e.cfg.Schedule
	if schedule == nil {
		schedule = func(float64) params.Params { return base }
	}

	store := params.NewStore(base)
	ps := particles.New(e.cfg.Particles, particles.NewRand(e.cfg.Seed))
	driver := sim.New(store, ps, sim.FixedSurface{W: SurfaceWidth, H: SurfaceHeight}, nil, nil, e.log)

	e.controller.Reset()
	for _, m := range e.metrics {
		m.Reset()
	}

	frames := int(e.cfg.Duration*float64(e.cfg.FPS) + 0.5)
	step := time.Second / time.Duration(e.cfg.FPS)
	res := &Result{
		Name:    e.cfg.Name,
		Times:   make([]float64, 0, frames),
		Samples: make([]metrics.Sample, 0, frames),
	}
	start := time.Now()

	var err error
	for i := 0; i <= frames; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}

		t := driver.SimTime()
		p, u := e.controller.Adjust(t, schedule(t))
		p.Paused = false
		store.Set(p)

		if !driver.Tick(time.Duration(i) * step) {
			break
		}
		f := driver.Frame()
		s := metrics.Sample{
			Time:      f.SimTime,
			Params:    f.Params,
			Telemetry: f.Telemetry,
			Particles: len(f.Particles),
			Control:   u,
		}
		for _, m := range e.metrics {
			m.Observe(s)
		}
		res.Times = append(res.Times, s.Time)
		res.Samples = append(res.Samples, s)
	}

	res.Metrics = metrics.Collect(e.metrics)
	res.Elapsed = time.Since(start)
	e.log.Debug().
		Int("frames", len(res.Samples)).
		Dur("elapsed", res.Elapsed).
		Msg("run finished")
	return res, err
}

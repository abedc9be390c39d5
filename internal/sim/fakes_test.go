package sim

import (
	"time"

	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type staticSource struct{ p params.Params }

func (s *staticSource) Load() params.Params { return s.p }

type toggleSurface struct {
	ready bool
	w, h  float64
}

func (s *toggleSurface) Size() (float64, float64, bool) { return s.w, s.h, s.ready }

// recorder logs calls from every collaborator in order.
type recorder struct {
	events []string
}

type spyComposer struct {
	rec         *recorder
	scenes      int
	overlays    int
	panicScene  bool
	lastSimTime float64
	lastCount   int
}

func (c *spyComposer) DrawScene(f *Frame) {
	c.rec.events = append(c.rec.events, "scene")
	c.scenes++
	c.lastSimTime = f.SimTime
	c.lastCount = len(f.Particles)
	if c.panicScene {
		panic("boom")
	}
}

func (c *spyComposer) DrawOverlay(f *Frame) {
	c.rec.events = append(c.rec.events, "overlay")
	c.overlays++
}

type audioCall struct {
	simTime float64
	p       params.Params
}

type spyAudio struct {
	rec   *recorder
	calls []audioCall
}

func (a *spyAudio) Update(simTime float64, p params.Params) {
	a.rec.events = append(a.rec.events, "audio")
	a.calls = append(a.calls, audioCall{simTime, p})
}

type rig struct {
	src      *staticSource
	surface  *toggleSurface
	composer *spyComposer
	audio    *spyAudio
	ps       *particles.System
	driver   *Driver
	rec      *recorder
}

func newRig() *rig {
	rec := &recorder{}
	p := params.Default()
	p.FuelFlow = 1.0
	r := &rig{
		src:      &staticSource{p: p},
		surface:  &toggleSurface{ready: true, w: 1280, h: 720},
		composer: &spyComposer{rec: rec},
		audio:    &spyAudio{rec: rec},
		ps:       particles.New(particles.DefaultConfig(), constRand(0.5)),
		rec:      rec,
	}
	r.driver = New(r.src, r.ps, r.surface, r.composer, r.audio, nopLogger())
	return r
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

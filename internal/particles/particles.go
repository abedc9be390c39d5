// Package particles models the exhaust and intake tracers that visualize
// mass flow through the engine.
package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

// Rand is the random source used for spawn placement and jitter. Tests
// inject a deterministic one.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded math/rand source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Kind tells exhaust tracers from intake tracers.
type Kind uint8

const (
	Intake Kind = iota
	Exhaust
)

// Particle is one tracer. Heat is in [0,1.1]; hotter particles decay faster.
type Particle struct {
	Pos  dynamo.Vec2
	Vel  dynamo.Vec2
	Life float64
	Heat float64
	Kind Kind
}

// Geometry is the part of the scene layout the particle system needs.
type Geometry struct {
	Chamber dynamo.Rect
	NozzleX float64
}

// Config holds the tuning constants. Zero fields fall back to defaults.
type Config struct {
	BaseRate     float64 // particles per second at full fuel
	InitialLife  float64 // seconds
	Margin       float64 // px past the right edge before culling
	MaxParticles int     // hard cap, 0 disables
}

func DefaultConfig() Config {
	return Config{
		BaseRate:     120,
		InitialLife:  1.0,
		Margin:       100,
		MaxParticles: 4096,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseRate <= 0 {
		c.BaseRate = d.BaseRate
	}
	if c.InitialLife <= 0 {
		c.InitialLife = d.InitialLife
	}
	if c.Margin <= 0 {
		c.Margin = d.Margin
	}
	if c.MaxParticles < 0 {
		c.MaxParticles = 0
	}
	return c
}

// System owns the live particle set. It is not safe for concurrent use; the
// frame driver is its only caller.
type System struct {
	cfg       Config
	rng       Rand
	particles []Particle
}

func New(cfg Config, rng Rand) *System {
	if rng == nil {
		rng = NewRand(1)
	}
	return &System{
		cfg:       cfg.withDefaults(),
		rng:       rng,
		particles: make([]Particle, 0, 256),
	}
}

// SpawnCount is the number of particles one Spawn call emits. The
// fractional part is dropped rather than carried to the next frame.
func (s *System) SpawnCount(delta, fuelFlow float64) int {
	if delta <= 0 || fuelFlow <= 0 {
		return 0
	}
	return int(math.Floor(s.cfg.BaseRate * fuelFlow * delta))
}

// Spawn emits this frame's particles. Each is classified by the sign of the
// combustion phase at simTime: positive phase is the exhaust stroke.
func (s *System) Spawn(delta, simTime float64, p params.Params, g Geometry) int {
	n := s.SpawnCount(delta, p.FuelFlow)
	if s.cfg.MaxParticles > 0 && len(s.particles)+n > s.cfg.MaxParticles {
		n = s.cfg.MaxParticles - len(s.particles)
	}
	if n <= 0 {
		return 0
	}

	exhaust := p.Phase(simTime) > 0
	ch := g.Chamber
	for i := 0; i < n; i++ {
		y := ch.Y + ch.H*0.5 + (s.rng.Float64()-0.5)*ch.H*0.5
		vy := (s.rng.Float64() - 0.5) * 30

		var pt Particle
		if exhaust {
			pt = Particle{
				Pos:  dynamo.Vec2{X: g.NozzleX + s.rng.Float64()*ch.W*0.2, Y: y},
				Vel:  dynamo.Vec2{X: 180 + s.rng.Float64()*220, Y: vy},
				Heat: 0.6 + s.rng.Float64()*0.5,
				Kind: Exhaust,
			}
		} else {
			pt = Particle{
				Pos:  dynamo.Vec2{X: ch.X - 80 + s.rng.Float64()*30, Y: y},
				Vel:  dynamo.Vec2{X: 40 + s.rng.Float64()*40, Y: vy},
				Heat: 0.2,
				Kind: Intake,
			}
		}
		pt.Life = s.cfg.InitialLife
		s.particles = append(s.particles, pt)
	}
	return n
}

// Step integrates every particle by delta seconds and culls the dead and
// those past width plus the margin. Order is not preserved.
func (s *System) Step(delta, width float64) {
	if delta <= 0 {
		return
	}
	limit := width + s.cfg.Margin

	for i := 0; i < len(s.particles); {
		pt := &s.particles[i]
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(delta))
		pt.Vel.Y += (s.rng.Float64() - 0.5) * 10 * delta
		pt.Life -= delta * DecayRate(pt.Heat)

		if pt.Life <= 0 || pt.Pos.X > limit || !pt.Pos.IsValid() {
			last := len(s.particles) - 1
			s.particles[i] = s.particles[last]
			s.particles = s.particles[:last]
			continue
		}
		i++
	}
}

// DecayRate is life lost per simulated second at the given heat.
func DecayRate(heat float64) float64 {
	return 0.6 + heat*0.7
}

// Len is the live particle count.
func (s *System) Len() int {
	return len(s.particles)
}

// Snapshot copies the live particles into dst (reusing its storage) so
// renderers can read them without touching the system's state.
func (s *System) Snapshot(dst []Particle) []Particle {
	return append(dst[:0], s.particles...)
}

// Reset drops every particle.
func (s *System) Reset() {
	s.particles = s.particles[:0]
}

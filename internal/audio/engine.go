package audio

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

// State is the engine lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Config holds the device and automation settings.
type Config struct {
	SampleRate   int
	BufferFrames int
	MuteRamp     time.Duration
	Seed         int64
}

func DefaultConfig() Config {
	return Config{
		SampleRate:   SampleRate,
		BufferFrames: BufferSize,
		MuteRamp:     15 * time.Millisecond,
		Seed:         1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.BufferFrames <= 0 {
		c.BufferFrames = d.BufferFrames
	}
	if c.MuteRamp < 0 {
		c.MuteRamp = 0
	}
	return c
}

// Engine sonifies the parameter snapshot. It starts Uninitialized; Init
// builds the graph and opens the host stream, which hosts only allow after
// a user gesture. Update is a no-op until then.
type Engine struct {
	host Host
	cfg  Config
	log  zerolog.Logger
	rng  Rand

	mu     sync.Mutex // guards Init/Close
	state  atomic.Int32
	graph  *Graph
	stream Stream
}

func NewEngine(host Host, cfg Config, log zerolog.Logger) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		host: host,
		cfg:  cfg,
		log:  log.With().Str("component", "audio").Logger(),
		rng:  newRand(cfg.Seed),
	}
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

// Init moves the engine to Running. Repeat calls are no-ops. When the host
// cannot open a stream the engine stays Uninitialized and a later gesture
// may try again.
func (e *Engine) Init(p params.Params) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() != Uninitialized {
		return
	}
	if e.host == nil {
		e.log.Warn().Err(dynamo.ErrAudioUnavailable).Msg("no audio host configured")
		return
	}

	g := NewGraph(e.cfg.SampleRate, math.Max(0, p.PulseFrequency), e.cfg.MuteRamp.Seconds(), e.rng)
	if p.Muted {
		g.Silence()
	}
	// the first callback already renders this snapshot's targets
	e.apply(g, 0, p)
	stream, err := e.host.Open(e.cfg.SampleRate, e.cfg.BufferFrames, g.Render)
	if err != nil {
		e.log.Warn().Err(err).Msg("audio output unavailable, staying silent")
		return
	}

	e.graph = g
	e.stream = stream
	e.state.Store(int32(Running))
	e.log.Info().
		Int("sample_rate", e.cfg.SampleRate).
		Int("buffer_frames", e.cfg.BufferFrames).
		Msg("audio engine running")
}

// Update pushes the latest parameters into the graph. It never blocks on the
// audio thread; every write is a single atomic publish.
func (e *Engine) Update(simTime float64, p params.Params) {
	if e.State() != Running {
		return
	}
	e.apply(e.graph, simTime, p)
}

// apply retargets every graph param for the snapshot.
func (e *Engine) apply(g *Graph, simTime float64, p params.Params) {
	pulse := math.Max(0, p.PulseFrequency)
	fuel := math.Max(0, p.FuelFlow)

	g.ModHz().Set(pulse)
	g.FilterHz.Set(600 + pulse*6)
	g.FilterQ.Set(1.2 + fuel*1.5)
	g.NoiseGain.Set(0.06 + fuel*0.08)

	now := g.Now()
	ramp := e.cfg.MuteRamp.Seconds()
	if p.Muted {
		g.Master.RampTo(0, now, ramp)
		if err := g.Disconnect(); err != nil && !errors.Is(err, dynamo.ErrNotConnected) {
			e.log.Debug().Err(err).Msg("disconnect")
		}
	} else {
		g.Master.RampTo(MasterLevel(fuel), now, ramp)
		if err := g.Connect(); err != nil && !errors.Is(err, dynamo.ErrAlreadyConnected) {
			e.log.Debug().Err(err).Msg("connect")
		}
	}

	g.ToneHz().Set(ToneFrequency(pulse, simTime))
}

// MasterLevel is the unmuted output level for a fuel flow.
func MasterLevel(fuelFlow float64) float64 {
	return math.Min(0.25, fuelFlow*0.25)
}

// ToneFrequency is the engine tone: the base rate, raised with the pulse
// frequency, plus a wobble synchronized to simulated time.
func ToneFrequency(pulseHz, simTime float64) float64 {
	return BaseToneHz + pulseHz*0.8 + 8*math.Sin(pulseHz*simTime)
}

// Graph exposes the live graph, nil before Init.
func (e *Engine) Graph() *Graph {
	if e.State() == Uninitialized {
		return nil
	}
	return e.graph
}

// Close releases the stream. It is safe before Init and safe to repeat.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := State(e.state.Swap(int32(Closed)))
	if prev != Running || e.stream == nil {
		return nil
	}
	err := e.stream.Close()
	e.stream = nil
	if err != nil {
		return dynamo.Wrap("audio", err)
	}
	e.log.Info().Msg("audio engine closed")
	return nil
}

package audio

import (
	"math"
	"sync/atomic"

	"github.com/san-kum/pulsejet/internal/dynamo"
)

// Fixed graph constants.
const (
	BaseToneHz    = 45.0 // idle pulse rate of the reference engine
	ModDepth      = 0.45
	noiseSeconds  = 2
	initFilterHz  = 800
	initFilterQ   = 1.2
	initNoiseGain = 0.08
)

// Graph is the engine's signal network:
//
//	tone (saw) ─────────────┐
//	noise (loop) → noiseGain ┴→ bandpass → master ⊕ mod·depth → gate → out
//	mod (square) → depth ───────────────────────┘
//
// The modulator is summed into the master gain's value, so the output
// level chugs on and off at the pulse frequency. Parameters are written from
// the frame thread; Render runs on the audio callback.
type Graph struct {
	sampleRate float64
	frames     atomic.Int64

	tone      *oscillator
	mod       *oscillator
	noise     *noiseLoop
	NoiseGain *Param
	FilterHz  *Param
	FilterQ   *Param
	Depth     *Param
	Master    *Param
	filter    biquad

	connected atomic.Bool
	gate      float64 // audio thread only
	gateStep  float64
}

// NewGraph builds the network. The output starts connected with the
// master gain silent.
func NewGraph(sampleRate int, modHz, rampSeconds float64, rng Rand) *Graph {
	sr := float64(sampleRate)
	if rampSeconds <= 0 {
		rampSeconds = 1 / sr
	}
	g := &Graph{
		sampleRate: sr,
		tone:       newOscillator(WaveSaw, BaseToneHz),
		mod:        newOscillator(WaveSquare, modHz),
		noise:      newNoiseLoop(noiseSeconds*sampleRate, rng),
		NoiseGain:  NewParam(initNoiseGain),
		FilterHz:   NewParam(initFilterHz),
		FilterQ:    NewParam(initFilterQ),
		Depth:      NewParam(ModDepth),
		Master:     NewParam(0),
		gate:       1,
		gateStep:   1 / (rampSeconds * sr),
	}
	g.connected.Store(true)
	return g
}

func (g *Graph) SampleRate() int { return int(g.sampleRate) }

// ToneHz and ModHz expose the oscillator frequency params.
func (g *Graph) ToneHz() *Param { return g.tone.freq }
func (g *Graph) ModHz() *Param  { return g.mod.freq }

// Now is the audio clock: seconds of audio rendered so far.
func (g *Graph) Now() float64 {
	return float64(g.frames.Load()) / g.sampleRate
}

// Silence starts the graph disconnected with the gate already closed. It
// must only be called before the graph is rendering.
func (g *Graph) Silence() {
	g.connected.Store(false)
	g.gate = 0
}

// Connect routes the output stage to the destination.
func (g *Graph) Connect() error {
	if !g.connected.CompareAndSwap(false, true) {
		return dynamo.ErrAlreadyConnected
	}
	return nil
}

// Disconnect detaches the output stage. The render fades out over the ramp
// time rather than cutting.
func (g *Graph) Disconnect() error {
	if !g.connected.CompareAndSwap(true, false) {
		return dynamo.ErrNotConnected
	}
	return nil
}

func (g *Graph) Connected() bool {
	return g.connected.Load()
}

// Render fills out with the next len(out) mono samples and advances the
// audio clock.
func (g *Graph) Render(out []float32) {
	n := len(out)
	if n == 0 {
		return
	}
	start := g.frames.Load()
	t0 := float64(start) / g.sampleRate
	dt := 1 / g.sampleRate

	toneInc := g.tone.freq.ValueAt(t0) / g.sampleRate
	modInc := g.mod.freq.ValueAt(t0) / g.sampleRate
	g.filter.tune(g.FilterHz.ValueAt(t0), g.FilterQ.ValueAt(t0), g.sampleRate)
	noiseGain := g.NoiseGain.ValueAt(t0)
	depth := g.Depth.ValueAt(t0)
	master := g.Master.seg.Load()

	gateTarget := 0.0
	if g.connected.Load() {
		gateTarget = 1
	}

	for i := 0; i < n; i++ {
		t := t0 + float64(i)*dt

		x := g.tone.next(toneInc) + g.noise.next()*noiseGain
		y := g.filter.process(x)
		gain := master.valueAt(t) + g.mod.next(modInc)*depth

		switch {
		case g.gate < gateTarget:
			g.gate = math.Min(gateTarget, g.gate+g.gateStep)
		case g.gate > gateTarget:
			g.gate = math.Max(gateTarget, g.gate-g.gateStep)
		}

		s := y * gain * g.gate
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = float32(s)
	}
	g.frames.Store(start + int64(n))
}

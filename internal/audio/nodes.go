package audio

import "math"

// Rand is the noise source. math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSaw WaveType = iota
	WaveSquare
	WaveSine
)

// oscillator is a phase accumulator. Frequency is read once per block.
type oscillator struct {
	wave  WaveType
	freq  *Param
	phase float64
}

func newOscillator(wave WaveType, freq float64) *oscillator {
	return &oscillator{wave: wave, freq: NewParam(freq)}
}

func (o *oscillator) next(inc float64) float64 {
	var v float64
	switch o.wave {
	case WaveSaw:
		v = 2*o.phase - 1
	case WaveSquare:
		if o.phase < 0.5 {
			v = 1
		} else {
			v = -1
		}
	case WaveSine:
		v = math.Sin(2 * math.Pi * o.phase)
	}
	o.phase += inc
	o.phase -= math.Floor(o.phase)
	return v
}

// noiseLoop plays a fixed buffer of white noise on repeat.
type noiseLoop struct {
	buf []float32
	pos int
}

func newNoiseLoop(n int, rng Rand) *noiseLoop {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = float32(rng.Float64()*2 - 1)
	}
	return &noiseLoop{buf: buf}
}

func (n *noiseLoop) next() float64 {
	v := n.buf[n.pos]
	n.pos++
	if n.pos == len(n.buf) {
		n.pos = 0
	}
	return float64(v)
}

// biquad is a direct form I bandpass with 0 dB peak gain (RBJ cookbook).
// Coefficients are recomputed only when frequency or Q change.
type biquad struct {
	freq, q            float64
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func (f *biquad) tune(freq, q, sampleRate float64) {
	freq = math.Max(10, math.Min(freq, 0.45*sampleRate))
	q = math.Max(0.01, q)
	if freq == f.freq && q == f.q {
		return
	}
	f.freq, f.q = freq, q

	w0 := 2 * math.Pi * freq / sampleRate
	sin, cos := math.Sincos(w0)
	alpha := sin / (2 * q)
	a0 := 1 + alpha

	f.b0 = alpha / a0
	f.b1 = 0
	f.b2 = -alpha / a0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

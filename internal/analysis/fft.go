package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum is a single-sided magnitude spectrum.
type Spectrum struct {
	SampleRate float64
	N          int       // transform length
	Bins       []float64 // N/2 magnitudes, normalized so a full-scale sine peaks near 1
}

// Peak is a local maximum of a spectrum.
type Peak struct {
	Hz        float64
	Magnitude float64
}

// Analyze takes the Hann-windowed FFT of the largest power-of-two prefix of
// samples.
func Analyze(samples []float64, sampleRate float64) Spectrum {
	n := floorPow2(len(samples))
	if n < 2 || sampleRate <= 0 {
		return Spectrum{SampleRate: sampleRate}
	}

	buf := make([]float64, n)
	copy(buf, samples[:n])
	window.Apply(buf, window.Hann)

	out := fft.FFTReal(buf)
	bins := make([]float64, n/2)
	// Hann has coherent gain 0.5; single-sided doubles.
	scale := 4 / float64(n)
	for i := range bins {
		bins[i] = cmplx.Abs(out[i]) * scale
	}
	return Spectrum{SampleRate: sampleRate, N: n, Bins: bins}
}

// PowerSpectrum is the magnitude spectrum without frequency bookkeeping.
func PowerSpectrum(data []float64) []float64 {
	return Analyze(data, 1).Bins
}

func (s Spectrum) BinHz() float64 {
	if s.N == 0 {
		return 0
	}
	return s.SampleRate / float64(s.N)
}

func (s Spectrum) bin(hz float64) int {
	w := s.BinHz()
	if w == 0 {
		return 0
	}
	return int(math.Round(hz / w))
}

// Dominant is the strongest bin between lo and hi Hz, refined by parabolic
// interpolation.
func (s Spectrum) Dominant(lo, hi float64) Peak {
	if len(s.Bins) == 0 {
		return Peak{}
	}
	a := max(1, s.bin(lo))
	b := min(len(s.Bins)-1, s.bin(hi))
	best := -1
	for i := a; i <= b; i++ {
		if best < 0 || s.Bins[i] > s.Bins[best] {
			best = i
		}
	}
	if best < 0 {
		return Peak{}
	}
	return s.refine(best)
}

func (s Spectrum) refine(i int) Peak {
	if i <= 0 || i >= len(s.Bins)-1 {
		return Peak{Hz: float64(i) * s.BinHz(), Magnitude: s.Bins[i]}
	}
	l, c, r := s.Bins[i-1], s.Bins[i], s.Bins[i+1]
	d := l - 2*c + r
	off := 0.0
	if d != 0 {
		off = 0.5 * (l - r) / d
	}
	return Peak{Hz: (float64(i) + off) * s.BinHz(), Magnitude: c}
}

// Peaks returns up to n local maxima at or above minHz, strongest first.
func (s Spectrum) Peaks(n int, minHz float64) []Peak {
	var peaks []Peak
	for i := max(1, s.bin(minHz)); i < len(s.Bins)-1; i++ {
		if s.Bins[i] > s.Bins[i-1] && s.Bins[i] >= s.Bins[i+1] {
			peaks = append(peaks, s.refine(i))
		}
	}
	sort.Slice(peaks, func(a, b int) bool { return peaks[a].Magnitude > peaks[b].Magnitude })
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

// Bands folds the spectrum up to maxHz into n equal-width bands, keeping
// each band's maximum. It is sized for terminal charts.
func (s Spectrum) Bands(n int, maxHz float64) []float64 {
	if n <= 0 || len(s.Bins) == 0 {
		return nil
	}
	top := min(len(s.Bins), s.bin(maxHz)+1)
	out := make([]float64, n)
	for i := 1; i < top; i++ {
		k := i * n / top
		out[k] = math.Max(out[k], s.Bins[i])
	}
	return out
}

// PulseRate estimates the amplitude modulation rate of samples: the
// rectified, smoothed envelope is analyzed like any other signal and its
// strongest component between lo and hi is returned.
func PulseRate(samples []float64, sampleRate, lo, hi float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	// One-pole lowpass a little above hi.
	alpha := 1 - math.Exp(-2*math.Pi*hi*2/sampleRate)
	env := make([]float64, len(samples))
	acc, mean := 0.0, 0.0
	for i, x := range samples {
		acc += alpha * (math.Abs(x) - acc)
		env[i] = acc
		mean += acc
	}
	mean /= float64(len(env))
	for i := range env {
		env[i] -= mean
	}
	return Analyze(env, sampleRate).Dominant(lo, hi).Hz
}

func floorPow2(n int) int {
	if n < 1 {
		return 0
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

func sine(freq, sr float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sr)
	}
	return out
}

func TestAnalyzeFindsTone(t *testing.T) {
	const sr = 8000.0
	s := Analyze(sine(440, sr, 8192), sr)

	if s.N != 8192 {
		t.Fatalf("expected 8192-point transform, got %d", s.N)
	}
	pk := s.Dominant(20, 2000)
	if math.Abs(pk.Hz-440) > s.BinHz()/2 {
		t.Errorf("dominant = %.2f Hz, want 440", pk.Hz)
	}
	if math.Abs(pk.Magnitude-1) > 0.2 {
		t.Errorf("full-scale sine should peak near 1, got %v", pk.Magnitude)
	}
}

func TestAnalyzeTruncatesToPowerOfTwo(t *testing.T) {
	s := Analyze(make([]float64, 5000), 8000)
	if s.N != 4096 {
		t.Errorf("expected 4096, got %d", s.N)
	}
	if got := Analyze(nil, 8000); len(got.Bins) != 0 {
		t.Error("empty input should give empty spectrum")
	}
}

func TestPeaksOrdered(t *testing.T) {
	const sr = 8000.0
	a := sine(300, sr, 8192)
	b := sine(1200, sr, 8192)
	mix := make([]float64, len(a))
	for i := range mix {
		mix[i] = a[i] + 0.3*b[i]
	}

	peaks := Analyze(mix, sr).Peaks(2, 20)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	if math.Abs(peaks[0].Hz-300) > 2 || math.Abs(peaks[1].Hz-1200) > 2 {
		t.Errorf("unexpected peaks %+v", peaks)
	}
}

func TestBands(t *testing.T) {
	s := Analyze(sine(1000, 8000, 4096), 8000)
	bands := s.Bands(8, 4000)
	if len(bands) != 8 {
		t.Fatalf("expected 8 bands, got %d", len(bands))
	}
	loudest := 0
	for i, v := range bands {
		if v > bands[loudest] {
			loudest = i
		}
	}
	if loudest != 2 {
		t.Errorf("1 kHz should land in band 2 of 8 over 4 kHz, got %d", loudest)
	}
}

func TestPulseRateRecoversModulation(t *testing.T) {
	const sr = 8000.0
	n := 16384
	x := make([]float64, n)
	for i := range x {
		tm := float64(i) / sr
		gate := 0.2
		if math.Mod(tm*25, 1) < 0.5 {
			gate = 1
		}
		x[i] = gate * math.Sin(2*math.Pi*300*tm)
	}
	if got := PulseRate(x, sr, 4, 260); math.Abs(got-25) > 1 {
		t.Errorf("pulse rate = %.2f, want 25", got)
	}
}

func TestSweepPeaksAtIdealTube(t *testing.T) {
	base := params.Default()
	base.FuelFlow = 0.5
	pts := Sweep(base, params.FieldTubeLength, 161)

	res := Series(pts, func(s telemetry.Snapshot) float64 { return s.Resonance })
	best := 0
	for i := range res {
		if res[i] > res[best] {
			best = i
		}
	}
	ideal := telemetry.IdealTubeLength(0.5)
	if math.Abs(pts[best].Value-ideal) > 0.011 {
		t.Errorf("resonance peak at %.3f m, want %.3f", pts[best].Value, ideal)
	}
	if pts[0].Value != params.MinTubeLength || pts[len(pts)-1].Value != params.MaxTubeLength {
		t.Error("sweep should span the full range")
	}
}

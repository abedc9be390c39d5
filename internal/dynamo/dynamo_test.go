package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestFastSin(t *testing.T) {
	for _, x := range []float64{-7, -1, 0, 0.3, math.Pi / 2, 4, 100} {
		if got, want := FastSin(x), math.Sin(x); math.Abs(got-want) > 1e-5 {
			t.Errorf("FastSin(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{3, 0, 1, 1},
		{math.NaN(), 0.2, 1, 0.2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 1000, 10007} {
		var sum atomic.Int64
		ParallelFor(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				sum.Add(int64(i))
			}
		})
		if want := int64(n) * int64(n-1) / 2; n > 0 && sum.Load() != want {
			t.Errorf("n=%d: sum %d, want %d", n, sum.Load(), want)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap("audio", nil) != nil {
		t.Error("nil should stay nil")
	}
	err := Wrap("audio", ErrAudioUnavailable)
	if !errors.Is(err, ErrAudioUnavailable) {
		t.Error("wrapped error should match its sentinel")
	}
	if err.Error() != "audio: dynamo: audio output unavailable" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestVec2IsValid(t *testing.T) {
	if !(Vec2{1, 2}).IsValid() || (Vec2{math.NaN(), 0}).IsValid() || (Vec2{0, math.Inf(1)}).IsValid() {
		t.Error("IsValid misclassified")
	}
}

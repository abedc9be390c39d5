package telemetry

import (
	"math"
	"testing"
)

func TestComputeIdealTube(t *testing.T) {
	fuel := 0.5
	tube := IdealTubeLength(fuel)

	s := Compute(tube, fuel, 10)

	if s.Resonance != 1 {
		t.Errorf("expected resonance 1 at ideal tube, got %v", s.Resonance)
	}
	if math.Abs(s.Thrust-13.0) > 1e-9 {
		t.Errorf("expected thrust 13.0, got %.12f", s.Thrust)
	}
	if math.Abs(s.ChamberTemp-1105) > 1e-9 {
		t.Errorf("expected chamber temp 1105, got %.12f", s.ChamberTemp)
	}
	if s.PulseRate != 10 {
		t.Errorf("expected pulse rate 10, got %v", s.PulseRate)
	}
}

func TestComputeOffResonance(t *testing.T) {
	// 1.6 m is 0.35 m longer than ideal at half fuel.
	s := Compute(1.6, 0.5, 10)
	if math.Abs(s.Resonance-0.65) > 1e-9 {
		t.Errorf("expected resonance 0.65, got %v", s.Resonance)
	}
	if math.Abs(s.Thrust-5*(0.8+0.65*1.8)) > 1e-9 {
		t.Errorf("unexpected thrust %v", s.Thrust)
	}
}

func TestComputeBoundsAndDeterminism(t *testing.T) {
	for fuel := 0.2; fuel <= 1.0; fuel += 0.05 {
		for tube := 0.6; tube <= 2.2; tube += 0.1 {
			for pulse := 5.0; pulse <= 250; pulse += 15 {
				a := Compute(tube, fuel, pulse)
				b := Compute(tube, fuel, pulse)

				if a != b {
					t.Fatalf("non-deterministic at tube=%v fuel=%v pulse=%v: %+v vs %+v", tube, fuel, pulse, a, b)
				}
				if a.Thrust < 0 || a.ChamberTemp < 0 {
					t.Fatalf("negative readout at tube=%v fuel=%v pulse=%v: %+v", tube, fuel, pulse, a)
				}
				if a.Resonance < 0 || a.Resonance > 1 {
					t.Fatalf("resonance out of range: %v", a.Resonance)
				}
			}
		}
	}
}

func TestResonanceMonotonic(t *testing.T) {
	fuel := 0.7
	ideal := IdealTubeLength(fuel)

	prev := Resonance(ideal, fuel)
	if prev != 1 {
		t.Fatalf("expected peak resonance 1, got %v", prev)
	}

	for d := 0.05; d <= 1.5; d += 0.05 {
		above := Resonance(ideal+d, fuel)
		below := Resonance(ideal-d, fuel)
		if above > prev || below > prev {
			t.Fatalf("resonance increased moving away from ideal at d=%v", d)
		}
		if above == 1 || below == 1 {
			t.Fatalf("resonance reached 1 away from ideal at d=%v", d)
		}
		prev = math.Max(above, below)
	}
	if Resonance(ideal+1.2, fuel) != 0 {
		t.Error("expected resonance clamped at 0 far from ideal")
	}
}

func TestComputeNegativeInputs(t *testing.T) {
	s := Compute(1.0, -0.5, -20)
	if s.Thrust != 0 {
		t.Errorf("expected zero thrust, got %v", s.Thrust)
	}
	if s.ChamberTemp < 0 {
		t.Errorf("expected non-negative temp, got %v", s.ChamberTemp)
	}
}

func TestDials(t *testing.T) {
	s := Snapshot{Thrust: 80, ChamberTemp: 100, PulseRate: 127.5}
	th, temp, rate := s.Dials()
	if th != 1 || temp != 0 || rate != 0.5 {
		t.Errorf("unexpected dials %v %v %v", th, temp, rate)
	}
}

package automation

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/pulsejet/internal/params"
)

const demo = `
name: spool-up
steps:
  - at: 1
    preset: idle
  - at: 3
    preset: boost
    glide: true
  - at: 4
    fuel_flow: 0.3
    design: "Model aircraft"
`

func TestScheduleSteps(t *testing.T) {
	s, err := ParseScenario([]byte(demo))
	if err != nil {
		t.Fatal(err)
	}
	sched, err := s.Schedule(params.Default())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		at    float64
		pulse float64
		fuel  float64
	}{
		{0, params.DefaultPulseFrequency, params.DefaultFuelFlow},
		{1, 10, 0.25},
		{2, 45, 0.525}, // halfway through the glide to boost
		{3, 80, 0.8},
		{4, 80, 0.3},
		{60, 80, 0.3},
	}
	for _, tt := range tests {
		p := sched(tt.at)
		if math.Abs(p.PulseFrequency-tt.pulse) > 1e-9 || math.Abs(p.FuelFlow-tt.fuel) > 1e-9 {
			t.Errorf("t=%v: pulse=%v fuel=%v, want %v %v", tt.at, p.PulseFrequency, p.FuelFlow, tt.pulse, tt.fuel)
		}
	}
	if sched(5).Design != params.DesignModelAircraft {
		t.Error("design step not applied")
	}
	if got := s.Length(); got != 5*time.Second {
		t.Errorf("length = %v", got)
	}
}

func TestScheduleErrors(t *testing.T) {
	for _, src := range []string{
		"steps: [{at: 1, preset: warp}]",
		"steps: [{at: -1, fuel_flow: 0.5}]",
		"steps: [{at: 1, design: zeppelin}]",
	} {
		s, err := ParseScenario([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Schedule(params.Default()); err == nil {
			t.Errorf("expected error for %q", src)
		}
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(demo), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "spool-up" || len(s.Steps) != 3 {
		t.Errorf("unexpected scenario %+v", s)
	}
}

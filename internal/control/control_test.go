package control

import (
	"math"
	"testing"

	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

func TestPIDProportionalFirstStep(t *testing.T) {
	pid := NewPID(2, 1, 1, 10)
	if u := pid.Compute(4, 0); u != 12 {
		t.Errorf("expected 12, got %v", u)
	}
}

func TestPIDIntegralClamp(t *testing.T) {
	pid := NewPID(0, 1, 0, 10)
	pid.Limit = 3
	pid.Compute(0, 0)
	var u float64
	for i := 1; i <= 10; i++ {
		u = pid.Compute(0, float64(i))
	}
	if u != 3 {
		t.Errorf("integral should clamp at 3, got %v", u)
	}
	pid.Reset()
	if u := pid.Compute(10, 0); u != 0 {
		t.Errorf("reset should clear the integral, got %v", u)
	}
}

func TestPIDSetParam(t *testing.T) {
	pid := NewPID(1, 0, 0, 0)
	pid.SetParam("target", 5)
	pid.SetParam("kp", 3)
	if got := pid.GetParams(); got["target"] != 5 || got["kp"] != 3 {
		t.Errorf("params not applied: %v", got)
	}
}

func TestThrustHoldConverges(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		pulse  float64
		tube   float64
	}{
		{"cruise", 20, 30, 1.4},
		{"slow", 10, 15, 1.4},
		{"boost", 60, 80, 1.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params.Default()
			p.PulseFrequency = tt.pulse
			p.TubeLength = tt.tube

			h := NewThrustHold(tt.target)
			var out params.Params
			for i := 0; i < 60*20; i++ {
				out, _ = h.Adjust(float64(i)/60, p)
			}
			got := telemetry.FromParams(out).Thrust
			if math.Abs(got-tt.target) > 0.05 {
				t.Errorf("thrust %v did not settle on %v (fuel %v)", got, tt.target, out.FuelFlow)
			}
		})
	}
}

func TestThrustHoldSaturates(t *testing.T) {
	p := params.Default()
	p.PulseFrequency = 5
	h := NewThrustHold(500)
	var out params.Params
	for i := 0; i < 600; i++ {
		out, _ = h.Adjust(float64(i)/60, p)
	}
	if out.FuelFlow != params.MaxFuelFlow {
		t.Errorf("unreachable target should pin fuel at max, got %v", out.FuelFlow)
	}
}

func TestPinAndNone(t *testing.T) {
	p := params.Default()
	out, u := NewPin(params.FieldPulseFrequency, 80).Adjust(0, p)
	if out.PulseFrequency != 80 || u != 80-p.PulseFrequency {
		t.Errorf("pin: %v %v", out.PulseFrequency, u)
	}
	out, u = NewNone().Adjust(0, p)
	if out != p || u != 0 {
		t.Error("none should pass through")
	}
}

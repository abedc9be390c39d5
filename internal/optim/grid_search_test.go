package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

func TestLinspace(t *testing.T) {
	a := Linspace(params.FieldFuelFlow, 5)
	want := []float64{0.2, 0.4, 0.6, 0.8, 1.0}
	for i, v := range a.Values {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("value %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestSearchFindsResonantTube(t *testing.T) {
	base := params.Default()
	base.FuelFlow = 0.5
	g := NewGridSearch(Linspace(params.FieldTubeLength, 161))

	obj, err := GetObjective("resonance")
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.Search(context.Background(), base, obj)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Params.TubeLength-telemetry.IdealTubeLength(0.5)) > 0.011 {
		t.Errorf("best tube %.3f, want %.3f", res.Params.TubeLength, telemetry.IdealTubeLength(0.5))
	}
	if res.Params.FuelFlow != 0.5 {
		t.Error("knobs off the grid should keep their base value")
	}
	if res.Evaluated != 161 {
		t.Errorf("evaluated %d", res.Evaluated)
	}
}

func TestSearchMaxThrustHitsCorner(t *testing.T) {
	g := NewGridSearch(
		Linspace(params.FieldTubeLength, 33),
		Linspace(params.FieldPulseFrequency, 50),
		Linspace(params.FieldFuelFlow, 9),
	)
	obj, _ := GetObjective("thrust")
	res, err := g.Search(context.Background(), params.Default(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if res.Params.PulseFrequency != params.MaxPulseFrequency || res.Params.FuelFlow != params.MaxFuelFlow {
		t.Errorf("expected max pulse and fuel, got %+v", res.Params)
	}
	// Ideal tube for full fuel is 0.9 m, which is on a 0.05 m grid.
	if math.Abs(res.Params.TubeLength-0.9) > 1e-9 {
		t.Errorf("expected 0.9 m tube, got %v", res.Params.TubeLength)
	}
}

func TestSearchTemperatureLimit(t *testing.T) {
	g := NewGridSearch(Linspace(params.FieldFuelFlow, 9), Linspace(params.FieldTubeLength, 33))
	g.MaxTemp = 900
	obj, _ := GetObjective("thrust")
	res, err := g.Search(context.Background(), params.Default(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if res.Telemetry.ChamberTemp > 900 {
		t.Errorf("constraint violated: %v K", res.Telemetry.ChamberTemp)
	}
	if res.Rejected == 0 {
		t.Error("expected some hot points rejected")
	}

	g.MaxTemp = 1
	if _, err := g.Search(context.Background(), params.Default(), obj); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected no feasible point, got %v", err)
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch(Linspace(params.FieldTubeLength, 10))
	obj, _ := GetObjective("thrust")
	if _, err := g.Search(ctx, params.Default(), obj); !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled, got %v", err)
	}
}

func TestGetObjectiveUnknown(t *testing.T) {
	if _, err := GetObjective("speed"); err == nil {
		t.Error("expected error")
	}
	if len(ObjectiveNames()) != 4 {
		t.Errorf("objectives: %v", ObjectiveNames())
	}
}

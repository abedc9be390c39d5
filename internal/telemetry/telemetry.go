// Package telemetry derives display readouts from the engine parameters.
//
// Everything here is a pure function: the same inputs always produce
// bit-identical outputs, and nothing is cached between calls.
package telemetry

import (
	"math"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

// Resonant tube length at zero fuel, and how far it shifts per unit fuel.
const (
	resonantBase  = 1.6
	resonantShift = 0.7
)

// Dial full-scale values used by the HUD.
const (
	ThrustFullScale = 40.0
	TempFloor       = 300.0
	TempSpan        = 900.0
)

// Snapshot holds the derived readouts for one instant.
type Snapshot struct {
	Thrust      float64 // N
	ChamberTemp float64 // K
	PulseRate   float64 // Hz
	Resonance   float64 // [0,1]
}

// IdealTubeLength is the tube length that resonates at the given fuel flow.
func IdealTubeLength(fuelFlow float64) float64 {
	return resonantBase - fuelFlow*resonantShift
}

// Resonance measures how close the tube is to its ideal length: 1 at the
// ideal, falling linearly to 0 one metre away.
func Resonance(tubeLength, fuelFlow float64) float64 {
	return math.Max(0, 1-math.Abs(tubeLength-IdealTubeLength(fuelFlow)))
}

// Compute derives thrust, chamber temperature and pulse rate. Negative
// fuel or frequency is treated as zero.
func Compute(tubeLength, fuelFlow, pulseFrequency float64) Snapshot {
	fuel := math.Max(0, fuelFlow)
	pulse := math.Max(0, pulseFrequency)
	res := Resonance(tubeLength, fuel)

	return Snapshot{
		Thrust:      fuel * pulse * (0.8 + res*1.8),
		ChamberTemp: (400 + fuel*900) * (0.6 + res*0.7),
		PulseRate:   pulseFrequency,
		Resonance:   res,
	}
}

// FromParams is Compute over a parameter snapshot.
func FromParams(p params.Params) Snapshot {
	return Compute(p.TubeLength, p.FuelFlow, p.PulseFrequency)
}

// Dials maps the snapshot onto the three HUD gauges, each in [0,1].
func (s Snapshot) Dials() (thrust, temp, rate float64) {
	thrust = dynamo.Clamp01(s.Thrust / ThrustFullScale)
	temp = dynamo.Clamp01((s.ChamberTemp - TempFloor) / TempSpan)
	rate = dynamo.Clamp01((s.PulseRate - params.MinPulseFrequency) / (params.MaxPulseFrequency - params.MinPulseFrequency))
	return thrust, temp, rate
}

// Package metrics summarizes a recorded run. Each metric folds the samples
// of one run into a single number.
package metrics

import (
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

// Sample is one recorded frame.
type Sample struct {
	Time      float64
	Params    params.Params
	Telemetry telemetry.Snapshot
	Particles int
	Control   float64 // governor output, zero without one
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Defaults is the metric set recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewMean("mean_thrust", func(s Sample) float64 { return s.Telemetry.Thrust }),
		NewPeak("peak_temp", func(s Sample) float64 { return s.Telemetry.ChamberTemp }),
		NewMean("mean_resonance", func(s Sample) float64 { return s.Telemetry.Resonance }),
		NewRipple("thrust_ripple", func(s Sample) float64 { return s.Telemetry.Thrust }),
		NewFuelUse(),
		NewEnvelope(),
		NewControlEffort(),
	}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

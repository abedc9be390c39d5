package analysis

import (
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

// SweepPoint is the telemetry at one setting of the swept knob.
type SweepPoint struct {
	Value     float64
	Telemetry telemetry.Snapshot
}

// Sweep holds every knob of base fixed except field, which steps evenly
// across its full range.
func Sweep(base params.Params, field params.Field, steps int) []SweepPoint {
	if steps < 2 {
		steps = 2
	}
	lo, hi, _ := field.Range()
	out := make([]SweepPoint, steps)
	for i := range out {
		v := lo + (hi-lo)*float64(i)/float64(steps-1)
		p := base.Set(field, v)
		out[i] = SweepPoint{Value: p.Get(field), Telemetry: telemetry.FromParams(p)}
	}
	return out
}

// Series extracts one telemetry channel for charting.
func Series(points []SweepPoint, pick func(telemetry.Snapshot) float64) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pick(pt.Telemetry)
	}
	return out
}

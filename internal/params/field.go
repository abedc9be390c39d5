package params

import "github.com/san-kum/pulsejet/internal/dynamo"

// Field names one of the three tunable physical knobs.
type Field int

const (
	FieldTubeLength Field = iota
	FieldPulseFrequency
	FieldFuelFlow
	numFields
)

// Fields lists the knobs in control-panel order.
func Fields() []Field {
	return []Field{FieldTubeLength, FieldPulseFrequency, FieldFuelFlow}
}

func (f Field) String() string {
	switch f {
	case FieldTubeLength:
		return "tube"
	case FieldPulseFrequency:
		return "pulse"
	case FieldFuelFlow:
		return "fuel"
	}
	return "unknown"
}

func (f Field) Unit() string {
	switch f {
	case FieldTubeLength:
		return "m"
	case FieldPulseFrequency:
		return "Hz"
	}
	return ""
}

// Range returns the slider bounds and the step of one key press.
func (f Field) Range() (lo, hi, step float64) {
	switch f {
	case FieldTubeLength:
		return MinTubeLength, MaxTubeLength, 0.01
	case FieldPulseFrequency:
		return MinPulseFrequency, MaxPulseFrequency, 0.5
	case FieldFuelFlow:
		return MinFuelFlow, MaxFuelFlow, 0.01
	}
	return 0, 0, 0
}

func (f Field) Next() Field {
	return (f + 1) % numFields
}

// Get reads the field's value from p.
func (p Params) Get(f Field) float64 {
	switch f {
	case FieldTubeLength:
		return p.TubeLength
	case FieldPulseFrequency:
		return p.PulseFrequency
	case FieldFuelFlow:
		return p.FuelFlow
	}
	return 0
}

// Set writes v to the field, clamped to its range.
func (p Params) Set(f Field, v float64) Params {
	lo, hi, _ := f.Range()
	v = dynamo.Clamp(v, lo, hi)
	switch f {
	case FieldTubeLength:
		p.TubeLength = v
	case FieldPulseFrequency:
		p.PulseFrequency = v
	case FieldFuelFlow:
		p.FuelFlow = v
	}
	return p
}

// Nudge moves the field by steps slider steps, clamped to its range.
func (p Params) Nudge(f Field, steps float64) Params {
	_, _, step := f.Range()
	return p.Set(f, p.Get(f)+steps*step)
}

// Normalized maps the field's value to [0,1] across its range.
func (p Params) Normalized(f Field) float64 {
	lo, hi, _ := f.Range()
	if hi <= lo {
		return 0
	}
	return dynamo.Clamp01((p.Get(f) - lo) / (hi - lo))
}

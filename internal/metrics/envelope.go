package metrics

import "math"

// Envelope is the fraction of samples spent inside the safe operating
// envelope: 1 when the engine never overloaded.
type Envelope struct {
	violations int
	samples    int
}

func NewEnvelope() *Envelope { return &Envelope{} }

func (e *Envelope) Name() string { return "envelope" }

func (e *Envelope) Observe(s Sample) {
	e.samples++
	if s.Params.Overloaded() {
		e.violations++
	}
}

func (e *Envelope) Value() float64 {
	if e.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(e.violations)/float64(e.samples)
}

func (e *Envelope) Reset() {
	e.violations = 0
	e.samples = 0
}

// FuelUse integrates fuel flow over simulated time with the trapezoid rule.
type FuelUse struct {
	total    float64
	prevT    float64
	prevFuel float64
	first    bool
}

func NewFuelUse() *FuelUse { return &FuelUse{first: true} }

func (f *FuelUse) Name() string { return "fuel_use" }

func (f *FuelUse) Observe(s Sample) {
	fuel := s.Params.FuelFlow
	if !f.first && s.Time > f.prevT {
		f.total += (s.Time - f.prevT) * (fuel + f.prevFuel) / 2
	}
	f.prevT, f.prevFuel, f.first = s.Time, fuel, false
}

func (f *FuelUse) Value() float64 { return f.total }

func (f *FuelUse) Reset() {
	*f = FuelUse{first: true}
}

// ControlEffort is the mean absolute governor correction.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s Sample) {
	c.sum += math.Abs(s.Control)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

package control

import (
	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	Limit    float64 // integral clamp, 0 for none
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

// Compute returns the correction for a measurement taken at time t.
func (p *PID) Compute(measured, t float64) float64 {
	err := p.Target - measured

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.Kp*err + p.Ki*p.integral
	}
	p.integral += err * dt
	if p.Limit > 0 {
		p.integral = dynamo.Clamp(p.integral, -p.Limit, p.Limit)
	}
	derivative := (err - p.prevErr) / dt

	p.prevErr = err
	p.prevT = t
	return p.Kp*err + p.Ki*p.integral + p.Kd*derivative
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	}
}

// Default governor gains, tuned for the thrust model's fuel sensitivity.
const (
	HoldKp    = 0.004
	HoldKi    = 0.02
	HoldKd    = 0.0
	HoldLimit = 50.0
)

// ThrustHold trims fuel flow so thrust settles on the PID target. The
// schedule's fuel flow is the feed-forward term; the measurement is the
// thrust produced by the previous frame's trimmed fuel.
type ThrustHold struct {
	PID  *PID
	fuel float64
	init bool
}

func NewThrustHold(target float64) *ThrustHold {
	pid := NewPID(HoldKp, HoldKi, HoldKd, target)
	pid.Limit = HoldLimit
	return &ThrustHold{PID: pid}
}

func (h *ThrustHold) Adjust(t float64, p params.Params) (params.Params, float64) {
	if !h.init {
		h.fuel = p.FuelFlow
		h.init = true
	}
	measured := telemetry.Compute(p.TubeLength, h.fuel, p.PulseFrequency).Thrust
	u := h.PID.Compute(measured, t)

	base := p.FuelFlow
	p = p.Set(params.FieldFuelFlow, base+u)
	h.fuel = p.FuelFlow
	return p, p.FuelFlow - base
}

func (h *ThrustHold) Reset() {
	h.PID.Reset()
	h.init = false
}

package control

import "github.com/san-kum/pulsejet/internal/params"

// Pin overrides one knob with a fixed value whatever the schedule says.
type Pin struct {
	Field params.Field
	Value float64
}

func NewPin(f params.Field, v float64) *Pin {
	return &Pin{Field: f, Value: v}
}

func (c *Pin) Adjust(_ float64, p params.Params) (params.Params, float64) {
	before := p.Get(c.Field)
	p = p.Set(c.Field, c.Value)
	return p, p.Get(c.Field) - before
}

func (c *Pin) Reset() {}

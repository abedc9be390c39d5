package metrics

import "math"

// Mean averages a per-sample value.
type Mean struct {
	name    string
	pick    func(Sample) float64
	sum     float64
	samples int
}

func NewMean(name string, pick func(Sample) float64) *Mean {
	return &Mean{name: name, pick: pick}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(s Sample) {
	m.sum += m.pick(s)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// Peak tracks the largest per-sample value.
type Peak struct {
	name string
	pick func(Sample) float64
	max  float64
	seen bool
}

func NewPeak(name string, pick func(Sample) float64) *Peak {
	return &Peak{name: name, pick: pick}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s Sample) {
	v := p.pick(s)
	if !p.seen || v > p.max {
		p.max = v
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}

// Ripple is the standard deviation of a per-sample value (Welford).
type Ripple struct {
	name    string
	pick    func(Sample) float64
	mean    float64
	m2      float64
	samples int
}

func NewRipple(name string, pick func(Sample) float64) *Ripple {
	return &Ripple{name: name, pick: pick}
}

func (r *Ripple) Name() string { return r.name }

func (r *Ripple) Observe(s Sample) {
	v := r.pick(s)
	r.samples++
	d := v - r.mean
	r.mean += d / float64(r.samples)
	r.m2 += d * (v - r.mean)
}

func (r *Ripple) Value() float64 {
	if r.samples < 2 {
		return 0
	}
	return math.Sqrt(r.m2 / float64(r.samples))
}

func (r *Ripple) Reset() {
	r.mean, r.m2, r.samples = 0, 0, 0
}

package audio

import "sync/atomic"

// segment is one linear automation step on the audio clock. Before start
// the value is from, after end it is to.
type segment struct {
	from, to   float64
	start, end float64
}

func (s *segment) valueAt(t float64) float64 {
	if t >= s.end || s.end <= s.start {
		return s.to
	}
	if t <= s.start {
		return s.from
	}
	return s.from + (s.to-s.from)*(t-s.start)/(s.end-s.start)
}

// Param is an automatable value written by the frame thread and read by the
// audio callback. Writes publish a new segment atomically; the callback
// never blocks.
type Param struct {
	seg atomic.Pointer[segment]
}

func NewParam(v float64) *Param {
	p := &Param{}
	p.Set(v)
	return p
}

// Set jumps to v immediately.
func (p *Param) Set(v float64) {
	if cur := p.seg.Load(); cur != nil && cur.from == v && cur.to == v {
		return
	}
	p.seg.Store(&segment{from: v, to: v})
}

// RampTo moves linearly from the value at time at to v over dur seconds.
// It reports false, and leaves any ramp in flight alone, when v is already
// the target.
func (p *Param) RampTo(v, at, dur float64) bool {
	cur := p.seg.Load()
	if cur != nil && cur.to == v {
		return false
	}
	if dur <= 0 || cur == nil {
		p.seg.Store(&segment{from: v, to: v})
		return true
	}
	p.seg.Store(&segment{from: cur.valueAt(at), to: v, start: at, end: at + dur})
	return true
}

// ValueAt evaluates the automation at audio-clock time t.
func (p *Param) ValueAt(t float64) float64 {
	return p.seg.Load().valueAt(t)
}

// Target is the value the param settles on once any ramp completes.
func (p *Param) Target() float64 {
	return p.seg.Load().to
}

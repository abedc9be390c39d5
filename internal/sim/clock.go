package sim

import "time"

// MaxDelta caps a single frame step so a stalled host does not make the
// simulation jump.
const MaxDelta = 50 * time.Millisecond

// Clock is the simulated clock. It only moves forward and only when
// advanced.
type Clock struct {
	t float64
}

func (c *Clock) Now() float64 { return c.t }

func (c *Clock) Advance(delta float64) {
	if delta > 0 {
		c.t += delta
	}
}

func (c *Clock) Reset() { c.t = 0 }

// ClampDelta bounds the wall time between two ticks to [0, MaxDelta].
func ClampDelta(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxDelta {
		return MaxDelta
	}
	return d
}

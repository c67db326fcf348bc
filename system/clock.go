package system

// Clock turns the host's frame timestamps into per-frame deltas.
type Clock struct {
	last    float64
	started bool
}

// Tick returns the milliseconds since the previous Tick. The first Tick
// after construction or Reset returns 0. Timestamps that go backwards also
// yield 0.
func (c *Clock) Tick(nowMs float64) float64 {
	if !c.started {
		c.started = true
		c.last = nowMs
		return 0
	}
	dt := nowMs - c.last
	c.last = nowMs
	if dt < 0 {
		return 0
	}
	return dt
}

func (c *Clock) Reset() {
	c.started = false
	c.last = 0
}

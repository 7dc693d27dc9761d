package scene

import "time"

// Clock converts wall-clock timestamps into elapsed scene time.
// The zero Clock starts on the first call to Elapsed.
type Clock struct {
	start   time.Time
	started bool
}

// Start pins the scene start time.
func (c *Clock) Start(now time.Time) {
	c.start = now
	c.started = true
}

// Elapsed returns now - start, never negative.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if !c.started {
		c.Start(now)
	}
	d := now.Sub(c.start)
	if d < 0 {
		return 0
	}
	return d
}

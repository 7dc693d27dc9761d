package telemetry

import "time"

// Collector samples the flake population each frame and produces
// WindowStats once per window.
type Collector struct {
	window time.Duration

	// Current window tracking
	windowStart  time.Duration
	windowFrames int64
	samples      []float64

	// Lifetime totals at the start of the window
	spawnedBase int64
	retiredBase int64
}

// NewCollector creates a collector flushing every window of scene time.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Collector{window: window}
}

// Observe records the live flake count for one frame.
func (c *Collector) Observe(flakes int) {
	c.samples = append(c.samples, float64(flakes))
	c.windowFrames++
}

// ShouldFlush returns true once the window has elapsed. A clock that moved
// backwards restarts the window.
func (c *Collector) ShouldFlush(elapsed time.Duration) bool {
	if elapsed < c.windowStart {
		c.windowStart = elapsed
		return false
	}
	return elapsed-c.windowStart >= c.window
}

// Flush produces a WindowStats and resets counters for the next window.
// spawned and retired are lifetime totals reported by the flake system.
func (c *Collector) Flush(frame int64, elapsed time.Duration, stars int, spawned, retired int64) WindowStats {
	mean, lo, hi := ComputeCountStats(c.samples)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   frame,
		ElapsedSec:  elapsed.Seconds(),
		Frames:      c.windowFrames,
		FlakesMean:  mean,
		FlakesMin:   lo,
		FlakesMax:   hi,
		Spawned:     spawned - c.spawnedBase,
		Retired:     retired - c.retiredBase,
		Stars:       stars,
	}

	// Reset for next window
	c.windowStart = elapsed
	c.windowFrames = 0
	c.samples = c.samples[:0]
	c.spawnedBase = spawned
	c.retiredBase = retired

	return stats
}

// Window returns the window length.
func (c *Collector) Window() time.Duration {
	return c.window
}

package scene

import (
	"fmt"
	"time"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/renderer"
)

// Traced renders implicit primitives by sphere tracing.
type Traced struct {
	clock       Clock
	elapsed     time.Duration
	timeScaleMS float64
	tracer      *renderer.Tracer
}

// NewTraced creates a traced scene.
func NewTraced(cfg *config.Config) (*Traced, error) {
	tr, err := renderer.NewTracer(cfg)
	if err != nil {
		return nil, fmt.Errorf("scene: %w: %v", config.ErrInvalid, err)
	}
	return &Traced{tracer: tr, timeScaleMS: cfg.Scene.TimeScaleMS}, nil
}

// Start pins the scene clock.
func (t *Traced) Start(now time.Time) {
	t.clock.Start(now)
}

// Advance records the elapsed time.
func (t *Traced) Advance(now time.Time) {
	t.elapsed = t.clock.Elapsed(now)
}

// Render traces one ray per pixel block into buf.
func (t *Traced) Render(buf []byte, width, height int) error {
	f, err := renderer.Wrap(buf, width, height)
	if err != nil {
		return fmt.Errorf("render traced: %w", err)
	}
	t.tracer.Draw(&f, t.phase())
	return nil
}

func (t *Traced) phase() float64 {
	if t.timeScaleMS <= 0 {
		return 0
	}
	return float64(t.elapsed.Milliseconds()) / t.timeScaleMS
}

// Stats reports scene counters.
func (t *Traced) Stats() Stats {
	return Stats{Style: config.StyleTraced, Elapsed: t.elapsed}
}

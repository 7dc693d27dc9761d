package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/renderer"
	"github.com/khemritolya/kessler/systems"
)

// Analytic renders stars, the noise corona and flake trails.
type Analytic struct {
	cfg   *config.Config
	rng   *rand.Rand
	clock Clock

	width, height int
	elapsed       time.Duration

	anchors *systems.AnchorSet
	flakes  *systems.FlakeSystem
	comp    *renderer.Compositor
}

// NewAnalytic creates an analytic scene sized to cfg.Screen.
func NewAnalytic(cfg *config.Config, rng *rand.Rand) (*Analytic, error) {
	trajs, err := systems.NewTrajectories(cfg.Flakes.Trajectories)
	if err != nil {
		return nil, fmt.Errorf("scene: %w: %v", config.ErrInvalid, err)
	}

	a := &Analytic{
		cfg:    cfg,
		rng:    rng,
		width:  cfg.Screen.Width,
		height: cfg.Screen.Height,
		comp:   renderer.NewCompositor(cfg),
	}

	if cfg.Corona.Enabled {
		field, err := systems.NewField(cfg.Corona.Field, rng.Int63())
		if err != nil {
			return nil, fmt.Errorf("scene: %w: %v", config.ErrInvalid, err)
		}
		a.comp.Corona = field
	}

	a.comp.Stars = a.newStars()
	a.anchors = systems.NewAnchorSet(cfg.Flakes.Anchors, a.width, a.height)
	a.flakes = systems.NewFlakeSystem(cfg.Flakes, a.anchors, trajs, rng)
	return a, nil
}

func (a *Analytic) newStars() *systems.StarField {
	s := a.comp.Scale
	return systems.NewStarField(a.cfg.Stars, a.width, a.height, a.width/s, a.height/s, a.rng)
}

// Start pins the scene clock. Without it the first Advance starts the clock.
func (a *Analytic) Start(now time.Time) {
	a.clock.Start(now)
}

// Advance moves anchors and refreshes the flake population.
func (a *Analytic) Advance(now time.Time) {
	a.elapsed = a.clock.Elapsed(now)
	a.anchors.Update(a.elapsed)
	a.flakes.Update(a.elapsed)
}

// Render composites the current state into buf.
func (a *Analytic) Render(buf []byte, width, height int) error {
	f, err := renderer.Wrap(buf, width, height)
	if err != nil {
		return fmt.Errorf("render analytic: %w", err)
	}
	a.comp.Draw(&f, a.elapsed, a.flakes)
	return nil
}

// Resize regenerates the star field and rescales anchor orbits.
func (a *Analytic) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == a.width && height == a.height) {
		return
	}
	a.width, a.height = width, height
	a.comp.Stars = a.newStars()
	a.anchors.Resize(width, height)
	a.anchors.Update(a.elapsed)
}

// Stats reports scene counters.
func (a *Analytic) Stats() Stats {
	return Stats{
		Style:   config.StyleAnalytic,
		Elapsed: a.elapsed,
		Flakes:  a.flakes.Count(),
		Stars:   a.comp.Stars.Count(),
		Spawned: a.flakes.Spawned(),
		Retired: a.flakes.Retired(),
	}
}

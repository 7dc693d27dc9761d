// Package scene ties scene state to a renderer style behind a small
// advance/render contract driven by the display loop.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/khemritolya/kessler/config"
)

// Scene is advanced to a wall-clock time, then rendered into a BGRA buffer.
// Render does not mutate scene state.
type Scene interface {
	Advance(now time.Time)
	Render(buf []byte, width, height int) error
}

// Resizer is implemented by scenes whose state depends on the frame size.
type Resizer interface {
	Resize(width, height int)
}

// Stats is a snapshot of scene counters for display.
type Stats struct {
	Style   string
	Elapsed time.Duration
	Flakes  int
	Stars   int

	// Flake lifecycle totals since the scene started
	Spawned int64
	Retired int64
}

// Reporter is implemented by scenes that expose Stats.
type Reporter interface {
	Stats() Stats
}

var errNilRand = errors.New("scene: nil random source")

// New builds the scene selected by cfg.Scene.Style. All random draws,
// including noise seeds, come from rng.
func New(cfg *config.Config, rng *rand.Rand) (Scene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene: %w: nil config", config.ErrInvalid)
	}
	if rng == nil {
		return nil, errNilRand
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	switch cfg.Scene.Style {
	case config.StyleTraced:
		return NewTraced(cfg)
	default:
		return NewAnalytic(cfg, rng)
	}
}

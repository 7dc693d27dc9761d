package systems

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/khemritolya/kessler/components"
	"github.com/khemritolya/kessler/config"
)

// Flake is a short-lived particle that travels a quadratic Bézier curve.
type Flake struct {
	Beg, Mid, End r2.Vec
	Color         components.RGBA
	Spawn         time.Duration // Elapsed scene time at spawn
}

// At returns the flake position at normalized life u in [0, 1].
func (f *Flake) At(u float64) r2.Vec {
	return Bezier(f.Beg, f.Mid, f.End, u)
}

// Bezier evaluates mid + (1-u)²(beg-mid) + u²(end-mid).
func Bezier(beg, mid, end r2.Vec, u float64) r2.Vec {
	a := (1 - u) * (1 - u)
	b := u * u
	return r2.Add(mid, r2.Add(r2.Scale(a, r2.Sub(beg, mid)), r2.Scale(b, r2.Sub(end, mid))))
}

// FlakeSystem owns the live flakes and their spawn/retire lifecycle.
type FlakeSystem struct {
	Flakes []Flake

	target   int
	maxCount int
	lifetime time.Duration

	jitterNear float64
	jitterMid  float64
	jitterFar  float64
	colorMin   int

	anchors      *AnchorSet
	trajectories []Trajectory
	rng          *rand.Rand
	seeded       bool

	// Lifetime totals
	spawned int64
	retired int64
}

// NewFlakeSystem creates a flake system spawning around anchors.
func NewFlakeSystem(cfg config.FlakesConfig, anchors *AnchorSet, trajectories []Trajectory, rng *rand.Rand) *FlakeSystem {
	maxCount := max(cfg.Cap, 0)
	return &FlakeSystem{
		Flakes:       make([]Flake, 0, maxCount),
		target:       min(cfg.Initial+cfg.Headroom, maxCount),
		maxCount:     maxCount,
		lifetime:     time.Duration(cfg.LifetimeSec * float64(time.Second)),
		jitterNear:   cfg.JitterNear,
		jitterMid:    cfg.JitterMid,
		jitterFar:    cfg.JitterFar,
		colorMin:     max(0, min(255, cfg.ColorMin)),
		anchors:      anchors,
		trajectories: trajectories,
		rng:          rng,
	}
}

// Update retires expired flakes, then spawns up to the target population.
func (s *FlakeSystem) Update(elapsed time.Duration) {
	s.Retire(elapsed)
	s.Spawn(elapsed)
}

// Retire removes every flake whose age has reached the lifetime.
func (s *FlakeSystem) Retire(elapsed time.Duration) {
	alive := 0
	for i := range s.Flakes {
		if s.Age(&s.Flakes[i], elapsed) >= s.lifetime {
			continue
		}
		s.Flakes[alive] = s.Flakes[i]
		alive++
	}
	s.retired += int64(len(s.Flakes) - alive)
	s.Flakes = s.Flakes[:alive]
}

// Spawn appends flakes until the population reaches min(initial+headroom, cap).
// The first fill back-dates spawn times across one lifetime so the initial
// population does not expire in a single frame.
func (s *FlakeSystem) Spawn(elapsed time.Duration) {
	if len(s.trajectories) == 0 || s.anchors == nil || s.anchors.Len() == 0 {
		return
	}
	for len(s.Flakes) < s.target {
		f := s.newFlake(elapsed)
		if !s.seeded {
			f.Spawn -= time.Duration(s.rng.Float64() * float64(s.lifetime))
		}
		s.Flakes = append(s.Flakes, f)
		s.spawned++
	}
	s.seeded = true
}

func (s *FlakeSystem) newFlake(elapsed time.Duration) Flake {
	anchor := &s.anchors.Anchors[0]
	if n := s.anchors.Len(); n > 1 {
		anchor = &s.anchors.Anchors[s.rng.Intn(n)]
	}
	traj := s.trajectories[s.rng.Intn(len(s.trajectories))]

	mid, end := traj.Eval(elapsed, anchor.Phase)
	beg := anchor.Pos

	// Spread grows with distance from the anchor
	beg = s.jitter(beg, s.jitterNear)
	mid = s.jitter(r2.Add(anchor.Pos, mid), s.jitterMid)
	end = s.jitter(r2.Add(anchor.Pos, end), s.jitterFar)

	span := 256 - s.colorMin
	r := s.colorMin + s.rng.Intn(span)
	g := s.colorMin + s.rng.Intn(span)
	b := s.colorMin + s.rng.Intn(span)

	return Flake{
		Beg: beg,
		Mid: mid,
		End: end,
		Color: components.RGBA{
			R: divSat(r, anchor.Dim[0]),
			G: divSat(g, anchor.Dim[1]),
			B: divSat(b, anchor.Dim[2]),
			A: 255,
		},
		Spawn: elapsed,
	}
}

// Age returns how long the flake has lived, never negative.
func (s *FlakeSystem) Age(f *Flake, elapsed time.Duration) time.Duration {
	return since(elapsed, f.Spawn)
}

// Progress returns the flake's normalized life u in [0, 1].
func (s *FlakeSystem) Progress(f *Flake, elapsed time.Duration) float64 {
	if s.lifetime <= 0 {
		return 1
	}
	return clamp01(float64(s.Age(f, elapsed)) / float64(s.lifetime))
}

// Lifetime returns the fixed flake lifetime.
func (s *FlakeSystem) Lifetime() time.Duration {
	return s.lifetime
}

// Target returns the population the system refills to each update.
func (s *FlakeSystem) Target() int {
	return s.target
}

// Cap returns the hard cap on live flakes.
func (s *FlakeSystem) Cap() int {
	return s.maxCount
}

// Count returns the current number of live flakes.
func (s *FlakeSystem) Count() int {
	return len(s.Flakes)
}

// Spawned returns the number of flakes spawned since creation.
func (s *FlakeSystem) Spawned() int64 {
	return s.spawned
}

// Retired returns the number of flakes retired since creation.
func (s *FlakeSystem) Retired() int64 {
	return s.retired
}

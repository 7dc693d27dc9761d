package systems

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/khemritolya/kessler/config"
)

// Anchor is a moving root that flakes spawn around.
type Anchor struct {
	Index int
	Phase float64 // Orbit phase offset, 2*Pi*Index/n
	Dim   [3]int  // Colour divisors applied to flakes spawned here
	Pos   r2.Vec  // Position at the last Update
}

// AnchorSet moves its anchors along Lissajous orbits.
// Positions depend only on elapsed time and anchor index.
type AnchorSet struct {
	Anchors []Anchor

	cfg    config.AnchorsConfig
	cx, cy float64
	ax, ay float64
	speed  float64
	ratio  float64
}

// NewAnchorSet lays out cfg.Count anchors on a screen of the given size.
func NewAnchorSet(cfg config.AnchorsConfig, width, height int) *AnchorSet {
	n := max(cfg.Count, 1)
	s := &AnchorSet{
		Anchors: make([]Anchor, n),
		cfg:     cfg,
		speed:   cfg.Speed,
		ratio:   cfg.Ratio,
	}
	s.setBounds(width, height)
	for i := range s.Anchors {
		a := &s.Anchors[i]
		a.Index = i
		a.Phase = 2 * math.Pi * float64(i) / float64(n)
		a.Dim = [3]int{1, 1, 1}
		if len(cfg.Dims) > 0 {
			d := cfg.Dims[i%len(cfg.Dims)]
			if len(d) == 3 {
				a.Dim = [3]int{d[0], d[1], d[2]}
			}
		}
	}
	s.Update(0)
	return s
}

// Resize rescales the orbits to a new screen size. Positions are refreshed
// on the next Update.
func (s *AnchorSet) Resize(width, height int) {
	s.setBounds(width, height)
}

func (s *AnchorSet) setBounds(width, height int) {
	s.cx = s.cfg.CenterX * float64(width)
	s.cy = s.cfg.CenterY * float64(height)
	s.ax = s.cfg.AmpX * float64(width)
	s.ay = s.cfg.AmpY * float64(height)
}

// PositionAt returns where anchor i is after elapsed time.
func (s *AnchorSet) PositionAt(i int, elapsed time.Duration) r2.Vec {
	t := elapsed.Seconds()
	phase := s.Anchors[i].Phase
	return r2.Vec{
		X: s.cx + s.ax*math.Sin(s.speed*t+phase),
		Y: s.cy + s.ay*math.Sin(s.speed*s.ratio*t+phase),
	}
}

// Update recomputes every anchor position.
func (s *AnchorSet) Update(elapsed time.Duration) {
	for i := range s.Anchors {
		s.Anchors[i].Pos = s.PositionAt(i, elapsed)
	}
}

// Len returns the number of anchors.
func (s *AnchorSet) Len() int {
	return len(s.Anchors)
}

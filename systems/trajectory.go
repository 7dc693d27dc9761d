package systems

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/khemritolya/kessler/config"
)

// CurveKind identifies the shape of a flake trajectory.
type CurveKind uint8

const (
	CurveFall  CurveKind = iota // Drops straight down with a sideways sway
	CurveArc                    // Lifts, then falls away to one side
	CurveSwirl                  // Loops around the midpoint on the way down
)

func (k CurveKind) String() string {
	switch k {
	case CurveFall:
		return "fall"
	case CurveArc:
		return "arc"
	case CurveSwirl:
		return "swirl"
	}
	return fmt.Sprintf("CurveKind(%d)", uint8(k))
}

// ParseCurveKind maps a config name onto a CurveKind.
func ParseCurveKind(s string) (CurveKind, error) {
	switch s {
	case "fall":
		return CurveFall, nil
	case "arc":
		return CurveArc, nil
	case "swirl":
		return CurveSwirl, nil
	}
	return 0, fmt.Errorf("unknown curve kind %q", s)
}

// Trajectory generates the control and end points of a flake's curve.
// Offsets are relative to the spawning anchor, in pixels.
type Trajectory struct {
	Kind      CurveKind
	Amplitude float64
	Drop      float64
	Period    time.Duration
	Phase     float64
}

// NewTrajectories converts config entries into trajectories.
func NewTrajectories(cfgs []config.TrajectoryConfig) ([]Trajectory, error) {
	out := make([]Trajectory, 0, len(cfgs))
	for i, c := range cfgs {
		kind, err := ParseCurveKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("trajectory %d: %w", i, err)
		}
		if c.PeriodSec <= 0 {
			return nil, fmt.Errorf("trajectory %d: non-positive period", i)
		}
		out = append(out, Trajectory{
			Kind:      kind,
			Amplitude: c.Amplitude,
			Drop:      c.Drop,
			Period:    time.Duration(c.PeriodSec * float64(time.Second)),
			Phase:     c.Phase,
		})
	}
	return out, nil
}

// Eval returns the control and end offsets for a flake spawned after
// elapsed time at an anchor with the given phase.
func (t Trajectory) Eval(elapsed time.Duration, anchorPhase float64) (mid, end r2.Vec) {
	theta := 2*math.Pi*elapsed.Seconds()/t.Period.Seconds() + t.Phase + anchorPhase
	sin, cos := math.Sincos(theta)
	a, d := t.Amplitude, t.Drop

	switch t.Kind {
	case CurveArc:
		mid = r2.Vec{X: a * cos, Y: -d / 4}
		end = r2.Vec{X: 2 * a * cos, Y: d}
	case CurveSwirl:
		mid = r2.Vec{X: a * cos, Y: a*sin + d/3}
		end = r2.Vec{X: -a * sin, Y: d + a*cos}
	default:
		mid = r2.Vec{X: a * sin, Y: d / 2}
		end = r2.Vec{X: a / 2 * sin, Y: d}
	}
	return mid, end
}

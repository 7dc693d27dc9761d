package systems

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// since returns now-then, never negative. Timestamps may arrive out of order.
func since(now, then time.Duration) time.Duration {
	if now < then {
		return 0
	}
	return now - then
}

// divSat divides a channel by a divisor floored at 1.
func divSat(v, d int) uint8 {
	if d < 1 {
		d = 1
	}
	return uint8(max(0, min(255, v/d)))
}

// jitter offsets p by independent uniform draws in [-amount, amount] on each axis.
func (s *FlakeSystem) jitter(p r2.Vec, amount float64) r2.Vec {
	return r2.Vec{
		X: p.X + (s.rng.Float64()*2-1)*amount,
		Y: p.Y + (s.rng.Float64()*2-1)*amount,
	}
}

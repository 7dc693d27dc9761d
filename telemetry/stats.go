package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated scene statistics for a window.
type WindowStats struct {
	WindowStart time.Duration `csv:"-"`
	WindowEnd   int64         `csv:"window_end"`
	ElapsedSec  float64       `csv:"elapsed"`
	Frames      int64         `csv:"frames"`

	// Flake population sampled every frame
	FlakesMean float64 `csv:"flakes_mean"`
	FlakesMin  float64 `csv:"flakes_min"`
	FlakesMax  float64 `csv:"flakes_max"`

	// Lifecycle events during the window
	Spawned int64 `csv:"spawned"`
	Retired int64 `csv:"retired"`

	Stars int `csv:"stars"`
}

// ComputeCountStats returns mean, min and max of the samples.
// Returns zeros for an empty slice.
func ComputeCountStats(samples []float64) (mean, lo, hi float64) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	return stat.Mean(samples, nil), floats.Min(samples), floats.Max(samples)
}

// LogStats logs the window statistics.
func (s WindowStats) LogStats() {
	slog.Info("window", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEnd),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int64("frames", s.Frames),
		slog.Float64("flakes_mean", s.FlakesMean),
		slog.Float64("flakes_min", s.FlakesMin),
		slog.Float64("flakes_max", s.FlakesMax),
		slog.Int64("spawned", s.Spawned),
		slog.Int64("retired", s.Retired),
		slog.Int("stars", s.Stars),
	)
}

package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestComputeCountStats(t *testing.T) {
	tests := []struct {
		name         string
		samples      []float64
		mean, lo, hi float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{7}, 7, 7, 7},
		{"spread", []float64{160, 158, 160, 150}, 157, 150, 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, lo, hi := ComputeCountStats(tt.samples)
			if math.Abs(mean-tt.mean) > 0.001 || lo != tt.lo || hi != tt.hi {
				t.Errorf("ComputeCountStats(%v) = %v, %v, %v", tt.samples, mean, lo, hi)
			}
		})
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(time.Second)

	if c.ShouldFlush(500 * time.Millisecond) {
		t.Error("flushed before the window elapsed")
	}
	for _, n := range []int{160, 150, 155} {
		c.Observe(n)
	}
	if !c.ShouldFlush(time.Second) {
		t.Fatal("expected flush after one window")
	}

	s := c.Flush(50, time.Second, 9, 300, 140)
	if s.Frames != 3 || s.FlakesMin != 150 || s.FlakesMax != 160 || s.FlakesMean != 155 {
		t.Errorf("unexpected window %+v", s)
	}
	if s.Spawned != 300 || s.Retired != 140 || s.WindowEnd != 50 || s.Stars != 9 {
		t.Errorf("unexpected totals %+v", s)
	}

	// Next window reports deltas
	c.Observe(160)
	s = c.Flush(100, 2*time.Second, 9, 340, 180)
	if s.Spawned != 40 || s.Retired != 40 || s.Frames != 1 {
		t.Errorf("unexpected deltas %+v", s)
	}
	if s.WindowStart != time.Second {
		t.Errorf("expected window start 1s, got %v", s.WindowStart)
	}
}

func TestCollector_ClockSkew(t *testing.T) {
	c := NewCollector(time.Second)
	c.Flush(1, 5*time.Second, 0, 0, 0)

	// Time going backwards restarts the window instead of flushing
	if c.ShouldFlush(2 * time.Second) {
		t.Error("flushed on a backwards clock")
	}
	if !c.ShouldFlush(3 * time.Second) {
		t.Error("expected flush one window after the restart")
	}
}

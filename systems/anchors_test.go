package systems

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khemritolya/kessler/config"
)

func testAnchorConfig() config.AnchorsConfig {
	return config.AnchorsConfig{
		Count:   4,
		CenterX: 0.5,
		CenterY: 0.25,
		AmpX:    0.25,
		AmpY:    0.1,
		Speed:   1,
		Ratio:   2,
	}
}

func TestAnchorPositionsDeterministic(t *testing.T) {
	s := NewAnchorSet(testAnchorConfig(), 1000, 800)

	for _, e := range []time.Duration{0, 250 * time.Millisecond, 3 * time.Second, 90 * time.Minute} {
		s.Update(e)
		first := make([]Anchor, s.Len())
		copy(first, s.Anchors)

		// Re-running the same timestamp yields identical coordinates
		s.Update(e)
		assert.Equal(t, first, s.Anchors)

		// A detour through another timestamp does not leak state
		s.Update(e + time.Hour)
		s.Update(e)
		assert.Equal(t, first, s.Anchors)
	}
}

func TestAnchorPositionFormula(t *testing.T) {
	s := NewAnchorSet(testAnchorConfig(), 1000, 800)

	tests := []struct {
		index   int
		elapsed time.Duration
	}{
		{0, 0},
		{1, 0},
		{2, 1500 * time.Millisecond},
		{3, 10 * time.Second},
	}

	for _, tc := range tests {
		phase := 2 * math.Pi * float64(tc.index) / 4
		sec := tc.elapsed.Seconds()
		wantX := 500 + 250*math.Sin(sec+phase)
		wantY := 200 + 80*math.Sin(2*sec+phase)

		got := s.PositionAt(tc.index, tc.elapsed)
		assert.InDelta(t, wantX, got.X, 1e-9)
		assert.InDelta(t, wantY, got.Y, 1e-9)
	}
}

func TestAnchorDimsCycle(t *testing.T) {
	cfg := testAnchorConfig()
	cfg.Dims = [][]int{{1, 2, 3}, {4, 5, 6}}
	s := NewAnchorSet(cfg, 100, 100)

	assert.Equal(t, [3]int{1, 2, 3}, s.Anchors[0].Dim)
	assert.Equal(t, [3]int{4, 5, 6}, s.Anchors[1].Dim)
	assert.Equal(t, [3]int{1, 2, 3}, s.Anchors[2].Dim)
}

func TestAnchorDefaultDim(t *testing.T) {
	s := NewAnchorSet(testAnchorConfig(), 100, 100)
	for _, a := range s.Anchors {
		assert.Equal(t, [3]int{1, 1, 1}, a.Dim)
	}
}

func TestAnchorResize(t *testing.T) {
	s := NewAnchorSet(testAnchorConfig(), 1000, 800)
	s.Resize(2000, 400)

	got := s.PositionAt(0, 0)
	assert.InDelta(t, 1000.0, got.X, 1e-9)
	assert.InDelta(t, 100.0, got.Y, 1e-9)
}

package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khemritolya/kessler/config"
)

func TestStarFieldPlacement(t *testing.T) {
	cfg := config.StarsConfig{DensityDivisor: 2048, MinRadius: 0, MaxRadius: 2}
	sf := NewStarField(cfg, 1280, 720, 640, 360, rand.New(rand.NewSource(1)))

	assert.Equal(t, 1280*720/2048, sf.Count())

	n := 0
	radii := map[int]int{}
	q := sf.Filter().Query()
	for q.Next() {
		pos, glint := q.Get()
		assert.True(t, pos.X >= 0 && pos.X < 640, "x %d outside cells", pos.X)
		assert.True(t, pos.Y >= 0 && pos.Y < 360, "y %d outside cells", pos.Y)
		radii[glint.Radius]++
		n++
	}
	assert.Equal(t, sf.Count(), n)

	// Radius range is [min, max)
	assert.Len(t, radii, 2)
	assert.Contains(t, radii, 0)
	assert.Contains(t, radii, 1)
}

func TestStarFieldEmptyGrid(t *testing.T) {
	cfg := config.StarsConfig{DensityDivisor: 1, MinRadius: 1, MaxRadius: 2}
	sf := NewStarField(cfg, 10, 10, 0, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, sf.Count())

	q := sf.Filter().Query()
	assert.False(t, q.Next())
}

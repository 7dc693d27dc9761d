package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/khemritolya/kessler/components"
	"github.com/khemritolya/kessler/config"
)

// StarField stores stationary glints as ECS entities.
type StarField struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Glint]
	filter *ecs.Filter2[components.Position, components.Glint]
	count  int
}

// NewStarField scatters one star per cfg.DensityDivisor screen pixels over a
// cellsW x cellsH cell grid.
func NewStarField(cfg config.StarsConfig, screenW, screenH, cellsW, cellsH int, rng *rand.Rand) *StarField {
	world := ecs.NewWorld()
	sf := &StarField{
		world:  world,
		mapper: ecs.NewMap2[components.Position, components.Glint](world),
		filter: ecs.NewFilter2[components.Position, components.Glint](world),
	}
	if cellsW <= 0 || cellsH <= 0 || cfg.DensityDivisor < 1 {
		return sf
	}

	span := max(cfg.MaxRadius-cfg.MinRadius, 1)
	n := screenW * screenH / cfg.DensityDivisor
	for i := 0; i < n; i++ {
		pos := components.Position{X: rng.Intn(cellsW), Y: rng.Intn(cellsH)}
		glint := components.Glint{Radius: cfg.MinRadius + rng.Intn(span)}
		sf.mapper.NewEntity(&pos, &glint)
	}
	sf.count = n
	return sf
}

// Filter returns the query filter over all stars.
func (sf *StarField) Filter() *ecs.Filter2[components.Position, components.Glint] {
	return sf.filter
}

// Count returns the number of stars.
func (sf *StarField) Count() int {
	return sf.count
}

package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Field is a coherent scalar field sampled in three dimensions.
// Values lie in roughly [-1, 1].
type Field interface {
	Eval3(x, y, z float64) float64
}

// NewField returns the named field implementation seeded with seed.
func NewField(kind string, seed int64) (Field, error) {
	switch kind {
	case "simplex":
		return NewSimplexField(seed), nil
	case "perlin":
		return NewPerlinNoise(seed), nil
	default:
		return nil, fmt.Errorf("unknown field %q", kind)
	}
}

// NewSimplexField returns an OpenSimplex field.
func NewSimplexField(seed int64) Field {
	return opensimplex.New(seed)
}

// PerlinNoise is classic gradient noise over a seeded 256-entry lattice
// hash. It is zero at every integer lattice point.
type PerlinNoise struct {
	perm [256]uint8
}

// NewPerlinNoise creates a Perlin field seeded with seed.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	for i, v := range rand.New(rand.NewSource(seed)).Perm(len(p.perm)) {
		p.perm[i] = uint8(v)
	}
	return p
}

// Cube edge midpoints. The last four repeat so a 4-bit hash indexes the table.
var gradients = [16][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
	{1, 1, 0}, {0, -1, 1}, {-1, 1, 0}, {0, -1, -1},
}

// Eval3 samples the field. The corona walks z with the animation phase,
// which goes negative, so lattice coordinates wrap through the hash.
func (p *PerlinNoise) Eval3(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int(fx), int(fy), int(fz)
	x, y, z = x-fx, y-fy, z-fz
	u, v, w := fade(x), fade(y), fade(z)

	var sum float64
	for corner := 0; corner < 8; corner++ {
		dx, dy, dz := corner&1, corner>>1&1, corner>>2&1
		g := gradients[p.hash(ix+dx, iy+dy, iz+dz)&15]
		ox, oy, oz := x-float64(dx), y-float64(dy), z-float64(dz)
		sum += weight(u, dx) * weight(v, dy) * weight(w, dz) * (g[0]*ox + g[1]*oy + g[2]*oz)
	}
	return sum
}

func (p *PerlinNoise) hash(i, j, k int) int {
	h := int(p.perm[i&255])
	h = int(p.perm[(h+j)&255])
	return int(p.perm[(h+k)&255])
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// weight is the trilinear blend factor of the corner on side d of one axis.
func weight(t float64, d int) float64 {
	if d == 0 {
		return 1 - t
	}
	return t
}

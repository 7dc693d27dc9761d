package renderer

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/khemritolya/kessler/config"
)

// Ray march limits.
const (
	MaxSteps     = 100
	FarBound2    = 5000 // Squared distance from the origin past which a ray escapes
	HitTolerance = 0.5  // Squared distance below which a ray has hit
)

// Vec3 is a point or direction in tracer space. +y is up, +z into the screen.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Scale returns a*s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Len2 returns the squared length.
func (a Vec3) Len2() float32 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// PrimitiveKind tags a Primitive.
type PrimitiveKind uint8

const (
	Sphere PrimitiveKind = iota
	Ground
)

func (k PrimitiveKind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Ground:
		return "ground"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", k)
	}
}

// Primitive is an implicit surface. Spheres use Center and Radius,
// the ground plane uses Height.
type Primitive struct {
	Kind   PrimitiveKind
	Center Vec3
	Radius float32
	Height float32
	Color  RGBA
}

// Distance returns the squared distance estimate from p to the surface.
// Spheres bob vertically by perturb/2.
func (pr Primitive) Distance(p Vec3, perturb float32) float32 {
	switch pr.Kind {
	case Ground:
		dy := p.Y - pr.Height
		return dy * dy
	default:
		dx := pr.Center.X - p.X
		dy := pr.Center.Y - p.Y + perturb/2
		dz := pr.Center.Z - p.Z
		return dx*dx + dy*dy + dz*dz - pr.Radius*pr.Radius
	}
}

// NewPrimitives builds primitives from validated config entries.
func NewPrimitives(cfgs []config.PrimitiveConfig) ([]Primitive, error) {
	prims := make([]Primitive, 0, len(cfgs))
	for i, c := range cfgs {
		p := Primitive{Color: RGBAFromInts(c.Color)}
		switch c.Kind {
		case "sphere":
			if len(c.Center) != 3 {
				return nil, fmt.Errorf("primitive %d: center needs 3 values", i)
			}
			p.Kind = Sphere
			p.Center = Vec3{float32(c.Center[0]), float32(c.Center[1]), float32(c.Center[2])}
			p.Radius = float32(c.Radius)
		case "ground":
			p.Kind = Ground
			p.Height = float32(c.Height)
		default:
			return nil, fmt.Errorf("primitive %d: unknown kind %q", i, c.Kind)
		}
		prims = append(prims, p)
	}
	return prims, nil
}

// March sphere-traces a ray starting one step along dir from from.
// It returns the index of the primitive hit, or -1, and the number of
// distance evaluations made.
func March(from, dir Vec3, prims []Primitive, perturb float32) (hit int, steps int) {
	p := from.Add(dir)
	for steps < MaxSteps {
		if p.Len2() >= FarBound2 {
			return -1, steps
		}
		steps++

		best, dist := -1, float32(math.MaxFloat32)
		for i := range prims {
			// Strict comparison keeps the first of equal candidates
			if d := prims[i].Distance(p, perturb); d < dist {
				best, dist = i, d
			}
		}
		if dist < HitTolerance {
			return best, steps
		}
		p = p.Add(dir.Scale(math32.Sqrt(dist)))
	}
	return -1, steps
}

// Tracer renders primitives seen from the origin looking down +z.
type Tracer struct {
	Primitives []Primitive
	Background RGBA
	Scale      int // Side of the pixel block sharing one ray
}

// NewTracer creates a tracer from validated config.
func NewTracer(cfg *config.Config) (*Tracer, error) {
	prims, err := NewPrimitives(cfg.Tracer.Primitives)
	if err != nil {
		return nil, err
	}
	return &Tracer{
		Primitives: prims,
		Background: RGBAFromInts(cfg.Tracer.Background),
		Scale:      max(cfg.Tracer.PixelScale, 1),
	}, nil
}

// Colour returns the colour seen through pixel (px, py) of a w x h image.
func (t *Tracer) Colour(px, py, w, h, phase float32) RGBA {
	half := math32.Min(w, h) / 2
	x := (px - w/2) / half
	y := -(py - h/2) / half
	mag := math32.Sqrt(x*x + y*y + 1)
	dir := Vec3{x / mag, y / mag, 1 / mag}

	hit, _ := March(Vec3{}, dir, t.Primitives, math32.Sin(phase))
	if hit < 0 {
		return t.Background
	}
	return t.Primitives[hit].Color
}

// Draw overwrites every pixel of f, casting one ray per Scale x Scale block.
func (t *Tracer) Draw(f *Frame, phase float64) {
	s := max(t.Scale, 1)
	w, h := float32(f.Width), float32(f.Height)
	ph := float32(phase)
	for cy := 0; cy*s < f.Height; cy++ {
		for cx := 0; cx*s < f.Width; cx++ {
			f.PutBlock(cx, cy, s, t.Colour(float32(cx*s), float32(cy*s), w, h, ph))
		}
	}
}

package renderer

import (
	"math"
	"time"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/systems"
)

// Corona constants.
const (
	coronaFreq   = 20      // Cells per unit of noise input
	coronaGlow   = 2680000 // Red channel numerator
	coronaCore   = 16800   // Green channel numerator inside the core
	coronaSpread = 8       // Divisor of the outer noise offset
	coronaInner  = 10      // Divisor of the core noise offset
)

// Compositor draws the analytic scene: background, stars, corona, flakes.
type Compositor struct {
	Background  RGBA
	Scale       int     // Side of the pixel block one cell covers
	TimeScaleMS float64 // Elapsed milliseconds per unit of phase
	FlakeSize   int     // Half side of a flake square in pixels

	Stars  *systems.StarField
	Corona systems.Field // nil disables the corona
}

// NewCompositor creates a compositor from validated config.
// Stars and corona field are attached by the caller.
func NewCompositor(cfg *config.Config) *Compositor {
	return &Compositor{
		Background:  RGBAFromInts(cfg.Scene.Background),
		Scale:       max(cfg.Screen.PixelScale, 1),
		TimeScaleMS: cfg.Scene.TimeScaleMS,
		FlakeSize:   cfg.Flakes.Size,
	}
}

// Phase converts elapsed time into animation phase.
func (c *Compositor) Phase(elapsed time.Duration) float64 {
	if c.TimeScaleMS <= 0 {
		return 0
	}
	return float64(elapsed.Milliseconds()) / c.TimeScaleMS
}

// Draw renders a complete frame. Each pass depends on the previous one.
func (c *Compositor) Draw(f *Frame, elapsed time.Duration, flakes *systems.FlakeSystem) {
	phase := c.Phase(elapsed)
	c.DrawBackground(f)
	c.DrawStars(f, phase)
	if c.Corona != nil {
		c.DrawCorona(f, phase)
	}
	if flakes != nil {
		c.DrawFlakes(f, elapsed, flakes)
	}
}

// DrawBackground overwrites every pixel with the background colour.
func (c *Compositor) DrawBackground(f *Frame) {
	f.Fill(c.Background)
}

// DrawStars max-merges each star's inverse-square glow into the cells
// within four radii of it.
func (c *Compositor) DrawStars(f *Frame, phase float64) {
	if c.Stars == nil {
		return
	}
	cw, ch := f.Width/c.Scale, f.Height/c.Scale

	q := c.Stars.Filter().Query()
	for q.Next() {
		pos, glint := q.Get()
		sx, sy, r := pos.X, pos.Y, glint.Radius
		off := int(math.Sin(phase+float64(sx+sy)) * 128)

		for i := max(0, sx-4*r); i < min(cw, sx+4*r); i++ {
			for j := max(0, sy-4*r); j < min(ch, sy+4*r); j++ {
				d2 := (i-sx)*(i-sx) + (j-sy)*(j-sy) + 1
				b := clampByte((256*r + off) / d2)
				f.MaxBlock(i, j, c.Scale, RGBA{R: b, G: b, B: b, A: 255})
			}
		}
	}
}

// DrawCorona paints the noise-perturbed glow in the centre square of the
// cell grid. Cells saturated in red get a second, overwriting pass that
// carves the yellow core.
func (c *Compositor) DrawCorona(f *Frame, phase float64) {
	m := min(f.Width, f.Height) / c.Scale
	if m < 4 {
		return
	}
	center := m / 2

	for i := m / 4; i < 3*m/4; i++ {
		wobble := math.Sin(float64(i) / float64(m))
		x := float64(i) / coronaFreq
		for j := m / 4; j < 3*m/4; j++ {
			y := float64(j) / coronaFreq

			fv := c.Corona.Eval3(x+phase, y+wobble, phase)*128 + 128
			d2 := (i-center)*(i-center) + (j-center)*(j-center)
			da := max(d2-int(fv*fv/coronaSpread), 1)
			r := clampByte(coronaGlow / da)

			if r == 255 {
				fv = c.Corona.Eval3(x-phase, y-wobble, phase-100)*128 + 128
				da = max(d2-int(fv*fv/coronaInner), 1)
				g := 255 - clampByte(coronaCore/da)
				f.PutBlock(i, j, c.Scale, RGBA{R: 255, G: g, A: 255})
				continue
			}
			f.MaxBlock(i, j, c.Scale, RGBA{R: r, G: uint8(2 * int(r) / 4), A: 255})
		}
	}
}

// DrawFlakes accumulates every live flake as a small square fading with age.
func (c *Compositor) DrawFlakes(f *Frame, elapsed time.Duration, flakes *systems.FlakeSystem) {
	size := max(c.FlakeSize, 0)
	for i := range flakes.Flakes {
		fl := &flakes.Flakes[i]
		u := flakes.Progress(fl, elapsed)
		p := fl.At(u)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}

		fade := 1 - u
		col := RGBA{
			R: uint8(float64(fl.Color.R) * fade),
			G: uint8(float64(fl.Color.G) * fade),
			B: uint8(float64(fl.Color.B) * fade),
			A: fl.Color.A,
		}

		// Skip flakes wholly off-frame before converting to int
		px, py := p.X, p.Y
		if px < float64(-size-1) || py < float64(-size-1) ||
			px > float64(f.Width+size) || py > float64(f.Height+size) {
			continue
		}
		cx, cy := int(math.Floor(px)), int(math.Floor(py))
		for y := max(cy-size, 0); y <= min(cy+size, f.Height-1); y++ {
			for x := max(cx-size, 0); x <= min(cx+size, f.Width-1); x++ {
				f.Add(x, y, col)
			}
		}
	}
}

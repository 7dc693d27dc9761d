// Package components defines the plain data types shared by the scene:
// ECS components for the star field and the 8-bit colour type.
package components

// Position is an entity's location in analytic cell coordinates
// (screen pixels divided by the pixel scale).
type Position struct {
	X, Y int
}

// Glint is a stationary star that glows with an inverse-square falloff.
// A zero radius star covers no cells and is never drawn.
type Glint struct {
	Radius int
}

// RGBA is a straight (non-premultiplied) colour with 8-bit channels.
type RGBA struct {
	R, G, B, A uint8
}

// RGBAFromInts converts a validated r, g, b, a slice into an RGBA.
// Channels outside [0, 255] are clamped.
func RGBAFromInts(c []int) RGBA {
	var ch [4]uint8
	for i := 0; i < 4 && i < len(c); i++ {
		ch[i] = uint8(max(0, min(255, c[i])))
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

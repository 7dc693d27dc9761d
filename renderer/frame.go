// Package renderer turns scene state into BGRA pixels: the analytic
// compositor and the sphere-tracing ray marcher both write into a Frame.
package renderer

import (
	"errors"
	"fmt"

	"github.com/khemritolya/kessler/components"
)

// ErrFrameSize is returned (wrapped) when a buffer does not match its dimensions.
var ErrFrameSize = errors.New("frame size mismatch")

// RGBA is the colour written into frames.
type RGBA = components.RGBA

// RGBAFromInts converts an r, g, b, a slice into a clamped colour.
func RGBAFromInts(c []int) RGBA {
	return components.RGBAFromInts(c)
}

// Frame is a row-major BGRA pixel buffer, 4 bytes per pixel.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// NewFrame allocates a frame of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]byte, 4*max(width, 0)*max(height, 0)),
		Width:  width,
		Height: height,
	}
}

// Wrap views buf as a width x height frame without copying.
func Wrap(buf []byte, width, height int) (Frame, error) {
	if width <= 0 || height <= 0 {
		return Frame{}, fmt.Errorf("%w: %dx%d", ErrFrameSize, width, height)
	}
	if len(buf) != 4*width*height {
		return Frame{}, fmt.Errorf("%w: %d bytes for %dx%d", ErrFrameSize, len(buf), width, height)
	}
	return Frame{Pix: buf, Width: width, Height: height}, nil
}

// Fill overwrites every pixel with c.
func (f *Frame) Fill(c RGBA) {
	if len(f.Pix) < 4 {
		return
	}
	f.Pix[0], f.Pix[1], f.Pix[2], f.Pix[3] = c.B, c.G, c.R, c.A
	// Doubling copy
	for n := 4; n < len(f.Pix); n *= 2 {
		copy(f.Pix[n:], f.Pix[:n])
	}
}

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) RGBA {
	i := f.offset(x, y)
	if i < 0 {
		return RGBA{}
	}
	return RGBA{B: f.Pix[i], G: f.Pix[i+1], R: f.Pix[i+2], A: f.Pix[i+3]}
}

// Set overwrites the pixel at (x, y). Out of bounds writes are dropped.
func (f *Frame) Set(x, y int, c RGBA) {
	i := f.offset(x, y)
	if i < 0 {
		return
	}
	f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = c.B, c.G, c.R, c.A
}

// SetIf raises each channel at (x, y) to c where c is strictly greater.
func (f *Frame) SetIf(x, y int, c RGBA) {
	i := f.offset(x, y)
	if i < 0 {
		return
	}
	p := f.Pix[i : i+4 : i+4]
	p[0] = max(p[0], c.B)
	p[1] = max(p[1], c.G)
	p[2] = max(p[2], c.R)
	p[3] = max(p[3], c.A)
}

// Add accumulates c into the pixel at (x, y), saturating at 255.
func (f *Frame) Add(x, y int, c RGBA) {
	i := f.offset(x, y)
	if i < 0 {
		return
	}
	p := f.Pix[i : i+4 : i+4]
	p[0] = addSat(p[0], c.B)
	p[1] = addSat(p[1], c.G)
	p[2] = addSat(p[2], c.R)
	p[3] = addSat(p[3], c.A)
}

// PutBlock overwrites the scale x scale block covering cell (cx, cy).
func (f *Frame) PutBlock(cx, cy, scale int, c RGBA) {
	x0, y0 := cx*scale, cy*scale
	for y := y0; y < y0+scale; y++ {
		for x := x0; x < x0+scale; x++ {
			f.Set(x, y, c)
		}
	}
}

// MaxBlock max-merges c into the scale x scale block covering cell (cx, cy).
func (f *Frame) MaxBlock(cx, cy, scale int, c RGBA) {
	x0, y0 := cx*scale, cy*scale
	for y := y0; y < y0+scale; y++ {
		for x := x0; x < x0+scale; x++ {
			f.SetIf(x, y, c)
		}
	}
}

func (f *Frame) offset(x, y int) int {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return -1
	}
	return 4 * (y*f.Width + x)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// clampByte clamps an integer channel value to [0, 255].
func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// ToRGBA swizzles the frame into dst, growing it if needed, and returns it.
func (f *Frame) ToRGBA(dst []color.RGBA) []color.RGBA {
	n := f.Width * f.Height
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	for i := range dst {
		p := f.Pix[4*i : 4*i+4 : 4*i+4]
		dst[i] = color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}
	return dst
}

// Image copies the frame into a new RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		s := f.Pix[4*i : 4*i+4 : 4*i+4]
		d := img.Pix[4*i : 4*i+4 : 4*i+4]
		d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
	}
	return img
}

// WriteBMP encodes the frame as a BMP image.
func WriteBMP(w io.Writer, f *Frame) error {
	if err := bmp.Encode(w, f.Image()); err != nil {
		return fmt.Errorf("encoding bmp: %w", err)
	}
	return nil
}

// SaveBMP writes the frame to a BMP file at path.
func SaveBMP(path string, f *Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteBMP(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

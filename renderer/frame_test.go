package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapChecksSize(t *testing.T) {
	tests := []struct {
		name   string
		buf    int
		w, h   int
		wantOK bool
	}{
		{"exact", 4 * 6 * 3, 6, 3, true},
		{"short", 4*6*3 - 1, 6, 3, false},
		{"long", 4*6*3 + 4, 6, 3, false},
		{"zero width", 0, 0, 3, false},
		{"negative height", 0, 2, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Wrap(make([]byte, tc.buf), tc.w, tc.h)
			if tc.wantOK {
				require.NoError(t, err)
				assert.Equal(t, tc.w, f.Width)
				assert.Equal(t, tc.h, f.Height)
				return
			}
			assert.True(t, errors.Is(err, ErrFrameSize))
		})
	}
}

func TestFrameByteOrder(t *testing.T) {
	f := NewFrame(2, 2)
	f.Set(1, 1, RGBA{R: 1, G: 2, B: 3, A: 4})
	assert.Equal(t, []byte{3, 2, 1, 4}, f.Pix[12:16])
	assert.Equal(t, RGBA{R: 1, G: 2, B: 3, A: 4}, f.At(1, 1))
}

func TestFrameFill(t *testing.T) {
	// Odd sizes exercise the tail of the doubling copy
	for _, size := range [][2]int{{1, 1}, {3, 5}, {7, 7}, {64, 33}} {
		f := NewFrame(size[0], size[1])
		c := RGBA{R: 40, G: 20, B: 0, A: 255}
		f.Fill(c)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				require.Equal(t, c, f.At(x, y), "pixel %d,%d of %v", x, y, size)
			}
		}
	}
}

func TestFrameSetIfMaxMerges(t *testing.T) {
	f := NewFrame(1, 1)
	f.Set(0, 0, RGBA{R: 100, G: 10, B: 200, A: 50})
	f.SetIf(0, 0, RGBA{R: 50, G: 60, B: 200, A: 255})
	assert.Equal(t, RGBA{R: 100, G: 60, B: 200, A: 255}, f.At(0, 0))
}

func TestFrameAddSaturates(t *testing.T) {
	f := NewFrame(1, 1)
	c := RGBA{R: 200, G: 100, B: 1, A: 255}
	for i := 0; i < 4; i++ {
		f.Add(0, 0, c)
	}
	assert.Equal(t, RGBA{R: 255, G: 255, B: 4, A: 255}, f.At(0, 0))
}

func TestFrameOutOfBoundsDropped(t *testing.T) {
	f := NewFrame(2, 2)
	c := RGBA{R: 9, G: 9, B: 9, A: 9}
	assert.NotPanics(t, func() {
		f.Set(-1, 0, c)
		f.SetIf(2, 0, c)
		f.Add(0, 2, c)
		f.PutBlock(1, 1, 2, c)
		f.MaxBlock(-1, -1, 2, c)
	})
	assert.Equal(t, RGBA{}, f.At(0, 0))
	assert.Equal(t, RGBA{}, f.At(5, 5))
}

func TestFrameBlocks(t *testing.T) {
	f := NewFrame(4, 4)
	f.PutBlock(1, 0, 2, RGBA{R: 10, A: 255})
	f.MaxBlock(1, 0, 2, RGBA{G: 5})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := RGBA{}
			if x >= 2 && y < 2 {
				want = RGBA{R: 10, G: 5, A: 255}
			}
			assert.Equal(t, want, f.At(x, y), "pixel %d,%d", x, y)
		}
	}
}

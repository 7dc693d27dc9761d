package scene

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/renderer"
)

const testW, testH = 160, 120

func smallConfig(style string) *config.Config {
	cfg := config.Defaults()
	cfg.Screen.Width = testW
	cfg.Screen.Height = testH
	cfg.Scene.Style = style
	return cfg
}

func renderSequence(t *testing.T, seed int64, offsets []time.Duration) [][]byte {
	t.Helper()
	s, err := New(smallConfig(config.StyleAnalytic), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var frames [][]byte
	for _, off := range offsets {
		s.Advance(base.Add(off))
		buf := make([]byte, 4*testW*testH)
		require.NoError(t, s.Render(buf, testW, testH))
		frames = append(frames, buf)
	}
	return frames
}

func TestAnalyticDeterministicBySeed(t *testing.T) {
	offsets := []time.Duration{0, 20 * time.Millisecond, 40 * time.Millisecond, 1500 * time.Millisecond, 7 * time.Second}

	a := renderSequence(t, 11, offsets)
	b := renderSequence(t, 11, offsets)
	for i := range a {
		assert.True(t, bytes.Equal(a[i], b[i]), "frame %d differs", i)
	}

	c := renderSequence(t, 12, offsets)
	differs := false
	for i := range a {
		if !bytes.Equal(a[i], c[i]) {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds rendered identical sequences")
}

func TestAnalyticPopulation(t *testing.T) {
	cfg := smallConfig(config.StyleAnalytic)
	s, err := NewAnalytic(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	base := time.Now()
	s.Start(base)
	for i := 0; i < 300; i++ {
		s.Advance(base.Add(time.Duration(i) * 50 * time.Millisecond))
		st := s.Stats()
		require.LessOrEqual(t, st.Flakes, cfg.Flakes.Cap)
		require.Equal(t, cfg.Derived.FlakeTarget, st.Flakes)
	}
}

func TestAnalyticNonMonotonicTime(t *testing.T) {
	s, err := NewAnalytic(smallConfig(config.StyleAnalytic), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	base := time.Now()
	s.Advance(base)
	s.Advance(base.Add(-time.Hour))
	assert.Equal(t, time.Duration(0), s.Stats().Elapsed)

	buf := make([]byte, 4*testW*testH)
	assert.NoError(t, s.Render(buf, testW, testH))
}

func TestRenderRejectsBadBuffer(t *testing.T) {
	for _, style := range []string{config.StyleAnalytic, config.StyleTraced} {
		t.Run(style, func(t *testing.T) {
			s, err := New(smallConfig(style), rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			s.Advance(time.Now())

			err = s.Render(make([]byte, 10), testW, testH)
			assert.True(t, errors.Is(err, renderer.ErrFrameSize))

			err = s.Render(nil, 0, 0)
			assert.True(t, errors.Is(err, renderer.ErrFrameSize))
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"unknown style", func(c *config.Config) { c.Scene.Style = "voxel" }},
		{"no trajectories", func(c *config.Config) { c.Flakes.Trajectories = nil }},
		{"zero cap", func(c *config.Config) { c.Flakes.Cap = 0 }},
		{"zero period", func(c *config.Config) { c.Flakes.Trajectories[0].PeriodSec = 0 }},
		{"no primitives", func(c *config.Config) {
			c.Scene.Style = config.StyleTraced
			c.Tracer.Primitives = nil
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig(config.StyleAnalytic)
			tc.mutate(cfg)
			_, err := New(cfg, rand.New(rand.NewSource(1)))
			assert.True(t, errors.Is(err, config.ErrInvalid), "got %v", err)
		})
	}

	_, err := New(nil, rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, config.ErrInvalid))

	_, err = New(smallConfig(config.StyleAnalytic), nil)
	assert.Error(t, err)
}

func TestAnalyticResize(t *testing.T) {
	s, err := NewAnalytic(smallConfig(config.StyleAnalytic), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, testW*testH/2048, s.Stats().Stars)

	s.Resize(2*testW, 2*testH)
	assert.Equal(t, 4*testW*testH/2048, s.Stats().Stars)

	s.Advance(time.Now())
	buf := make([]byte, 4*2*testW*2*testH)
	assert.NoError(t, s.Render(buf, 2*testW, 2*testH))

	// Non-positive sizes are ignored
	s.Resize(0, 10)
	assert.Equal(t, 4*testW*testH/2048, s.Stats().Stars)
}

func TestTracedRender(t *testing.T) {
	cfg := smallConfig(config.StyleTraced)
	s, err := New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, ok := s.(Resizer)
	assert.False(t, ok)

	s.Advance(time.Now())
	const w, h = 100, 100
	buf := make([]byte, 4*w*h)
	require.NoError(t, s.Render(buf, w, h))

	f, err := renderer.Wrap(buf, w, h)
	require.NoError(t, err)
	assert.Equal(t, renderer.RGBA{R: 200, G: 40, B: 40, A: 255}, f.At(50, 50))
	assert.Equal(t, renderer.RGBA{R: 173, G: 216, B: 230, A: 255}, f.At(50, 0))
}

func TestTracedRenderCastsOneRayPerPixel(t *testing.T) {
	cfg := config.Defaults()
	cfg.Scene.Style = config.StyleTraced
	s, err := New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Advance(base)
	s.Advance(base.Add(1500 * time.Millisecond))

	const w, h = 200, 150
	buf := make([]byte, 4*w*h)
	require.NoError(t, s.Render(buf, w, h))
	f, err := renderer.Wrap(buf, w, h)
	require.NoError(t, err)

	tr, err := renderer.NewTracer(cfg)
	require.NoError(t, err)
	phase := float32(1500.0 / cfg.Scene.TimeScaleMS)

	differ := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if f.At(x, y) != tr.Colour(float32(x), float32(y), w, h, phase) {
				differ++
			}
		}
	}
	assert.Zero(t, differ, "pixels differing from their own ray")
}

func TestClock(t *testing.T) {
	var c Clock
	base := time.Now()
	assert.Equal(t, time.Duration(0), c.Elapsed(base))
	assert.Equal(t, time.Second, c.Elapsed(base.Add(time.Second)))
	assert.Equal(t, time.Duration(0), c.Elapsed(base.Add(-time.Second)))

	c.Start(base.Add(-time.Minute))
	assert.Equal(t, time.Minute, c.Elapsed(base))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, StyleAnalytic, cfg.Scene.Style)
	assert.Equal(t, 2, cfg.Screen.PixelScale)
	assert.Equal(t, 1, cfg.Tracer.PixelScale)
	assert.Equal(t, []int{173, 216, 230, 255}, cfg.Tracer.Background)
	assert.Equal(t, min(cfg.Flakes.Initial+cfg.Flakes.Headroom, cfg.Flakes.Cap), cfg.Derived.FlakeTarget)
	assert.NotEmpty(t, cfg.Flakes.Trajectories)
	assert.NotEmpty(t, cfg.Tracer.Primitives)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kessler.yaml")
	overlay := "scene:\n  style: traced\nflakes:\n  cap: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StyleTraced, cfg.Scene.Style)
	assert.Equal(t, 10, cfg.Flakes.Cap)
	assert.Equal(t, 10, cfg.Derived.FlakeTarget)
	// Untouched fields keep their defaults
	assert.Equal(t, 1280, cfg.Screen.Width)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Screen.Width = 0 }},
		{"zero pixel scale", func(c *Config) { c.Screen.PixelScale = 0 }},
		{"unknown style", func(c *Config) { c.Scene.Style = "voxel" }},
		{"short background", func(c *Config) { c.Scene.Background = []int{1, 2, 3} }},
		{"channel overflow", func(c *Config) { c.Scene.Background = []int{1, 2, 3, 256} }},
		{"unknown field", func(c *Config) { c.Corona.Field = "worley" }},
		{"zero cap", func(c *Config) { c.Flakes.Cap = 0 }},
		{"zero lifetime", func(c *Config) { c.Flakes.LifetimeSec = 0 }},
		{"no anchors", func(c *Config) { c.Flakes.Anchors.Count = 0 }},
		{"bad dims", func(c *Config) { c.Flakes.Anchors.Dims = [][]int{{1, 2}} }},
		{"no trajectories", func(c *Config) { c.Flakes.Trajectories = nil }},
		{"zero period", func(c *Config) { c.Flakes.Trajectories[0].PeriodSec = 0 }},
		{"unknown curve", func(c *Config) { c.Flakes.Trajectories[0].Kind = "zigzag" }},
		{"empty radius range", func(c *Config) { c.Stars.MaxRadius = c.Stars.MinRadius }},
		{"no primitives", func(c *Config) {
			c.Scene.Style = StyleTraced
			c.Tracer.Primitives = nil
		}},
		{"sphere without center", func(c *Config) {
			c.Scene.Style = StyleTraced
			c.Tracer.Primitives[0].Center = nil
		}},
		{"zero tracer pixel scale", func(c *Config) {
			c.Scene.Style = StyleTraced
			c.Tracer.PixelScale = 0
		}},
		{"unknown primitive", func(c *Config) {
			c.Scene.Style = StyleTraced
			c.Tracer.Primitives[0].Kind = "torus"
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateTracedIgnoresFlakes(t *testing.T) {
	cfg := Defaults()
	cfg.Scene.Style = StyleTraced
	cfg.Flakes.Trajectories = nil
	assert.NoError(t, cfg.Validate())
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Flakes.Cap = 33

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 33, loaded.Flakes.Cap)
	require.Len(t, loaded.Tracer.Primitives, len(cfg.Tracer.Primitives))
	assert.Equal(t, cfg.Tracer.Primitives[0].Center, loaded.Tracer.Primitives[0].Center)
	assert.Equal(t, cfg.Tracer.Background, loaded.Tracer.Background)
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	assert.Panics(t, func() { Cfg() })
	require.NoError(t, Init(""))
	assert.NotNil(t, Cfg())
}

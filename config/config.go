// Package config provides configuration loading and access for the renderer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) when a configuration cannot produce a scene.
var ErrInvalid = errors.New("invalid configuration")

// Scene styles.
const (
	StyleAnalytic = "analytic"
	StyleTraced   = "traced"
)

// Config holds all renderer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Scene     SceneConfig     `yaml:"scene"`
	Stars     StarsConfig     `yaml:"stars"`
	Corona    CoronaConfig    `yaml:"corona"`
	Flakes    FlakesConfig    `yaml:"flakes"`
	Tracer    TracerConfig    `yaml:"tracer"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	PixelScale int    `yaml:"pixel_scale"` // Side of the square block one analytic cell covers
	Title      string `yaml:"title"`
	StatusBar  bool   `yaml:"status_bar"`
}

// SceneConfig selects the renderer style and its clock.
type SceneConfig struct {
	Style       string  `yaml:"style"`         // analytic | traced
	TimeScaleMS float64 `yaml:"time_scale_ms"` // Elapsed milliseconds per unit of animation phase
	Background  []int   `yaml:"background"`    // r, g, b, a
}

// StarsConfig holds star field generation parameters.
type StarsConfig struct {
	DensityDivisor int `yaml:"density_divisor"` // One star per this many screen pixels
	MinRadius      int `yaml:"min_radius"`
	MaxRadius      int `yaml:"max_radius"` // Exclusive
}

// CoronaConfig holds the noise corona parameters.
type CoronaConfig struct {
	Enabled bool   `yaml:"enabled"`
	Field   string `yaml:"field"` // simplex | perlin
}

// FlakesConfig holds falling-particle parameters.
type FlakesConfig struct {
	Initial     int     `yaml:"initial"`  // Population floor
	Headroom    int     `yaml:"headroom"` // Added to the floor, bounded by Cap
	Cap         int     `yaml:"cap"`      // Hard cap on live flakes
	LifetimeSec float64 `yaml:"lifetime_sec"`
	Size        int     `yaml:"size"`      // Half side of the drawn square in pixels
	ColorMin    int     `yaml:"color_min"` // Lowest value drawn per colour channel
	JitterNear  float64 `yaml:"jitter_near"`
	JitterMid   float64 `yaml:"jitter_mid"`
	JitterFar   float64 `yaml:"jitter_far"`

	Anchors      AnchorsConfig      `yaml:"anchors"`
	Trajectories []TrajectoryConfig `yaml:"trajectories"`
}

// AnchorsConfig describes the moving spawn roots.
// Center and amplitude are fractions of the screen size.
type AnchorsConfig struct {
	Count   int     `yaml:"count"`
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	AmpX    float64 `yaml:"amp_x"`
	AmpY    float64 `yaml:"amp_y"`
	Speed   float64 `yaml:"speed"` // Radians per second
	Ratio   float64 `yaml:"ratio"` // Vertical frequency multiplier
	Dims    [][]int `yaml:"dims"`  // Per-anchor colour divisors, cycled by index
}

// TrajectoryConfig describes one curve generator.
type TrajectoryConfig struct {
	Kind      string  `yaml:"kind"` // fall | arc | swirl
	Amplitude float64 `yaml:"amplitude"`
	Drop      float64 `yaml:"drop"`
	PeriodSec float64 `yaml:"period_sec"`
	Phase     float64 `yaml:"phase"`
}

// TracerConfig holds the implicit-surface scene.
type TracerConfig struct {
	PixelScale int               `yaml:"pixel_scale"` // Side of the pixel block sharing one ray
	Background []int             `yaml:"background"`
	Primitives []PrimitiveConfig `yaml:"primitives"`
}

// PrimitiveConfig describes one implicit primitive.
type PrimitiveConfig struct {
	Kind   string    `yaml:"kind"` // sphere | ground
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	Height float64   `yaml:"height"`
	Color  []int     `yaml:"color"`
}

// TelemetryConfig holds frame timing parameters.
type TelemetryConfig struct {
	PerfWindow     int     `yaml:"perf_window"`
	LogIntervalSec float64 `yaml:"log_interval_sec"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FlakeTarget int // min(Initial+Headroom, Cap)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first setting that cannot produce a scene.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return invalid("screen size %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.PixelScale < 1 {
		return invalid("pixel_scale %d", c.Screen.PixelScale)
	}
	if c.Scene.TimeScaleMS <= 0 {
		return invalid("time_scale_ms %v", c.Scene.TimeScaleMS)
	}
	if err := checkColor("scene.background", c.Scene.Background); err != nil {
		return err
	}

	switch c.Scene.Style {
	case StyleAnalytic:
		return c.validateAnalytic()
	case StyleTraced:
		return c.validateTraced()
	default:
		return invalid("unknown scene style %q", c.Scene.Style)
	}
}

func (c *Config) validateAnalytic() error {
	switch c.Corona.Field {
	case "simplex", "perlin":
	default:
		return invalid("corona.field %q", c.Corona.Field)
	}
	if c.Stars.DensityDivisor < 1 {
		return invalid("stars.density_divisor %d", c.Stars.DensityDivisor)
	}
	if c.Stars.MinRadius < 0 || c.Stars.MaxRadius <= c.Stars.MinRadius {
		return invalid("stars radius range [%d, %d)", c.Stars.MinRadius, c.Stars.MaxRadius)
	}

	f := c.Flakes
	if f.Cap < 1 {
		return invalid("flakes.cap %d", f.Cap)
	}
	if f.Initial < 0 || f.Headroom < 0 {
		return invalid("flakes.initial %d / headroom %d", f.Initial, f.Headroom)
	}
	if f.LifetimeSec <= 0 {
		return invalid("flakes.lifetime_sec %v", f.LifetimeSec)
	}
	if f.Size < 0 {
		return invalid("flakes.size %d", f.Size)
	}
	if f.ColorMin < 0 || f.ColorMin > 255 {
		return invalid("flakes.color_min %d", f.ColorMin)
	}
	if f.Anchors.Count < 1 {
		return invalid("flakes.anchors.count %d", f.Anchors.Count)
	}
	for i, d := range f.Anchors.Dims {
		if len(d) != 3 {
			return invalid("flakes.anchors.dims[%d]: want 3 values, got %d", i, len(d))
		}
	}
	if len(f.Trajectories) == 0 {
		return invalid("flakes.trajectories is empty")
	}
	for i, t := range f.Trajectories {
		switch t.Kind {
		case "fall", "arc", "swirl":
		default:
			return invalid("flakes.trajectories[%d]: unknown kind %q", i, t.Kind)
		}
		if t.PeriodSec <= 0 {
			return invalid("flakes.trajectories[%d]: period_sec %v", i, t.PeriodSec)
		}
	}
	return nil
}

func (c *Config) validateTraced() error {
	if err := checkColor("tracer.background", c.Tracer.Background); err != nil {
		return err
	}
	if c.Tracer.PixelScale < 1 {
		return invalid("tracer.pixel_scale %d", c.Tracer.PixelScale)
	}
	if len(c.Tracer.Primitives) == 0 {
		return invalid("tracer.primitives is empty")
	}
	for i, p := range c.Tracer.Primitives {
		switch p.Kind {
		case "sphere":
			if len(p.Center) != 3 {
				return invalid("tracer.primitives[%d]: center needs 3 values", i)
			}
		case "ground":
		default:
			return invalid("tracer.primitives[%d]: unknown kind %q", i, p.Kind)
		}
		if err := checkColor(fmt.Sprintf("tracer.primitives[%d].color", i), p.Color); err != nil {
			return err
		}
	}
	return nil
}

func checkColor(name string, c []int) error {
	if len(c) != 4 {
		return invalid("%s: want 4 channels, got %d", name, len(c))
	}
	for _, v := range c {
		if v < 0 || v > 255 {
			return invalid("%s: channel %d out of range", name, v)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FlakeTarget = min(c.Flakes.Initial+c.Flakes.Headroom, c.Flakes.Cap)
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/renderer"
	"github.com/khemritolya/kessler/scene"
	"github.com/khemritolya/kessler/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed      int64
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	DumpDir   string // Directory for BMP frame dumps (empty = disabled)
	DumpEvery int    // Dump every Nth frame
	Headless  bool
}

// Game drives a scene: advance, render, then blit to the window.
type Game struct {
	cfg   *config.Config
	scene scene.Scene
	seed  int64

	// BGRA backbuffer and the RGBA copy uploaded to the texture
	frame  *renderer.Frame
	pixels []color.RGBA

	texture      rl.Texture2D
	textureReady bool

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	dumpDir   string
	dumpEvery int

	headless  bool
	frames    int64
	rendered  bool  // Whether the backbuffer holds this frame's image
	renderErr error // Last render failure, shown in the status bar
}

// NewGameWithOptions creates a game for the given configuration.
// In graphical mode the raylib window must already be open.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	sc, err := scene.New(cfg, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if opts.DumpDir != "" {
		if err := os.MkdirAll(opts.DumpDir, 0755); err != nil {
			om.Close()
			return nil, fmt.Errorf("creating dump directory: %w", err)
		}
	}

	g := &Game{
		cfg:           cfg,
		scene:         sc,
		seed:          opts.Seed,
		frame:         renderer.NewFrame(cfg.Screen.Width, cfg.Screen.Height),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:     telemetry.NewCollector(time.Duration(cfg.Telemetry.LogIntervalSec * float64(time.Second))),
		outputManager: om,
		logStats:      opts.LogStats,
		dumpDir:       opts.DumpDir,
		dumpEvery:     max(opts.DumpEvery, 1),
		headless:      opts.Headless,
	}

	if !g.headless {
		g.loadTexture()
	}

	slog.Info("scene created",
		"style", cfg.Scene.Style,
		"seed", opts.Seed,
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
	)

	return g, nil
}

// Update advances the scene to the current time and renders the backbuffer.
func (g *Game) Update() {
	g.handleResize()
	g.step(time.Now())
}

// step runs the advance and render phases of one frame.
func (g *Game) step(now time.Time) {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseAdvance)
	g.scene.Advance(now)

	g.perfCollector.StartPhase(telemetry.PhaseRender)
	err := g.scene.Render(g.frame.Pix, g.frame.Width, g.frame.Height)
	g.rendered = err == nil
	if err != nil {
		// Skip the blit, keep running
		slog.Error("render failed", "error", err, "frame", g.frames)
		g.renderErr = err
	}
}

// Draw blits the backbuffer and the status bar to the window.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseBlit)
	if g.rendered {
		g.pixels = g.frame.ToRGBA(g.pixels)
		rl.UpdateTexture(g.texture, g.pixels)
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(g.texture, 0, 0, rl.White)
	if g.cfg.Screen.StatusBar {
		g.drawStatusBar()
	}
	rl.EndDrawing()

	g.endFrame()
	g.perfCollector.RecordPresent()
}

// UpdateHeadless runs one frame without a window, dumping it if due.
func (g *Game) UpdateHeadless() {
	g.step(time.Now())

	g.perfCollector.StartPhase(telemetry.PhaseBlit)
	if g.rendered && g.dumpDir != "" && g.frames%int64(g.dumpEvery) == 0 {
		g.dumpFrame()
	}

	g.endFrame()
}

func (g *Game) endFrame() {
	g.perfCollector.EndFrame()
	g.frames++
	g.flushTelemetry()
}

// handleResize reallocates the backbuffer and texture after a window resize.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w <= 0 || h <= 0 || (w == g.frame.Width && h == g.frame.Height) {
		return
	}

	g.frame = renderer.NewFrame(w, h)
	g.pixels = nil
	g.unloadTexture()
	g.loadTexture()

	if r, ok := g.scene.(scene.Resizer); ok {
		r.Resize(w, h)
	}
	slog.Info("resized", "width", w, "height", h)
}

func (g *Game) loadTexture() {
	img := rl.GenImageColor(g.frame.Width, g.frame.Height, rl.Black)
	g.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	g.textureReady = true
}

func (g *Game) unloadTexture() {
	if g.textureReady {
		rl.UnloadTexture(g.texture)
		g.textureReady = false
	}
}

// Unload releases the texture and closes output files.
func (g *Game) Unload() {
	g.unloadTexture()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frames returns the number of frames run.
func (g *Game) Frames() int64 {
	return g.frames
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/game"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args, runs the renderer and returns the process exit status.
// Deferred cleanup, including closing the window, runs before it returns.
func run(args []string) int {
	// CLI flags
	flags := flag.NewFlagSet("kessler", flag.ContinueOnError)
	configPath := flags.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flags.Bool("headless", false, "Run without a window")
	style := flags.String("style", "", "Scene style: analytic or traced (empty = use config)")
	logStats := flags.Bool("log-stats", false, "Output window and perf stats via slog")
	outputDir := flags.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	dumpDir := flags.String("dump-dir", "", "Directory for BMP frame dumps (headless only)")
	dumpEvery := flags.Int("dump-every", 1, "Dump every Nth frame")
	seed := flags.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flags.Int64("frames", 0, "Stop after N frames (0 = unlimited)")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	if *style != "" {
		cfg.Scene.Style = *style
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid style", "style", *style, "error", err)
			return 1
		}
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		DumpDir:   *dumpDir,
		DumpEvery: *dumpEvery,
		Headless:  *headless,
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, err := game.NewGameWithOptions(cfg, opts)
		if err != nil {
			slog.Error("failed to create scene", "error", err)
			return 1
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"style", cfg.Scene.Style,
			"max_frames", *maxFrames,
		)
		g.RunHeadless(ctx, *maxFrames)
		return 0
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to create scene", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frames() >= *maxFrames {
			break
		}
	}
	return 0
}

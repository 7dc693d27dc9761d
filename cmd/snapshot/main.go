// Snapshot tool - renders one scene frame to a BMP file for inspection.
//
// Usage: go run ./cmd/snapshot -style traced -at 2s -out frame.bmp
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/renderer"
	"github.com/khemritolya/kessler/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	style := flag.String("style", "", "Scene style override")
	outPath := flag.String("out", "frame.bmp", "Output BMP path")
	width := flag.Int("width", 0, "Render width (0 = use config)")
	height := flag.Int("height", 0, "Render height (0 = use config)")
	at := flag.Duration("at", 0, "Scene time to render")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *style != "" {
		cfg.Scene.Style = *style
	}
	if *width > 0 {
		cfg.Screen.Width = *width
	}
	if *height > 0 {
		cfg.Screen.Height = *height
	}

	sc, err := scene.New(cfg, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create scene: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	sc.Advance(start)
	sc.Advance(start.Add(*at))

	frame := renderer.NewFrame(cfg.Screen.Width, cfg.Screen.Height)
	if err := sc.Render(frame.Pix, frame.Width, frame.Height); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render: %v\n", err)
		os.Exit(1)
	}

	if err := renderer.SaveBMP(*outPath, frame); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %dx%d %s frame at %v to %s\n", frame.Width, frame.Height, cfg.Scene.Style, *at, *outPath)
}

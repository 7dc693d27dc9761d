// Corona preview tool - interactive view of the noise corona with sliders.
//
// Usage: go run ./cmd/coronapreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/renderer"
	"github.com/khemritolya/kessler/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// CoronaParams holds the tunable corona settings.
type CoronaParams struct {
	TimeScaleMS float32
	PixelScale  int
	Perlin      bool
	Seed        int64
}

func defaultParams(cfg *config.Config) CoronaParams {
	return CoronaParams{
		TimeScaleMS: float32(cfg.Scene.TimeScaleMS),
		PixelScale:  cfg.Screen.PixelScale,
		Perlin:      cfg.Corona.Field == "perlin",
		Seed:        1,
	}
}

func (p CoronaParams) fieldName() string {
	if p.Perlin {
		return "perlin"
	}
	return "simplex"
}

func main() {
	cfg := config.Defaults()

	rl.InitWindow(windowWidth, windowHeight, "Corona Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams(cfg)

	frame := renderer.NewFrame(previewSize, previewSize)
	comp := renderer.NewCompositor(cfg)
	img := rl.GenImageColor(previewSize, previewSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	// Elapsed preview time in milliseconds
	var elapsedMS float32
	animating := true
	needsRegen := true
	pixels := frame.ToRGBA(nil)

	for !rl.WindowShouldClose() {
		if animating {
			elapsedMS += rl.GetFrameTime() * 1000
			needsRegen = true
		}

		if needsRegen {
			field, err := systems.NewField(params.fieldName(), params.Seed)
			if err != nil {
				slog.Error("failed to create field", "error", err)
				os.Exit(1)
			}
			comp.Corona = field
			comp.Scale = params.PixelScale
			phase := float64(elapsedMS / params.TimeScaleMS)

			comp.DrawBackground(frame)
			comp.DrawCorona(frame, phase)
			pixels = frame.ToRGBA(pixels)
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexture(texture, 10, 10, rl.White)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Phase: %.2f", elapsedMS/params.TimeScaleMS), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1fs", elapsedMS/1000), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Corona Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Time scale (ms per phase unit)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTimeScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"250", "10000",
			params.TimeScaleMS, 250, 10000,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.TimeScaleMS), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newTimeScale != params.TimeScaleMS {
			params.TimeScaleMS = newTimeScale
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Pixel scale (cell size)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "4",
			float32(params.PixelScale), 1, 4,
		)
		rl.DrawText(fmt.Sprintf("%d", params.PixelScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newScale) != params.PixelScale {
			params.PixelScale = max(int(newScale), 1)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			elapsedMS = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Field: "+params.fieldName()) {
			params.Perlin = !params.Perlin
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			elapsedMS = 0
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func yamlLines(p CoronaParams) []string {
	return []string{
		"screen:",
		fmt.Sprintf("  pixel_scale: %d", p.PixelScale),
		"scene:",
		fmt.Sprintf("  time_scale_ms: %.0f", p.TimeScaleMS),
		"corona:",
		"  enabled: true",
		"  field: " + p.fieldName(),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

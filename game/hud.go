package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/khemritolya/kessler/config"
	"github.com/khemritolya/kessler/scene"
)

const statusBarHeight = 24

// drawStatusBar draws a one-line raygui status bar along the bottom edge.
func (g *Game) drawStatusBar() {
	text := fmt.Sprintf("%s  %d fps", g.cfg.Scene.Style, rl.GetFPS())
	if r, ok := g.scene.(scene.Reporter); ok {
		st := r.Stats()
		if st.Style == config.StyleAnalytic {
			text += fmt.Sprintf("  %d flakes  %d stars", st.Flakes, st.Stars)
		}
		text += fmt.Sprintf("  t=%.1fs", st.Elapsed.Seconds())
	}
	if g.renderErr != nil {
		text += "  render error: " + g.renderErr.Error()
	}

	bounds := rl.Rectangle{
		X:      0,
		Y:      float32(g.frame.Height - statusBarHeight),
		Width:  float32(g.frame.Width),
		Height: statusBarHeight,
	}
	gui.StatusBar(bounds, text)
}

package game

import (
	"context"
	"log/slog"
	"time"
)

// RunHeadless runs frames at the configured target rate until ctx is done
// or maxFrames frames have run (0 = unlimited).
func (g *Game) RunHeadless(ctx context.Context, maxFrames int64) {
	fps := max(g.cfg.Screen.TargetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		g.UpdateHeadless()

		if maxFrames > 0 && g.frames >= maxFrames {
			slog.Info("max frames reached", "frames", g.frames)
			return
		}

		select {
		case <-ctx.Done():
			slog.Info("stopping", "frames", g.frames, "reason", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

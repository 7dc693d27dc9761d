package game

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/khemritolya/kessler/renderer"
	"github.com/khemritolya/kessler/scene"
)

// flushTelemetry samples scene counters and flushes the stats window when due.
func (g *Game) flushTelemetry() {
	r, ok := g.scene.(scene.Reporter)
	if !ok {
		return
	}
	st := r.Stats()
	g.collector.Observe(st.Flakes)

	if !g.collector.ShouldFlush(st.Elapsed) {
		return
	}

	stats := g.collector.Flush(g.frames, st.Elapsed, st.Stars, st.Spawned, st.Retired)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.frames); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// dumpFrame writes the backbuffer to a numbered BMP file.
func (g *Game) dumpFrame() {
	path := filepath.Join(g.dumpDir, fmt.Sprintf("frame_%06d.bmp", g.frames))
	if err := renderer.SaveBMP(path, g.frame); err != nil {
		slog.Error("failed to dump frame", "error", err, "path", path)
	}
}

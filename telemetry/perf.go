package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of a frame.
type Phase int

// Frame phases, in execution order.
const (
	PhaseAdvance Phase = iota
	PhaseRender
	PhaseBlit
	phaseCount
)

var phaseNames = [phaseCount]string{"advance", "render", "blit"}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        [phaseCount]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int
	frames      int64

	current    PerfSample
	frameStart time.Time
	phaseStart time.Time
	lastPhase  Phase
	inPhase    bool

	// Presentation interval measured by the display loop
	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over (e.g., 50 for 1 second at 50fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.lastPhase = phase
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.lastPhase >= 0 && p.lastPhase < phaseCount {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.current.FrameDuration = now.Sub(p.frameStart)
	p.Record(p.current)
}

// Record stores a finished sample in the window.
func (p *PerfCollector) Record(s PerfSample) {
	p.samples[p.writeIndex] = s
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.frames++
}

// RecordPresent records the time between presented frames.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// Frames returns the number of frames recorded since creation.
func (p *PerfCollector) Frames() int64 {
	return p.frames
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame work timing
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P50Frame time.Duration
	P95Frame time.Duration

	// Phase breakdown (average durations and share of frame time)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Throughput the frame work alone would allow
	FramesPerSecond float64

	// Presentation timing
	PresentInterval time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PresentInterval: p.presentInterval,
			FPS:             fps,
		}
	}

	var total time.Duration
	var minFrame, maxFrame time.Duration
	var phaseSum [phaseCount]time.Duration
	durations := make([]float64, p.sampleCount)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		durations[i] = float64(s.FrameDuration)

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for ph := range phaseSum {
			phaseSum[ph] += s.Phases[ph]
		}
	}

	avg := total / time.Duration(p.sampleCount)

	sort.Float64s(durations)
	p50 := time.Duration(stat.Quantile(0.5, stat.Empirical, durations, nil))
	p95 := time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))

	phaseAvg := make(map[string]time.Duration, phaseCount)
	phasePct := make(map[string]float64, phaseCount)
	for ph, sum := range phaseSum {
		name := Phase(ph).String()
		phaseAvg[name] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[name] = float64(phaseAvg[name]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrame:        avg,
		MinFrame:        minFrame,
		MaxFrame:        maxFrame,
		P50Frame:        p50,
		P95Frame:        p95,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		FramesPerSecond: perSec,
		PresentInterval: p.presentInterval,
		FPS:             fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrame.Microseconds(),
		"p50_frame_us", s.P50Frame.Microseconds(),
		"p95_frame_us", s.P95Frame.Microseconds(),
		"max_frame_us", s.MaxFrame.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for ph := Phase(0); ph < phaseCount; ph++ {
		if pct, ok := s.PhasePct[ph.String()]; ok && pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int64("p50_frame_us", s.P50Frame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for ph := Phase(0); ph < phaseCount; ph++ {
		if pct, ok := s.PhasePct[ph.String()]; ok {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	P50FrameUS   int64   `csv:"p50_frame_us"`
	P95FrameUS   int64   `csv:"p95_frame_us"`
	FramesPerSec float64 `csv:"frames_per_sec"`
	FPS          float64 `csv:"fps"`
	AdvancePct   float64 `csv:"advance_pct"`
	RenderPct    float64 `csv:"render_pct"`
	BlitPct      float64 `csv:"blit_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		MinFrameUS:   s.MinFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		P50FrameUS:   s.P50Frame.Microseconds(),
		P95FrameUS:   s.P95Frame.Microseconds(),
		FramesPerSec: s.FramesPerSecond,
		FPS:          s.FPS,
		AdvancePct:   s.PhasePct[PhaseAdvance.String()],
		RenderPct:    s.PhasePct[PhaseRender.String()],
		BlitPct:      s.PhasePct[PhaseBlit.String()],
	}
}

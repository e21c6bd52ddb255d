package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of the frame pipeline.
type Phase uint8

// Pipeline phases in execution order. Names match the stage IDs in systems.SystemRegistry.
const (
	PhaseIngest Phase = iota
	PhaseTracking
	PhaseClassify
	PhaseMode
	PhaseCamera
	PhaseSolve
	PhaseIntegrate
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"ingest", "tracking", "classify", "mode", "camera", "solve", "integrate", "telemetry",
}

// String returns the phase name.
func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists the pipeline phases in execution order.
var Phases = []Phase{
	PhaseIngest, PhaseTracking, PhaseClassify, PhaseMode,
	PhaseCamera, PhaseSolve, PhaseIntegrate, PhaseTelemetry,
}

// perfSample is the timing of one tick. Fixed arrays keep EndTick allocation-free.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps the last N tick timings in a ring buffer.
type PerfCollector struct {
	samples []perfSample
	next    int
	filled  int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks (60 if < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]perfSample, windowSize)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and stores the tick.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// RecordFrame marks a rendered frame (viewer only).
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats aggregates the current window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Keyed by phase name
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregates over the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var phaseSum [numPhases]time.Duration
	for i, sample := range p.samples[:p.filled] {
		ticks[i] = float64(sample.tick)
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	mean := stat.Mean(ticks, nil)
	sort.Float64s(ticks)
	s.AvgTickDuration = time.Duration(mean)
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	if mean > 0 {
		s.TicksPerSecond = float64(time.Second) / mean
	}

	n := time.Duration(p.filled)
	for ph, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		name := Phase(ph).String()
		avg := sum / n
		s.PhaseAvg[name] = avg
		if mean > 0 {
			s.PhasePct[name] = float64(avg) / mean * 100
		}
	}
	return s
}

// LogStats logs the aggregates.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph.String()]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	IngestPct    float64 `csv:"ingest_pct"`
	TrackingPct  float64 `csv:"tracking_pct"`
	ClassifyPct  float64 `csv:"classify_pct"`
	ModePct      float64 `csv:"mode_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	SolvePct     float64 `csv:"solve_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	pct := func(ph Phase) float64 { return s.PhasePct[ph.String()] }
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		IngestPct:    pct(PhaseIngest),
		TrackingPct:  pct(PhaseTracking),
		ClassifyPct:  pct(PhaseClassify),
		ModePct:      pct(PhaseMode),
		CameraPct:    pct(PhaseCamera),
		SolvePct:     pct(PhaseSolve),
		IntegratePct: pct(PhaseIntegrate),
		TelemetryPct: pct(PhaseTelemetry),
	}
}

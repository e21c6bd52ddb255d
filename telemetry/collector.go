package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/mode"
)

// Collector accumulates per-frame observations within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	modeFrames     [3]int
	transitions    int
	fallbacks      int
	ingested       int
	handFrames     int
	notReadyFrames int
	frames         int
	residuals      []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in scene seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// FrameSample is what the frame loop observes once per tick.
type FrameSample struct {
	Mode         mode.Mode
	Ready        bool
	HandPresent  bool
	MeanResidual float64
}

// RecordFrame records one tick.
func (c *Collector) RecordFrame(s FrameSample) {
	c.frames++
	if int(s.Mode) < len(c.modeFrames) {
		c.modeFrames[s.Mode]++
	}
	if !s.Ready {
		c.notReadyFrames++
	}
	if s.HandPresent {
		c.handFrames++
	}
	c.residuals = append(c.residuals, s.MeanResidual)
}

// RecordTransition records a mode change.
func (c *Collector) RecordTransition(e ModeEvent) {
	c.transitions++
	if e.Cause == mode.CauseFallback.String() {
		c.fallbacks++
	}
}

// RecordIngest records one ingested photo.
func (c *Collector) RecordIngest() {
	c.ingested++
}

// ShouldFlush reports whether the window ending at tick is complete.
func (c *Collector) ShouldFlush(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces stats for the current window and starts a new one at tick.
func (c *Collector) Flush(tick int32, current mode.Mode, counts [components.NumKinds]int) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * c.dt,
		Mode:            current.String(),
		TreeFrames:      c.modeFrames[mode.Tree],
		ScatterFrames:   c.modeFrames[mode.Scatter],
		FocusFrames:     c.modeFrames[mode.Focus],
		Transitions:     c.transitions,
		Fallbacks:       c.fallbacks,
		Ingested:        c.ingested,
		HandFrames:      c.handFrames,
		NotReadyFrames:  c.notReadyFrames,
		DecorCount:      counts[components.KindDecor],
		DustCount:       counts[components.KindDust],
		PhotoCount:      counts[components.KindPhoto],
	}
	if c.frames > 0 {
		s.HandRate = float64(c.handFrames) / float64(c.frames)
	}
	if n := len(c.residuals); n > 0 {
		s.ResidualLast = c.residuals[n-1]
		s.ResidualMean = stat.Mean(c.residuals, nil)
		sort.Float64s(c.residuals)
		s.ResidualP90 = stat.Quantile(0.9, stat.Empirical, c.residuals, nil)
	}

	c.reset(tick)
	return s
}

func (c *Collector) reset(tick int32) {
	c.windowStartTick = tick
	c.modeFrames = [3]int{}
	c.transitions = 0
	c.fallbacks = 0
	c.ingested = 0
	c.handFrames = 0
	c.notReadyFrames = 0
	c.frames = 0
	c.residuals = c.residuals[:0]
}

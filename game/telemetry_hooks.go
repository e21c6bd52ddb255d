package game

import (
	"log/slog"

	"github.com/pthm-cable/memorytree/mode"
	"github.com/pthm-cable/memorytree/telemetry"
)

// OnModeChange registers an observer for mode transitions, e.g. UI hint text.
// Observers run synchronously on the frame loop and must not call Step.
func (g *Game) OnModeChange(fn func(telemetry.ModeEvent)) {
	g.observersMu.Lock()
	g.observers = append(g.observers, fn)
	g.observersMu.Unlock()
}

// emit publishes a transition to observers, telemetry and the log.
func (g *Game) emit(tr mode.Transition) {
	e := telemetry.NewModeEvent(g.tick, g.time, tr)
	slog.Info("mode changed", "event", e)

	g.collector.RecordTransition(e)
	if err := g.output.WriteModeEvent(e); err != nil {
		slog.Error("writing mode event", "error", err)
	}

	g.observersMu.Lock()
	observers := g.observers
	g.observersMu.Unlock()
	for _, fn := range observers {
		fn(e)
	}
}

// flushWindow closes the current stats window.
func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.tick, g.machine.State().Mode, g.registry.Snapshot().Counts)
	perf := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perf.LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("writing telemetry", "error", err)
	}
	if err := g.output.WritePerf(perf, g.tick); err != nil {
		slog.Error("writing perf", "error", err)
	}
	if g.hud != nil {
		g.hud.SetPerf(perf)
	}
}

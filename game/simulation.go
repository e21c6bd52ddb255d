package game

import (
	"log/slog"

	"github.com/pthm-cable/memorytree/gesture"
	"github.com/pthm-cable/memorytree/systems"
	"github.com/pthm-cable/memorytree/telemetry"
)

// Step runs one frame of the pipeline to completion:
// ingestion, tracking, classification, mode update, camera, targets, integration.
func (g *Game) Step() {
	g.perf.StartTick()

	// Photos queued since the last frame are applied at the frame boundary. An
	// ingestion decides this frame's mode; gestures are ignored until the next one.
	g.perf.StartPhase(telemetry.PhaseIngest)
	ingested := g.applyIngestion()

	g.perf.StartPhase(telemetry.PhaseTracking)
	frame := g.source.Next()
	g.noteReadiness(frame.Ready)
	g.lastFrame = frame

	g.perf.StartPhase(telemetry.PhaseClassify)
	result := gesture.Classification{Gesture: gesture.NeutralDrift}
	if frame.Ready {
		result = gesture.Classify(frame.Hand, g.thresholds)
	}
	g.lastResult = result

	g.perf.StartPhase(telemetry.PhaseMode)
	if !ingested {
		if tr, ok := g.machine.Apply(result.Gesture, g.registry); ok {
			g.emit(tr)
		}
	}
	if tr, ok := g.machine.Validate(g.registry); ok {
		g.emit(tr)
	}

	g.perf.StartPhase(telemetry.PhaseCamera)
	if result.HandPresent {
		g.orbit.Follow(result.PalmCenter)
	} else {
		g.orbit.Drift(g.dt)
	}
	g.orbit.Update()

	state := g.machine.State()

	g.perf.StartPhase(telemetry.PhaseSolve)
	g.targets.Update(systems.SolveInput{
		State:    state,
		Time:     g.time,
		Snapshot: g.registry.Snapshot(),
		View:     systems.NewView(g.orbit.Eye()),
	})

	g.perf.StartPhase(telemetry.PhaseIntegrate)
	residual, n := g.integrator.Update(state.Mode, g.dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	meanResidual := 0.0
	if n > 0 {
		meanResidual = residual / float64(n)
	}
	g.collector.RecordFrame(telemetry.FrameSample{
		Mode:         state.Mode,
		Ready:        frame.Ready,
		HandPresent:  result.HandPresent,
		MeanResidual: meanResidual,
	})

	g.tick++
	g.time += g.dt
	g.perf.EndTick()

	if g.collector.ShouldFlush(g.tick) {
		g.flushWindow()
	}
}

// UpdateHeadless runs one frame without graphics.
func (g *Game) UpdateHeadless() {
	g.Step()
}

// noteReadiness logs tracking readiness changes. Not-ready frames are expected while
// the video source or model loads and never stop the loop.
func (g *Game) noteReadiness(ready bool) {
	if ready == g.wasReady {
		return
	}
	g.wasReady = ready
	if ready {
		slog.Debug("tracking ready", "tick", g.tick)
	} else {
		slog.Debug("tracking not ready", "tick", g.tick)
	}
}

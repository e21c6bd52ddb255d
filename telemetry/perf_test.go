package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSolve)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[PhaseSolve.String()]; !ok {
		t.Error("expected solve phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseIntegrate.String()]; !ok {
		t.Error("expected integrate phase to be tracked")
	}
	if stats.MinTickDuration > stats.P95TickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= p95 <= max, got %v %v %v", stats.MinTickDuration, stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTracking)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseClassify)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseSolve)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseSolve.String()] <= stats.PhasePct[PhaseClassify.String()] {
		t.Errorf("expected solve (%.1f%%) to dominate classify (%.1f%%)",
			stats.PhasePct[PhaseSolve.String()], stats.PhasePct[PhaseClassify.String()])
	}

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.SolvePct != stats.PhasePct[PhaseSolve.String()] {
		t.Errorf("unexpected CSV row %+v", row)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Errorf("unexpected stats for empty collector: %+v", stats)
	}
}

func TestPhaseNames(t *testing.T) {
	if PhaseIngest.String() != "ingest" || PhaseTelemetry.String() != "telemetry" {
		t.Error("unexpected phase names")
	}
	if Phase(200).String() != "unknown" {
		t.Error("out of range phase should be unknown")
	}
}

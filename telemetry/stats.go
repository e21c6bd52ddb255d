package telemetry

import (
	"log/slog"
)

// WindowStats holds aggregated frame statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Mode at window end and frames spent in each mode
	Mode          string `csv:"mode"`
	TreeFrames    int    `csv:"tree_frames"`
	ScatterFrames int    `csv:"scatter_frames"`
	FocusFrames   int    `csv:"focus_frames"`

	// Events during window
	Transitions int `csv:"transitions"`
	Fallbacks   int `csv:"fallbacks"`
	Ingested    int `csv:"ingested"`

	// Tracking
	HandFrames     int     `csv:"hand_frames"`
	NotReadyFrames int     `csv:"not_ready_frames"`
	HandRate       float64 `csv:"hand_rate"`

	// Population at window end
	DecorCount int `csv:"decor"`
	DustCount  int `csv:"dust"`
	PhotoCount int `csv:"photo"`

	// Mean distance from current to target position, per frame
	ResidualMean float64 `csv:"residual_mean"`
	ResidualP90  float64 `csv:"residual_p90"`
	ResidualLast float64 `csv:"residual_last"`
}

// LogStats logs the window via slog.
func (s WindowStats) LogStats() {
	slog.Info("window", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("mode", s.Mode),
		slog.Int("transitions", s.Transitions),
		slog.Int("ingested", s.Ingested),
		slog.Float64("hand_rate", s.HandRate),
		slog.Int("photos", s.PhotoCount),
		slog.Float64("residual_mean", s.ResidualMean),
		slog.Float64("residual_p90", s.ResidualP90),
	)
}

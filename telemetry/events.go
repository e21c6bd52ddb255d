// Package telemetry records mode changes, frame statistics and performance.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/memorytree/mode"
)

// ModeEvent is the observable record of one mode transition.
type ModeEvent struct {
	Tick        int32   `csv:"tick"`
	Time        float64 `csv:"time"`
	From        string  `csv:"from"`
	To          string  `csv:"to"`
	FocusTarget uint32  `csv:"focus_target"` // 0 unless To is focus
	Cause       string  `csv:"cause"`
	Gesture     string  `csv:"gesture"`

	State mode.State `csv:"-"`
}

// NewModeEvent creates an event from a state machine transition.
func NewModeEvent(tick int32, t float64, tr mode.Transition) ModeEvent {
	return ModeEvent{
		Tick:        tick,
		Time:        t,
		From:        tr.From.Mode.String(),
		To:          tr.To.Mode.String(),
		FocusTarget: tr.To.FocusTarget,
		Cause:       tr.Cause.String(),
		Gesture:     tr.Gesture.String(),
		State:       tr.To,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (e ModeEvent) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("tick", int(e.Tick)),
		slog.String("from", e.From),
		slog.String("to", e.To),
		slog.String("cause", e.Cause),
	}
	if e.FocusTarget != 0 {
		attrs = append(attrs, slog.Any("focus_target", e.FocusTarget))
	}
	if e.Cause == mode.CauseGesture.String() {
		attrs = append(attrs, slog.String("gesture", e.Gesture))
	}
	return slog.GroupValue(attrs...)
}

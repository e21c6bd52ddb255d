// Package ui renders the viewer heads-up display: mode hint, legend and controls.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/gesture"
	"github.com/pthm-cable/memorytree/mode"
	"github.com/pthm-cable/memorytree/systems"
	"github.com/pthm-cable/memorytree/telemetry"
)

// Status holds everything the HUD reflects for one frame.
type Status struct {
	State       mode.State
	Gesture     gesture.Classification
	Ready       bool
	Counts      [components.NumKinds]int
	Paused      bool
	Pending     int
	HandVisible bool
}

// Action reports which HUD controls were activated this frame.
type Action struct {
	AddPhoto    bool
	TogglePause bool
}

// modeHints are shown under the mode name.
var modeHints = map[mode.Mode]string{
	mode.Tree:    "Open hand to scatter. Pinch to focus a photo.",
	mode.Scatter: "Make a fist to gather. Pinch to focus a photo.",
	mode.Focus:   "Open hand to release. Fist to rebuild the tree.",
}

// HUD renders the main heads-up display.
type HUD struct {
	stages *systems.SystemRegistry
	perf   telemetry.PerfStats
}

// NewHUD creates a new HUD renderer.
func NewHUD(stages *systems.SystemRegistry) *HUD {
	return &HUD{stages: stages}
}

// SetPerf updates the performance breakdown shown in the corner.
func (h *HUD) SetPerf(p telemetry.PerfStats) {
	h.perf = p
}

// Draw renders the HUD and returns activated controls.
func (h *HUD) Draw(s Status) Action {
	var action Action
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	title := s.State.Mode.String()
	if s.State.Mode == mode.Focus {
		title = fmt.Sprintf("focus #%d", s.State.FocusTarget)
	}
	rl.DrawText(title, 10, 10, 24, rl.White)
	rl.DrawText(modeHints[s.State.Mode], 10, 40, 16, rl.LightGray)

	rl.DrawText(
		fmt.Sprintf("Decor: %d | Dust: %d | Photos: %d", s.Counts[components.KindDecor],
			s.Counts[components.KindDust], s.Counts[components.KindPhoto]),
		10, 62, 16, rl.LightGray,
	)

	tracking := "hand: " + s.Gesture.Gesture.String()
	switch {
	case !s.Ready:
		tracking = "tracking: loading"
	case s.Gesture.HandPresent:
		tracking += fmt.Sprintf(" (pinch %.3f, ext %.3f)", s.Gesture.PinchDistance, s.Gesture.Extension)
	}
	rl.DrawText(tracking, 10, 82, 16, rl.Gray)

	if s.Paused {
		rl.DrawText("PAUSED", 10, 102, 16, rl.Yellow)
	}

	addLabel := "Add photo"
	if s.Pending > 0 {
		addLabel = fmt.Sprintf("Add photo (%d queued)", s.Pending)
	}
	if gui.Button(rl.Rectangle{X: float32(screenW) - 190, Y: 10, Width: 180, Height: 30}, addLabel) {
		action.AddPhoto = true
	}
	if gui.Button(rl.Rectangle{X: float32(screenW) - 190, Y: 46, Width: 180, Height: 30}, toggleText(s.Paused, "Resume", "Pause")) {
		action.TogglePause = true
	}

	h.drawPerf(screenW-190, 90)

	rl.DrawText("1 fist  2 open  3 pinch  4 relaxed  H hide hand  N tracker  P photo  Space pause",
		10, screenH-25, 14, rl.Gray)

	return action
}

// drawPerf renders the per-stage timing breakdown.
func (h *HUD) drawPerf(x, y int32) {
	if h.perf.AvgTickDuration <= 0 {
		return
	}
	gui.Label(rl.Rectangle{X: float32(x), Y: float32(y), Width: 180, Height: 18},
		fmt.Sprintf("frame %dus", h.perf.AvgTickDuration.Microseconds()))
	y += 20
	for _, id := range h.stages.IDs() {
		pct, ok := h.perf.PhasePct[id]
		if !ok {
			continue
		}
		rl.DrawText(fmt.Sprintf("%-10s %5.1f%%", h.stages.GetName(id), pct), x, y, 12, rl.Gray)
		y += 14
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

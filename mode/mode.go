// Package mode implements the display-mode state machine.
//
// The machine is a Mealy machine over gestures: the next state depends on the
// current state and the input gesture. Requesting the current mode is a no-op, so
// held gestures never re-trigger side effects such as re-picking the focus target.
package mode

import (
	"github.com/pthm-cable/memorytree/gesture"
)

// Mode is the global choreography regime.
type Mode uint8

const (
	Tree Mode = iota
	Scatter
	Focus
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Tree:
		return "tree"
	case Scatter:
		return "scatter"
	case Focus:
		return "focus"
	}
	return "unknown"
}

// State is the current mode plus the focus target.
// FocusTarget is 0 unless Mode is Focus, and then always names a registered photo.
type State struct {
	Mode        Mode
	FocusTarget uint32
}

// Cause records why a transition happened.
type Cause uint8

const (
	CauseGesture  Cause = iota // Classified gesture
	CauseIngest                // Photo ingestion
	CauseFallback              // FOCUS requested or held without a valid photo
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseGesture:
		return "gesture"
	case CauseIngest:
		return "ingest"
	case CauseFallback:
		return "fallback"
	}
	return "unknown"
}

// Transition describes one state change.
type Transition struct {
	From    State
	To      State
	Cause   Cause
	Gesture gesture.Gesture
}

// PhotoSet is the registry view the machine needs.
type PhotoSet interface {
	PhotoIDs() []uint32
	HasPhoto(id uint32) bool
}

// Chooser picks an index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

// Machine holds the mode state. It is not safe for concurrent use; the frame loop
// owns it.
type Machine struct {
	state  State
	choose Chooser
}

// NewMachine creates a machine in TREE mode. choose selects focus targets.
func NewMachine(choose Chooser) *Machine {
	return &Machine{state: State{Mode: Tree}, choose: choose}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Apply feeds one classified gesture. It reports the transition, if any.
func (m *Machine) Apply(g gesture.Gesture, photos PhotoSet) (Transition, bool) {
	switch g {
	case gesture.Pinch:
		if m.state.Mode == Focus {
			return Transition{}, false
		}
		ids := photos.PhotoIDs()
		if len(ids) == 0 {
			// Nothing to focus on: settle in SCATTER instead
			return m.set(State{Mode: Scatter}, CauseFallback, g)
		}
		return m.set(State{Mode: Focus, FocusTarget: ids[m.choose.Intn(len(ids))]}, CauseGesture, g)
	case gesture.Fist:
		return m.set(State{Mode: Tree}, CauseGesture, g)
	case gesture.Open:
		return m.set(State{Mode: Scatter}, CauseGesture, g)
	}
	return Transition{}, false
}

// Ingest forces FOCUS on a newly created photo, overriding gesture selection.
func (m *Machine) Ingest(id uint32) (Transition, bool) {
	return m.set(State{Mode: Focus, FocusTarget: id}, CauseIngest, gesture.None)
}

// Validate falls back to SCATTER if the machine is in FOCUS without a registered target.
func (m *Machine) Validate(photos PhotoSet) (Transition, bool) {
	if m.state.Mode != Focus {
		return Transition{}, false
	}
	if m.state.FocusTarget != 0 && photos.HasPhoto(m.state.FocusTarget) {
		return Transition{}, false
	}
	return m.set(State{Mode: Scatter}, CauseFallback, gesture.None)
}

// set moves to next unless it equals the current state.
func (m *Machine) set(next State, cause Cause, g gesture.Gesture) (Transition, bool) {
	if next == m.state {
		return Transition{}, false
	}
	tr := Transition{From: m.state, To: next, Cause: cause, Gesture: g}
	m.state = next
	return tr, true
}

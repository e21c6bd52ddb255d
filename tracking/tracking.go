// Package tracking provides hand-landmark frame sources.
//
// A source yields at most one hand per frame. A missing hand is a normal frame,
// not an error, and a source that is still warming up reports Ready=false.
package tracking

import (
	"sync"

	"github.com/pthm-cable/memorytree/gesture"
)

// Frame is one hand-tracking sample.
type Frame struct {
	Ready bool               // False while the video source or model is loading
	Hand  *gesture.Landmarks // Nil when no hand is visible
}

// Source yields one frame per tick.
type Source interface {
	Next() Frame
}

// NoHand is a source that is always ready and never sees a hand.
type NoHand struct{}

// Next returns an empty ready frame.
func (NoHand) Next() Frame {
	return Frame{Ready: true}
}

// Manual is a source whose hand is set by the caller, e.g. from keyboard input.
// Set may be called from any goroutine.
type Manual struct {
	mu    sync.Mutex
	hand  *gesture.Landmarks
	ready bool
}

// NewManual creates a ready manual source with no hand.
func NewManual() *Manual {
	return &Manual{ready: true}
}

// Set replaces the current hand. Nil clears it.
func (m *Manual) Set(hand *gesture.Landmarks) {
	m.mu.Lock()
	m.hand = hand
	m.mu.Unlock()
}

// SetReady toggles readiness.
func (m *Manual) SetReady(ready bool) {
	m.mu.Lock()
	m.ready = ready
	m.mu.Unlock()
}

// Next returns the current hand.
func (m *Manual) Next() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Frame{Ready: m.ready, Hand: m.hand}
}

package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/gesture"
)

// viewerHand is the keyboard-simulated hand used when no tracker is attached.
type viewerHand struct {
	visible bool
	pose    gesture.Pose
}

// handleInput processes keyboard and mouse input for the viewer.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.ingestDemoPhoto()
	}

	if g.manual == nil {
		return
	}

	// Pose keys show the hand; H hides it
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		g.hand.visible, g.hand.pose = true, gesture.PoseFist
	case rl.IsKeyPressed(rl.KeyTwo):
		g.hand.visible, g.hand.pose = true, gesture.PoseOpen
	case rl.IsKeyPressed(rl.KeyThree):
		g.hand.visible, g.hand.pose = true, gesture.PosePinch
	case rl.IsKeyPressed(rl.KeyFour):
		g.hand.visible, g.hand.pose = true, gesture.PoseRelaxed
	case rl.IsKeyPressed(rl.KeyH):
		g.hand.visible = false
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.toggleReady()
	}

	if !g.hand.visible {
		g.manual.Set(nil)
		return
	}
	mouse := rl.GetMousePosition()
	palm := r3.Vec{
		X: float64(mouse.X) / float64(rl.GetScreenWidth()),
		Y: float64(mouse.Y) / float64(rl.GetScreenHeight()),
	}
	g.manual.Set(gesture.Synthesize(g.hand.pose, palm))
}

// toggleReady simulates the tracker dropping out and coming back.
func (g *Game) toggleReady() {
	g.manual.SetReady(!g.lastFrame.Ready)
}

// ingestDemoPhoto stands in for a decoded upload.
func (g *Game) ingestDemoPhoto() {
	n := g.registry.Count(components.KindPhoto) + g.PendingPhotos()
	g.IngestPhoto(components.Photo{
		Source: fmt.Sprintf("demo-%03d", n+1),
		Aspect: 0.75 + g.rng.Float64()*0.75,
	})
}

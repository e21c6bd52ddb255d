package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/memorytree/renderer"
	"github.com/pthm-cable/memorytree/ui"
)

// Update handles input and advances one frame (viewer mode).
func (g *Game) Update() {
	g.handleInput()
	if !g.paused {
		g.Step()
	}
	g.perf.RecordFrame()
}

// Draw renders the scene and HUD (viewer mode).
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 6, G: 10, B: 24, A: 255})

	cam := renderer.CameraFor(g.orbit)
	rl.BeginMode3D(cam)
	g.renderer.Draw(g.registry)
	rl.EndMode3D()

	action := g.hud.Draw(ui.Status{
		State:       g.machine.State(),
		Gesture:     g.lastResult,
		Ready:       g.lastFrame.Ready,
		Counts:      g.registry.Snapshot().Counts,
		Paused:      g.paused,
		Pending:     g.PendingPhotos(),
		HandVisible: g.hand.visible,
	})
	if action.AddPhoto {
		g.ingestDemoPhoto()
	}
	if action.TogglePause {
		g.paused = !g.paused
	}

	rl.EndDrawing()
}

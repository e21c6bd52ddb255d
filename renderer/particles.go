// Package renderer draws the particle scene with raylib. It only reads
// (id, kind, current transform) from the registry and never writes particle state.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/memorytree/camera"
	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/systems"
)

// Mesh sizes per kind at unit scale.
const (
	decorSize   = 0.35
	dustSize    = 0.08
	photoHeight = 1.6
	photoDepth  = 0.05
)

var (
	decorPalette = []rl.Color{
		{R: 214, G: 38, B: 50, A: 255},
		{R: 240, G: 196, B: 70, A: 255},
		{R: 36, G: 140, B: 84, A: 255},
		{R: 230, G: 230, B: 240, A: 255},
	}
	dustColor  = rl.Color{R: 255, G: 236, B: 190, A: 200}
	frameColor = rl.Color{R: 250, G: 246, B: 235, A: 255}
)

// ParticleRenderer renders particles keyed by kind.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// CameraFor converts the orbit camera into a raylib camera looking at the origin.
func CameraFor(o *camera.Orbit) rl.Camera3D {
	eye := o.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(eye.X), float32(eye.Y), float32(eye.Z)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders every particle. Must be called between BeginMode3D and EndMode3D.
func (r *ParticleRenderer) Draw(reg *systems.ParticleRegistry) {
	reg.Each(func(p *components.Particle, t *components.Transform) {
		r.drawParticle(reg, p, t)
	})
}

func (r *ParticleRenderer) drawParticle(reg *systems.ParticleRegistry, p *components.Particle, t *components.Transform) {
	if t.Scale <= 0 {
		return
	}

	axis, angle := systems.AxisAngle(t.Rotation)
	s := float32(t.Scale)

	rl.PushMatrix()
	rl.Translatef(float32(t.Position.X), float32(t.Position.Y), float32(t.Position.Z))
	rl.Rotatef(float32(angle*180/math.Pi), float32(axis.X), float32(axis.Y), float32(axis.Z))
	rl.Scalef(s, s, s)

	origin := rl.NewVector3(0, 0, 0)
	switch p.Kind {
	case components.KindDecor:
		rl.DrawCube(origin, decorSize, decorSize, decorSize, decorPalette[p.Slot%len(decorPalette)])
	case components.KindDust:
		rl.DrawCube(origin, dustSize, dustSize, dustSize, dustColor)
	case components.KindPhoto:
		w := photoWidth(reg, p.ID)
		rl.DrawCube(origin, w+0.15, photoHeight+0.15, photoDepth, frameColor)
		rl.DrawCube(rl.NewVector3(0, 0, photoDepth), w, photoHeight, photoDepth, photoTint(p.ID))
	}

	rl.PopMatrix()
}

// photoWidth returns the panel width at unit scale. Unknown ids and unset
// aspects draw square.
func photoWidth(reg *systems.ParticleRegistry, id uint32) float32 {
	aspect := 1.0
	if photo, ok := reg.PhotoOf(id); ok && photo.Aspect > 0 {
		aspect = photo.Aspect
	}
	return float32(photoHeight * aspect)
}

// photoTint stands in for the photo texture, which belongs to the image loader.
func photoTint(id uint32) rl.Color {
	h := id * 2654435761
	return rl.Color{R: uint8(80 + h%150), G: uint8(80 + (h>>8)%150), B: uint8(80 + (h>>16)%150), A: 255}
}

// Package camera provides an orbit camera that follows the tracked palm.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/config"
)

// Orbit circles the scene origin. The palm position picks target yaw and pitch;
// with no hand the yaw target drifts slowly so the scene keeps turning.
type Orbit struct {
	// Current angles (radians)
	Yaw, Pitch float64

	// Angles the camera is easing toward
	TargetYaw, TargetPitch float64

	Distance float64
	Height   float64

	maxYaw    float64
	maxPitch  float64
	follow    float64
	idleDrift float64
}

// New creates an orbit camera looking at the origin from +Z.
func New(cfg config.CameraConfig) *Orbit {
	return &Orbit{
		Distance:  cfg.Distance,
		Height:    cfg.Height,
		maxYaw:    cfg.MaxYaw,
		maxPitch:  cfg.MaxPitch,
		follow:    cfg.Follow,
		idleDrift: cfg.IdleDrift,
	}
}

// Follow aims the camera from a normalized palm position. The image is mirrored,
// so moving the hand right turns the scene right.
func (o *Orbit) Follow(palm r3.Vec) {
	o.TargetYaw = (0.5 - clamp01(palm.X)) * 2 * o.maxYaw
	o.TargetPitch = (clamp01(palm.Y) - 0.5) * 2 * o.maxPitch
}

// Drift advances the idle yaw by dt seconds and relaxes pitch to level.
// The yaw target stays wrapped to [-π, π].
func (o *Orbit) Drift(dt float64) {
	o.TargetYaw = wrapAngle(o.TargetYaw + o.idleDrift*dt)
	o.TargetPitch = 0
}

// Update eases the current angles toward their targets. Yaw takes the shorter way
// around, so returning from a long idle drift never unwinds full turns.
func (o *Orbit) Update() {
	o.Yaw = wrapAngle(o.Yaw + wrapAngle(o.TargetYaw-o.Yaw)*o.follow)
	o.Pitch += (o.TargetPitch - o.Pitch) * o.follow
}

// Eye returns the camera position in world space.
func (o *Orbit) Eye() r3.Vec {
	cp := math.Cos(o.Pitch)
	return r3.Vec{
		X: o.Distance * cp * math.Sin(o.Yaw),
		Y: o.Height + o.Distance*math.Sin(o.Pitch),
		Z: o.Distance * cp * math.Cos(o.Yaw),
	}
}

// wrapAngle maps a to [-π, π].
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package gesture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a canonical hand posture for Synthesize.
type Pose uint8

const (
	PoseRelaxed Pose = iota
	PoseOpen
	PoseFist
	PosePinch
)

// Fingertip reach from the wrist per pose, in normalized units.
const (
	reachOpen    = 0.45
	reachFist    = 0.15
	reachRelaxed = 0.30
	palmLength   = 0.10
	thumbReach   = 0.20
)

// fingerAngles are the splay angles of index, middle, ring and pinky from vertical.
var fingerAngles = [4]float64{-0.25, 0, 0.25, 0.5}

// Synthesize builds a plausible 21-point hand in the given pose whose middle-finger
// base sits at palm. Used by the keyboard-driven viewer and by tests.
func Synthesize(pose Pose, palm r3.Vec) *Landmarks {
	var lm Landmarks
	// Image y grows downward: the wrist sits below the palm
	wrist := r3.Add(palm, r3.Vec{Y: palmLength})
	lm[Wrist] = wrist

	reach := reachRelaxed
	switch pose {
	case PoseOpen:
		reach = reachOpen
	case PoseFist:
		reach = reachFist
	}

	for f, angle := range fingerAngles {
		dir := r3.Vec{X: math.Sin(angle), Y: -math.Cos(angle)}
		base := IndexMCP + 4*f
		mcp := r3.Add(wrist, r3.Scale(palmLength, dir))
		if f == 1 {
			mcp = palm
		}
		tip := r3.Add(wrist, r3.Scale(reach, dir))
		lm[base] = mcp
		lm[base+1] = lerpPoint(mcp, tip, 1.0/3)
		lm[base+2] = lerpPoint(mcp, tip, 2.0/3)
		lm[base+3] = tip
	}

	thumbDir := r3.Vec{X: -math.Sin(1.1), Y: -math.Cos(1.1)}
	thumbTip := r3.Add(wrist, r3.Scale(thumbReach, thumbDir))
	if pose == PosePinch {
		thumbTip = r3.Add(lm[IndexTip], r3.Vec{X: 0.01})
	}
	thumbBase := r3.Add(wrist, r3.Scale(0.05, thumbDir))
	lm[1] = thumbBase
	lm[2] = lerpPoint(thumbBase, thumbTip, 1.0/3)
	lm[3] = lerpPoint(thumbBase, thumbTip, 2.0/3)
	lm[ThumbTip] = thumbTip

	return &lm
}

func lerpPoint(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Package gesture classifies hand-landmark frames into discrete gestures.
//
// Classification is a pure function of the 21 landmark points and the thresholds.
// Distances are measured in normalized image space (x, y in [0,1]); depth is
// included only when Thresholds.UseDepth is set, and then for every distance.
package gesture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Gesture is a symbolic hand posture.
type Gesture uint8

const (
	None         Gesture = iota // Hand visible, posture ambiguous
	NeutralDrift                // No hand this frame
	Pinch
	Fist
	Open
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case None:
		return "none"
	case NeutralDrift:
		return "neutral_drift"
	case Pinch:
		return "pinch"
	case Fist:
		return "fist"
	case Open:
		return "open"
	}
	return "unknown"
}

// Landmark indices (MediaPipe hand topology).
const (
	Wrist     = 0
	ThumbTip  = 4
	IndexMCP  = 5
	IndexTip  = 8
	MiddleMCP = 9
	MiddleTip = 12
	RingTip   = 16
	PinkyTip  = 20

	NumLandmarks = 21
)

// fingerTips are the four non-thumb fingertips.
var fingerTips = [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}

// Landmarks is one hand: x, y normalized to [0,1], z relative depth.
type Landmarks [NumLandmarks]r3.Vec

// Thresholds holds the classifier boundaries.
// PINCH iff pinch distance < Pinch; FIST iff extension < Fist; OPEN iff extension > Open.
type Thresholds struct {
	Pinch    float64
	Fist     float64
	Open     float64
	UseDepth bool
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Pinch: 0.05, Fist: 0.22, Open: 0.38}
}

// Classification is the classifier output for one frame.
type Classification struct {
	Gesture     Gesture
	HandPresent bool

	// PalmCenter is the middle-finger base, for orientation following.
	PalmCenter r3.Vec

	PinchDistance float64
	Extension     float64 // Mean fingertip-to-wrist distance
}

// Classify maps a landmark frame to a gesture. A nil frame means no hand is visible
// and yields NeutralDrift.
func Classify(lm *Landmarks, th Thresholds) Classification {
	if lm == nil {
		return Classification{Gesture: NeutralDrift}
	}

	c := Classification{
		HandPresent:   true,
		PalmCenter:    lm[MiddleMCP],
		PinchDistance: distance(lm[ThumbTip], lm[IndexTip], th.UseDepth),
		Extension:     Extension(lm, th.UseDepth),
	}

	switch {
	case c.PinchDistance < th.Pinch:
		c.Gesture = Pinch
	case c.Extension < th.Fist:
		c.Gesture = Fist
	case c.Extension > th.Open:
		c.Gesture = Open
	default:
		c.Gesture = None
	}
	return c
}

// Extension returns the mean distance of the four non-thumb fingertips from the wrist.
func Extension(lm *Landmarks, useDepth bool) float64 {
	var d [len(fingerTips)]float64
	for i, tip := range fingerTips {
		d[i] = distance(lm[tip], lm[Wrist], useDepth)
	}
	return stat.Mean(d[:], nil)
}

func distance(a, b r3.Vec, useDepth bool) float64 {
	d := r3.Sub(a, b)
	if !useDepth {
		d.Z = 0
	}
	return r3.Norm(d)
}

// Valid reports whether every coordinate is finite.
func (lm *Landmarks) Valid() bool {
	for _, p := range lm {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) ||
			math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			return false
		}
	}
	return true
}

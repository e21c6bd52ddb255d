package gesture

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// Powers of two keep the boundary distances exact in floating point.
var exactThresholds = Thresholds{Pinch: 0.0625, Fist: 0.25, Open: 0.5}

// straightHand puts the wrist at the origin and every fingertip straight up at
// distance reach. The thumb tip sits pinch away from the index tip.
func straightHand(reach, pinch float64) *Landmarks {
	var lm Landmarks
	for _, tip := range fingerTips {
		lm[tip] = r3.Vec{Y: -reach}
	}
	lm[ThumbTip] = r3.Vec{X: pinch, Y: -reach}
	lm[MiddleMCP] = r3.Vec{X: 0.5, Y: 0.5}
	return &lm
}

func TestClassifyNoHand(t *testing.T) {
	c := Classify(nil, DefaultThresholds())
	if c.Gesture != NeutralDrift {
		t.Errorf("expected neutral_drift, got %s", c.Gesture)
	}
	if c.HandPresent {
		t.Error("HandPresent should be false without landmarks")
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		reach float64
		pinch float64
		want  Gesture
	}{
		{"pinch below threshold", 0.375, 0.03, Pinch},
		{"pinch exactly at threshold is not pinch", 0.375, 0.0625, None},
		{"fist below threshold", 0.125, 0.25, Fist},
		{"fist exactly at threshold is not fist", 0.25, 0.25, None},
		{"open above threshold", 0.75, 0.25, Open},
		{"open exactly at threshold is not open", 0.5, 0.25, None},
		{"between fist and open", 0.375, 0.25, None},
		{"pinch wins over fist", 0.125, 0.01, Pinch},
		{"pinch wins over open", 0.75, 0.01, Pinch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(straightHand(tt.reach, tt.pinch), exactThresholds)
			if c.Gesture != tt.want {
				t.Errorf("expected %s, got %s (pinch %f, extension %f)",
					tt.want, c.Gesture, c.PinchDistance, c.Extension)
			}
			if !c.HandPresent {
				t.Error("HandPresent should be true")
			}
		})
	}
}

func TestClassifyPalmCenter(t *testing.T) {
	lm := straightHand(0.375, 0.25)
	c := Classify(lm, exactThresholds)
	if c.PalmCenter != lm[MiddleMCP] {
		t.Errorf("palm center %+v, want middle MCP %+v", c.PalmCenter, lm[MiddleMCP])
	}
}

func TestClassifyDepth(t *testing.T) {
	// Depth alone separates thumb and index
	lm := straightHand(0.375, 0)
	lm[ThumbTip].Z = 0.25

	flat := Classify(lm, exactThresholds)
	if flat.Gesture != Pinch {
		t.Errorf("without depth expected pinch, got %s", flat.Gesture)
	}

	th := exactThresholds
	th.UseDepth = true
	deep := Classify(lm, th)
	if deep.Gesture == Pinch {
		t.Error("with depth the thumb is too far for a pinch")
	}
	if math.Abs(deep.PinchDistance-0.25) > 1e-12 {
		t.Errorf("expected depth pinch distance 0.25, got %f", deep.PinchDistance)
	}
}

func TestExtensionIsMean(t *testing.T) {
	var lm Landmarks
	lm[IndexTip] = r3.Vec{Y: -0.1}
	lm[MiddleTip] = r3.Vec{Y: -0.2}
	lm[RingTip] = r3.Vec{Y: -0.3}
	lm[PinkyTip] = r3.Vec{Y: -0.4}
	if got := Extension(&lm, false); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected mean extension 0.25, got %f", got)
	}
}

func TestSynthesizedPoses(t *testing.T) {
	palm := r3.Vec{X: 0.5, Y: 0.5}
	tests := []struct {
		pose Pose
		want Gesture
	}{
		{PoseOpen, Open},
		{PoseFist, Fist},
		{PosePinch, Pinch},
		{PoseRelaxed, None},
	}
	for _, tt := range tests {
		lm := Synthesize(tt.pose, palm)
		c := Classify(lm, DefaultThresholds())
		if c.Gesture != tt.want {
			t.Errorf("pose %d: expected %s, got %s (pinch %f, extension %f)",
				tt.pose, tt.want, c.Gesture, c.PinchDistance, c.Extension)
		}
		if c.PalmCenter != palm {
			t.Errorf("pose %d: palm center %+v, want %+v", tt.pose, c.PalmCenter, palm)
		}
		if !lm.Valid() {
			t.Errorf("pose %d: synthesized landmarks are not finite", tt.pose)
		}
	}
}

func TestValid(t *testing.T) {
	lm := Synthesize(PoseOpen, r3.Vec{X: 0.3, Y: 0.4})
	lm[7].Y = math.NaN()
	if lm.Valid() {
		t.Error("NaN landmark should be invalid")
	}
	lm[7].Y = math.Inf(1)
	if lm.Valid() {
		t.Error("infinite landmark should be invalid")
	}
}

func TestGestureString(t *testing.T) {
	for g, want := range map[Gesture]string{
		None: "none", NeutralDrift: "neutral_drift", Pinch: "pinch", Fist: "fist", Open: "open", 99: "unknown",
	} {
		if got := g.String(); got != want {
			t.Errorf("%d: expected %q, got %q", g, want, got)
		}
	}
}

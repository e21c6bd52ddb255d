package main

import (
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/gesture"
)

func syntheticSamples() []Sample {
	palm := r3.Vec{X: 0.5, Y: 0.5}
	poses := []struct {
		pose  gesture.Pose
		label gesture.Gesture
	}{
		{gesture.PoseOpen, gesture.Open},
		{gesture.PoseFist, gesture.Fist},
		{gesture.PosePinch, gesture.Pinch},
		{gesture.PoseRelaxed, gesture.None},
	}
	var samples []Sample
	for _, p := range poses {
		samples = append(samples, Sample{Hand: *gesture.Synthesize(p.pose, palm), Label: p.label})
	}
	return samples
}

func TestObjectiveZeroForSeparatingThresholds(t *testing.T) {
	obj := NewObjective(syntheticSamples(), false)
	th := gesture.Thresholds{Pinch: 0.05, Fist: 0.22, Open: 0.38}

	if loss := obj.Loss(th); loss != 0 {
		t.Errorf("expected zero loss for separating thresholds, got %f", loss)
	}
	if acc := obj.Accuracy(th); acc != 1 {
		t.Errorf("expected full accuracy, got %f", acc)
	}
}

func TestObjectivePenalizesBadThresholds(t *testing.T) {
	obj := NewObjective(syntheticSamples(), false)
	bad := gesture.Thresholds{Pinch: 0.05, Fist: 0.5, Open: 0.6}

	if loss := obj.Loss(bad); loss <= 0 {
		t.Errorf("expected positive loss, got %f", loss)
	}
	if acc := obj.Accuracy(bad); acc >= 1 {
		t.Errorf("expected misclassifications, got accuracy %f", acc)
	}
}

func TestCalibrateImprovesLoss(t *testing.T) {
	params := NewParamVector()
	obj := NewObjective(syntheticSamples(), false)
	start := []float64{0.05, 0.33, 0.34}
	startLoss := obj.Loss(params.Thresholds(start, false))

	best, _ := Calibrate(params, obj, start, false, 500)
	bestLoss := obj.Loss(params.Thresholds(best, false))

	if bestLoss > startLoss {
		t.Errorf("calibration made loss worse: %f -> %f", startLoss, bestLoss)
	}
	for i, spec := range params.Specs {
		if best[i] < spec.Min || best[i] > spec.Max {
			t.Errorf("%s = %f outside [%f, %f]", spec.Name, best[i], spec.Min, spec.Max)
		}
	}
}

func TestLoadSamplesRejectsIncompleteHand(t *testing.T) {
	data := "sample,label,point,x,y,z\n0,open,0,0.5,0.6,0\n0,open,1,0.5,0.5,0\n"
	if _, err := LoadSamples(strings.NewReader(data)); err == nil {
		t.Error("expected error for a sample with 2 of 21 landmarks")
	}
}

func TestLoadSamplesRejectsUnknownLabel(t *testing.T) {
	data := "sample,label,point,x,y,z\n0,wave,0,0.5,0.6,0\n"
	if _, err := LoadSamples(strings.NewReader(data)); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestLoadSamplesGroupsRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("sample,label,point,x,y,z\n")
	hand := gesture.Synthesize(gesture.PoseFist, r3.Vec{X: 0.4, Y: 0.5})
	for p, v := range hand {
		b.WriteString(strings.Join([]string{"7", "fist", itoa(p), ftoa(v.X), ftoa(v.Y), ftoa(v.Z)}, ","))
		b.WriteString("\n")
	}

	samples, err := LoadSamples(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 1 || samples[0].Label != gesture.Fist {
		t.Fatalf("expected one fist sample, got %+v", samples)
	}
	res := gesture.Classify(&samples[0].Hand, gesture.DefaultThresholds())
	if res.Gesture != gesture.Fist {
		t.Errorf("round-tripped hand classified as %s", res.Gesture)
	}
}

func itoa(i int) string { return strconv.Itoa(i) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

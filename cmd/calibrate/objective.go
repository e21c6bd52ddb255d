package main

import (
	"math"

	"github.com/pthm-cable/memorytree/gesture"
)

// margin pushes thresholds away from the nearest correctly classified sample.
const margin = 0.005

// orderPenalty is charged per unit of overlap when fist >= open.
const orderPenalty = 100

// measured caches the two features the classifier thresholds.
type measured struct {
	pinch, extension float64
	label            gesture.Gesture
}

// Objective scores thresholds against labeled samples with a hinge loss: zero when every
// sample falls on its correct side of each boundary by at least the margin.
type Objective struct {
	samples []measured
}

// NewObjective precomputes sample features.
func NewObjective(samples []Sample, useDepth bool) *Objective {
	o := &Objective{samples: make([]measured, len(samples))}
	for i := range samples {
		res := gesture.Classify(&samples[i].Hand, gesture.Thresholds{UseDepth: useDepth})
		o.samples[i] = measured{pinch: res.PinchDistance, extension: res.Extension, label: samples[i].Label}
	}
	return o
}

// Loss returns the hinge loss for thresholds.
func (o *Objective) Loss(th gesture.Thresholds) float64 {
	var loss float64
	for _, s := range o.samples {
		if s.label == gesture.Pinch {
			loss += hinge(s.pinch - th.Pinch)
			continue
		}
		// Every other label must not read as a pinch
		loss += hinge(th.Pinch - s.pinch)
		switch s.label {
		case gesture.Fist:
			loss += hinge(s.extension - th.Fist)
		case gesture.Open:
			loss += hinge(th.Open - s.extension)
		case gesture.None:
			loss += hinge(th.Fist - s.extension)
			loss += hinge(s.extension - th.Open)
		}
	}
	if th.Fist >= th.Open {
		loss += orderPenalty * (th.Fist - th.Open + margin)
	}
	return loss
}

// Accuracy returns the fraction of samples classified as labeled.
func (o *Objective) Accuracy(th gesture.Thresholds) float64 {
	if len(o.samples) == 0 {
		return math.NaN()
	}
	correct := 0
	for _, s := range o.samples {
		if classifyMeasured(s, th) == s.label {
			correct++
		}
	}
	return float64(correct) / float64(len(o.samples))
}

// classifyMeasured mirrors gesture.Classify on cached features.
func classifyMeasured(s measured, th gesture.Thresholds) gesture.Gesture {
	switch {
	case s.pinch < th.Pinch:
		return gesture.Pinch
	case s.extension < th.Fist:
		return gesture.Fist
	case s.extension > th.Open:
		return gesture.Open
	}
	return gesture.None
}

func hinge(violation float64) float64 {
	return math.Max(0, violation+margin)
}

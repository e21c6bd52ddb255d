package main

import (
	"github.com/pthm-cable/memorytree/config"
	"github.com/pthm-cable/memorytree/gesture"
)

// ParamSpec defines a single tunable threshold.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the tunable classifier thresholds, in Thresholds field order.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of thresholds.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "pinch", Path: "gesture.pinch", Min: 0.01, Max: 0.12},
			{Name: "fist", Path: "gesture.fist", Min: 0.10, Max: 0.35},
			{Name: "open", Path: "gesture.open", Min: 0.25, Max: 0.60},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromConfig reads the current thresholds.
func (pv *ParamVector) FromConfig(cfg *config.Config) []float64 {
	return []float64{cfg.Gesture.Pinch, cfg.Gesture.Fist, cfg.Gesture.Open}
}

// Clamp limits each value to its bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		out[i] = v
	}
	return out
}

// Thresholds converts a clamped vector into classifier thresholds.
func (pv *ParamVector) Thresholds(x []float64, useDepth bool) gesture.Thresholds {
	c := pv.Clamp(x)
	return gesture.Thresholds{Pinch: c[0], Fist: c[1], Open: c[2], UseDepth: useDepth}
}

// ApplyToConfig writes thresholds into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, x []float64) {
	c := pv.Clamp(x)
	cfg.Gesture.Pinch = c[0]
	cfg.Gesture.Fist = c[1]
	cfg.Gesture.Open = c[2]
}

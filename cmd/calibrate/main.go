// Package main fits gesture classifier thresholds to labeled landmark recordings.
//
// Usage: go run ./cmd/calibrate -data labeled.csv -output best.yaml
package main

import (
	"flag"
	"fmt"
	"log"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/memorytree/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	dataPath := flag.String("data", "", "Labeled landmark CSV (sample,label,point,x,y,z)")
	outputPath := flag.String("output", "", "Where to write the calibrated config")
	maxEvals := flag.Int("max-evals", 2000, "Maximum number of loss evaluations")
	flag.Parse()

	if *dataPath == "" || *outputPath == "" {
		log.Fatal("--data and --output are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	samples, err := LoadSamplesFile(*dataPath)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	if len(samples) == 0 {
		log.Fatal("dataset is empty")
	}

	params := NewParamVector()
	objective := NewObjective(samples, cfg.Gesture.UseDepth)
	initX := params.FromConfig(cfg)
	initTh := params.Thresholds(initX, cfg.Gesture.UseDepth)
	fmt.Printf("Loaded %d samples. Current thresholds: loss=%.4f accuracy=%.1f%%\n",
		len(samples), objective.Loss(initTh), objective.Accuracy(initTh)*100)

	best, err := Calibrate(params, objective, initX, cfg.Gesture.UseDepth, *maxEvals)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	bestTh := params.Thresholds(best, cfg.Gesture.UseDepth)
	fmt.Printf("Calibrated: loss=%.4f accuracy=%.1f%%\n", objective.Loss(bestTh), objective.Accuracy(bestTh)*100)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, params.Clamp(best)[i])
	}

	params.ApplyToConfig(cfg, best)
	if err := cfg.WriteYAML(*outputPath); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}
	fmt.Printf("Config saved to: %s\n", *outputPath)
}

// Calibrate minimizes the hinge loss with Nelder-Mead, starting from initX.
// It returns the best point seen even when the optimizer stops with an error.
func Calibrate(params *ParamVector, objective *Objective, initX []float64, useDepth bool, maxEvals int) ([]float64, error) {
	if len(initX) != params.Dim() {
		return nil, fmt.Errorf("expected %d starting values, got %d", params.Dim(), len(initX))
	}
	best := params.Clamp(initX)
	bestLoss := objective.Loss(params.Thresholds(best, useDepth))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			loss := objective.Loss(params.Thresholds(x, useDepth))
			if loss < bestLoss {
				bestLoss = loss
				best = params.Clamp(x)
			}
			return loss
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation; Func updates best
	}

	_, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	return best, err
}

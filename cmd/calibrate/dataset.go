package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/gesture"
)

// LabeledRow is one landmark point of a labeled sample.
type LabeledRow struct {
	Sample int     `csv:"sample"`
	Label  string  `csv:"label"`
	Point  int     `csv:"point"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Z      float64 `csv:"z"`
}

// Sample is one hand with the gesture it should classify as.
type Sample struct {
	Hand  gesture.Landmarks
	Label gesture.Gesture
}

var labels = map[string]gesture.Gesture{
	"none":  gesture.None,
	"pinch": gesture.Pinch,
	"fist":  gesture.Fist,
	"open":  gesture.Open,
}

// LoadSamples parses labeled landmark rows. Every sample needs all 21 points and one label.
func LoadSamples(r io.Reader) ([]Sample, error) {
	var rows []LabeledRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing labeled rows: %w", err)
	}

	type partial struct {
		s     Sample
		label string
		seen  int
	}
	bySample := make(map[int]*partial)
	for _, row := range rows {
		if row.Point < 0 || row.Point >= gesture.NumLandmarks {
			return nil, fmt.Errorf("sample %d: landmark index %d out of range", row.Sample, row.Point)
		}
		p, ok := bySample[row.Sample]
		if !ok {
			g, known := labels[row.Label]
			if !known {
				return nil, fmt.Errorf("sample %d: unknown label %q", row.Sample, row.Label)
			}
			p = &partial{label: row.Label, s: Sample{Label: g}}
			bySample[row.Sample] = p
		}
		if row.Label != p.label {
			return nil, fmt.Errorf("sample %d: mixed labels %q and %q", row.Sample, p.label, row.Label)
		}
		p.s.Hand[row.Point] = r3.Vec{X: row.X, Y: row.Y, Z: row.Z}
		p.seen++
	}

	ids := make([]int, 0, len(bySample))
	for id := range bySample {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	samples := make([]Sample, 0, len(ids))
	for _, id := range ids {
		p := bySample[id]
		if p.seen != gesture.NumLandmarks {
			return nil, fmt.Errorf("sample %d: expected %d landmarks, got %d", id, gesture.NumLandmarks, p.seen)
		}
		samples = append(samples, p.s)
	}
	return samples, nil
}

// LoadSamplesFile opens and parses a labeled dataset.
func LoadSamplesFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return LoadSamples(f)
}

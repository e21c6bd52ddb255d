package tracking

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/gesture"
)

// LandmarkRow is one landmark point of a recorded frame.
// Frames with no rows are frames without a hand.
type LandmarkRow struct {
	Frame int     `csv:"frame"`
	Point int     `csv:"point"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
}

// Replay plays back a recorded landmark sequence, one frame per Next call.
type Replay struct {
	frames []*gesture.Landmarks
	pos    int
	loop   bool
	warmup int // Frames reported as not ready before playback starts
}

// LoadReplay parses a landmark recording. The frame count is one past the highest
// frame index; frames may appear in any order.
func LoadReplay(r io.Reader) (*Replay, error) {
	var rows []LandmarkRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing landmark rows: %w", err)
	}

	n := 0
	for _, row := range rows {
		if row.Frame < 0 {
			return nil, fmt.Errorf("negative frame index %d", row.Frame)
		}
		if row.Point < 0 || row.Point >= gesture.NumLandmarks {
			return nil, fmt.Errorf("frame %d: landmark index %d out of range", row.Frame, row.Point)
		}
		if row.Frame+1 > n {
			n = row.Frame + 1
		}
	}

	frames := make([]*gesture.Landmarks, n)
	seen := make([]int, n)
	for _, row := range rows {
		if frames[row.Frame] == nil {
			frames[row.Frame] = &gesture.Landmarks{}
		}
		frames[row.Frame][row.Point] = r3.Vec{X: row.X, Y: row.Y, Z: row.Z}
		seen[row.Frame]++
	}
	for i, count := range seen {
		if count != 0 && count != gesture.NumLandmarks {
			return nil, fmt.Errorf("frame %d: expected %d landmarks, got %d", i, gesture.NumLandmarks, count)
		}
	}

	return &Replay{frames: frames}, nil
}

// LoadReplayFile opens and parses a landmark recording.
func LoadReplayFile(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay: %w", err)
	}
	defer f.Close()
	return LoadReplay(f)
}

// SetLoop makes playback restart after the last frame.
func (r *Replay) SetLoop(loop bool) {
	r.loop = loop
}

// SetWarmup reports n not-ready frames before playback starts.
func (r *Replay) SetWarmup(n int) {
	r.warmup = n
}

// Len returns the number of recorded frames.
func (r *Replay) Len() int {
	return len(r.frames)
}

// Next returns the next recorded frame. After the end, frames carry no hand
// unless looping.
func (r *Replay) Next() Frame {
	if r.warmup > 0 {
		r.warmup--
		return Frame{}
	}
	if r.pos >= len(r.frames) {
		if !r.loop || len(r.frames) == 0 {
			return Frame{Ready: true}
		}
		r.pos = 0
	}
	hand := r.frames[r.pos]
	r.pos++
	if hand != nil && !hand.Valid() {
		hand = nil
	}
	return Frame{Ready: true, Hand: hand}
}

// WriteRecording writes frames as landmark rows. Nil frames produce no rows.
func WriteRecording(w io.Writer, frames []*gesture.Landmarks) error {
	var rows []LandmarkRow
	for i, lm := range frames {
		if lm == nil {
			continue
		}
		for p, v := range lm {
			rows = append(rows, LandmarkRow{Frame: i, Point: p, X: v.X, Y: v.Y, Z: v.Z})
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing landmark rows: %w", err)
	}
	return nil
}

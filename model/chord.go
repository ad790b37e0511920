package model

import (
	"fmt"

	"github.com/jsphweid/harmonet/pitch"
)

// ChordEvent is one annotated chord handed to a texture template. Duration
// is in quarter lengths; Intervals holds the interval labels between
// consecutive notes, so there is one fewer than there are notes.
type ChordEvent struct {
	Duration  float64
	Notes     []string
	Intervals []string
}

// SubEvent is one onset produced by a texture. Offset is relative to the
// start of the ChordEvent it came from.
type SubEvent struct {
	Offset    float64
	Duration  float64
	Notes     []string
	Intervals []string
	IsOnset   []bool
}

// End is where the sub-event stops sounding.
func (s SubEvent) End() float64 {
	return s.Offset + s.Duration
}

// ResolvedChord is the label reconstructed for one frame. RomanNumeral and
// ChordLabel are in internal notation ("-" for flats); use the roman
// package's Display before showing them.
type ResolvedChord struct {
	RomanNumeral string
	ChordLabel   string

	// NOTE: diagnostics only, the label above is what callers consume
	TonicizedKey pitch.Key
	Inversion    int
	Forced       bool
}

// Simultaneity is the set of MIDI keys sounding from one onset on.
type Simultaneity struct {
	// microseconds from the start of the file
	Offset int64
	Notes  []uint8
}

// Lowest returns the bass note of the simultaneity.
func (s Simultaneity) Lowest() uint8 {
	low := s.Notes[0]
	for _, n := range s.Notes[1:] {
		if n < low {
			low = n
		}
	}
	return low
}

// EventError records a failure scoped to one event or frame of a batch.
type EventError struct {
	Index int
	Err   error
}

func (e EventError) Error() string {
	return fmt.Sprintf("event %d: %v", e.Index, e.Err)
}

func (e EventError) Unwrap() error {
	return e.Err
}

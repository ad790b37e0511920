package transpose

import (
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
)

// Selector decides which transpositions of a piece keep every key it uses
// inside the key vocabulary the classifier can output.
type Selector struct {
	intervals  []pitch.Interval
	vocabulary pitch.KeySet
}

func NewSelector(intervals []pitch.Interval, vocabulary []pitch.Key) *Selector {
	ivs := make([]pitch.Interval, len(intervals))
	copy(ivs, intervals)
	return &Selector{intervals: ivs, vocabulary: pitch.NewKeySet(vocabulary...)}
}

// NewDefaultSelector uses the 24 interval classes and the 24 transposition
// keys.
func NewDefaultSelector() *Selector {
	return NewSelector(pitch.DefaultIntervals(), pitch.DefaultTranspositionKeys())
}

// SelectableIntervals returns, in enumeration order, every interval that
// sends all of keysUsed into the vocabulary. A single key falling outside
// rejects the interval. The identity is always first in the result.
//
// An empty keysUsed is vacuously satisfied by every interval, so the full
// enumeration comes back; callers that treat an empty piece as meaningless
// must check for it themselves.
func (s *Selector) SelectableIntervals(keysUsed []pitch.Key) []pitch.Interval {
	res := []pitch.Interval{pitch.Identity()}
	for _, iv := range s.intervals {
		if iv.IsIdentity() {
			continue
		}
		if s.keeps(keysUsed, iv) {
			res = append(res, iv)
		}
	}
	return res
}

func (s *Selector) keeps(keys []pitch.Key, iv pitch.Interval) bool {
	for _, k := range keys {
		if !s.vocabulary.Contains(k.Transpose(iv)) {
			return false
		}
	}
	return true
}

// ForSplit only augments training data; other splits stay untransposed.
func (s *Selector) ForSplit(split string, keysUsed []pitch.Key) []pitch.Interval {
	if split != model.SplitTraining {
		return []pitch.Interval{pitch.Identity()}
	}
	return s.SelectableIntervals(keysUsed)
}

// KeysUsed is the union of local and tonicized keys over a piece, in order of
// first appearance.
func KeysUsed(frames []model.Frame) []pitch.Key {
	seen := make(map[pitch.Key]bool)
	var res []pitch.Key
	add := func(k pitch.Key) {
		if !seen[k] {
			seen[k] = true
			res = append(res, k)
		}
	}
	for _, f := range frames {
		add(f.LocalKey)
		add(f.TonicizedKey)
	}
	return res
}

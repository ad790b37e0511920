// Package annotation resolves sequences of predicted frames and writes them
// out as RomanText.
package annotation

import (
	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/roman"
)

type Resolver interface {
	Resolve(q roman.Query) (model.ResolvedChord, error)
}

// Annotate resolves every frame in order. The figure of the first frame and
// of every frame where the local key changes carries the key as a prefix.
// Frames that fail are reported and skipped.
func Annotate(r Resolver, frames []model.Frame) ([]model.Annotation, []model.EventError) {
	log := logging.Default()

	var res []model.Annotation
	var failed []model.EventError
	var prev pitch.Key
	started := false
	for i, f := range frames {
		rc, err := r.Resolve(roman.QueryFromFrame(f))
		if err != nil {
			log.Warn("skipping frame", logging.Fields{"frame": i, "error": err.Error()})
			failed = append(failed, model.EventError{Index: i, Err: err})
			continue
		}
		a := model.Annotation{
			Index:        i,
			Measure:      f.Measure,
			Beat:         f.Beat,
			RomanNumeral: rc.RomanNumeral,
			ChordLabel:   rc.ChordLabel,
		}
		if !started || f.LocalKey != prev {
			a.KeyPrefix = f.LocalKey.String()
			prev = f.LocalKey
			started = true
		}
		res = append(res, a)
	}
	return res, failed
}

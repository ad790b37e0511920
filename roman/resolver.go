// Package roman turns predicted SATB pitches, keys and pitch-class sets into
// figured Roman numerals and chord labels.
package roman

import (
	"errors"
	"fmt"

	"github.com/jsphweid/harmonet/logging"
	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/vocabulary"
)

var ErrUnknownPitchClassSet = errors.New("pitch-class set not in chord vocabulary")

// Query is one frame to resolve. PitchClassSet is the classifier's own
// estimate, used when the SATB notes do not form a known chord.
type Query struct {
	Bass    string
	Tenor   string
	Alto    string
	Soprano string

	PitchClassSet pitch.PitchClassSet
	LocalKey      pitch.Key
	TonicizedKey  pitch.Key
}

// QueryFromFrame copies the resolver inputs out of a predicted frame.
func QueryFromFrame(f model.Frame) Query {
	return Query{
		Bass:          f.Bass,
		Tenor:         f.Tenor,
		Alto:          f.Alto,
		Soprano:       f.Soprano,
		PitchClassSet: f.PitchClassSet,
		LocalKey:      f.LocalKey,
		TonicizedKey:  f.TonicizedKey,
	}
}

type Resolver struct {
	vocab   vocabulary.ChordVocabulary
	policy  TonicizationPolicy
	degrees ScaleDegreeLabeler
	log     logging.Logger
}

type Option func(*Resolver)

func WithPolicy(p TonicizationPolicy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

func WithScaleDegrees(d ScaleDegreeLabeler) Option {
	return func(r *Resolver) {
		r.degrees = d
	}
}

func WithLogger(l logging.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

func NewResolver(vocab vocabulary.ChordVocabulary, opts ...Option) *Resolver {
	r := &Resolver{
		vocab:   vocab,
		policy:  ModalMixture{},
		degrees: RomanDegrees{},
		log:     logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lookup finds the entries for the SATB chord, falling back to the
// classifier's set when the voices are unparsable or spell an unknown chord.
func (r *Resolver) lookup(q Query) (pitch.PitchClassSet, vocabulary.Entries, error) {
	satb, err := pitch.FromSpellings(q.Bass, q.Tenor, q.Alto, q.Soprano)
	if err == nil {
		if entries, ok := r.vocab.Lookup(satb); ok && len(entries) > 0 {
			return satb, entries, nil
		}
	}
	if entries, ok := r.vocab.Lookup(q.PitchClassSet); ok && len(entries) > 0 {
		return q.PitchClassSet, entries, nil
	}
	return nil, nil, fmt.Errorf("%w: satb %v, fallback %v", ErrUnknownPitchClassSet, satb.Key(), q.PitchClassSet.Key())
}

func (r *Resolver) Resolve(q Query) (model.ResolvedChord, error) {
	set, entries, err := r.lookup(q)
	if err != nil {
		return model.ResolvedChord{}, err
	}

	tonicized := q.TonicizedKey
	entry, ok := entries.Get(tonicized)
	forced := !ok
	if forced {
		candidates := entries.Keys()
		tonicized = r.policy.ForceTonicization(q.LocalKey, candidates)
		if entry, ok = entries.Get(tonicized); !ok {
			tonicized = candidates[0]
			entry = entries[0]
		}
		r.log.Debug("forced tonicization", logging.Fields{
			"pcset":     set.Key(),
			"predicted": q.TonicizedKey.String(),
			"chosen":    tonicized.String(),
		})
	}

	inversion := 0
	if bass, err := pitch.NormalizeName(q.Bass); err == nil {
		for i, tone := range entry.Chord {
			if tone == bass {
				inversion = i
				break
			}
		}
	}
	fig, err := NewFigure(ChordTypeOf(len(set)), inversion)
	if err != nil {
		fig = Figure{chordType: ChordTypeOf(len(set))}
	}

	rn := fig.Apply(entry.RomanNumeral)
	if tonicized != q.LocalKey {
		rn += "/" + r.degrees.ScaleDegree(q.LocalKey, tonicized)
	}

	label := entry.Chord[0] + entry.Quality
	if fig.Inversion() != 0 {
		label += "/" + entry.Chord[fig.Inversion()]
	}

	return model.ResolvedChord{
		RomanNumeral: rn,
		ChordLabel:   label,
		TonicizedKey: tonicized,
		Inversion:    fig.Inversion(),
		Forced:       forced,
	}, nil
}

// ResolveAll resolves every frame, recording failures per frame.
func (r *Resolver) ResolveAll(frames []model.Frame) ([]model.ResolvedChord, []model.EventError) {
	res := make([]model.ResolvedChord, len(frames))
	var failed []model.EventError
	for i, f := range frames {
		rc, err := r.Resolve(QueryFromFrame(f))
		if err != nil {
			r.log.Warn("could not resolve frame", logging.Fields{"frame": i, "error": err.Error()})
			failed = append(failed, model.EventError{Index: i, Err: err})
			continue
		}
		res[i] = rc
	}
	return res, failed
}

package model

import "github.com/jsphweid/harmonet/pitch"

const (
	SplitTraining   = "training"
	SplitValidation = "validation"
	SplitTest       = "test"
)

// Frame is one predicted moment: SATB spellings, the classifier's own
// pitch-class-set estimate, and the local and tonicized keys.
type Frame struct {
	Bass          string
	Tenor         string
	Alto          string
	Soprano       string
	PitchClassSet pitch.PitchClassSet
	LocalKey      pitch.Key
	TonicizedKey  pitch.Key

	Measure int
	Beat    float64
}

// Annotation is a resolved frame ready for presentation. KeyPrefix is set
// only on frames where the local key changes.
type Annotation struct {
	Index        int
	Measure      int
	Beat         float64
	KeyPrefix    string
	RomanNumeral string
	ChordLabel   string
}

// Figure is the Roman numeral with the key prefix, e.g. "G:V7" or "I6".
func (a Annotation) Figure() string {
	if a.KeyPrefix == "" {
		return a.RomanNumeral
	}
	return a.KeyPrefix + ":" + a.RomanNumeral
}

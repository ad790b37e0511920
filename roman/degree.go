package roman

import (
	"strings"

	"github.com/jsphweid/harmonet/pitch"
)

// ScaleDegreeLabeler names the tonicized key relative to the local key,
// as written after the slash of a secondary figure.
type ScaleDegreeLabeler interface {
	ScaleDegree(local, tonicized pitch.Key) string
}

var numerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

const letters = "CDEFGAB"

// RomanDegrees labels the tonicized tonic with a Roman numeral on the local
// key's scale (natural minor for minor keys). Lowercase marks a minor
// tonicization; "#" and "-" mark a chromatically altered degree.
type RomanDegrees struct{}

func (RomanDegrees) ScaleDegree(local, tonicized pitch.Key) string {
	from := strings.IndexByte(letters, local.Tonic.Letter)
	to := strings.IndexByte(letters, tonicized.Tonic.Letter)
	degree := ((to-from)%7 + 7) % 7

	expected := local.Scale()[degree].PitchClass()
	diff := (int(tonicized.Tonic.PitchClass()) - int(expected) + 12) % 12
	if diff > 6 {
		diff -= 12
	}

	var prefix string
	if diff > 0 {
		prefix = strings.Repeat("#", diff)
	} else {
		prefix = strings.Repeat("-", -diff)
	}

	numeral := numerals[degree]
	if tonicized.Minor {
		numeral = strings.ToLower(numeral)
	}
	return prefix + numeral
}

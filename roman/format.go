package roman

import (
	"strings"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
)

func flats(s string) string {
	return strings.ReplaceAll(s, "-", "b")
}

// FormatChordLabel renders a chord label for people. A trailing "maj" is
// dropped, so "Cmaj" becomes "C" while "Cmaj/E" is kept, and flats are
// written with "b".
func FormatChordLabel(label string) string {
	return flats(strings.TrimSuffix(label, "maj"))
}

// FormatRomanNumeral renders a figure for people. A tonic of the tonic
// collapses to "I", with or without a key prefix.
func FormatRomanNumeral(rn string) string {
	prefix, figure := "", rn
	if i := strings.LastIndexByte(rn, ':'); i >= 0 {
		prefix, figure = rn[:i+1], rn[i+1:]
	}
	if figure == "I/I" {
		figure = "I"
	}
	return flats(prefix + figure)
}

func FormatKey(k pitch.Key) string {
	return flats(k.String())
}

// Display returns a copy of rc with both labels formatted for output.
func Display(rc model.ResolvedChord) model.ResolvedChord {
	rc.RomanNumeral = FormatRomanNumeral(rc.RomanNumeral)
	rc.ChordLabel = FormatChordLabel(rc.ChordLabel)
	return rc
}

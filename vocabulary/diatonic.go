package vocabulary

import (
	"strings"

	"github.com/jsphweid/harmonet/pitch"
)

var numerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

type quality struct {
	name   string
	suffix string
	lower  bool
}

// keyed by semitones above the root: third, fifth and (for sevenths) seventh
var triadQualities = map[[2]int]quality{
	{4, 7}: {"maj", "", false},
	{3, 7}: {"min", "", true},
	{3, 6}: {"dim", "o", true},
	{4, 8}: {"aug", "+", false},
}

var seventhQualities = map[[3]int]quality{
	{4, 7, 11}: {"maj7", "7", false},
	{4, 7, 10}: {"7", "7", false},
	{3, 7, 10}: {"min7", "7", true},
	{3, 7, 11}: {"minmaj7", "7", true},
	{3, 6, 10}: {"hdim7", "ø7", true},
	{3, 6, 9}:  {"dim7", "o7", true},
	{4, 8, 11}: {"augmaj7", "+7", false},
	{4, 8, 10}: {"aug7", "+7", false},
}

func above(root, tone pitch.Spelling) int {
	return (int(tone.PitchClass()) - int(root.PitchClass()) + 12) % 12
}

// Diatonic builds a vocabulary of the triads and seventh chords on every
// degree of the given keys. Minor keys use natural minor except on V and
// vii, which take the raised leading tone.
func Diatonic(keys []pitch.Key) *Table {
	var records []Record
	seen := make(map[pitch.Key]bool)
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		for _, size := range []int{3, 4} {
			for degree := 0; degree < 7; degree++ {
				if r, ok := diatonicRecord(k, degree, size); ok {
					records = append(records, r)
				}
			}
		}
	}
	t, err := NewTable(records)
	if err != nil {
		// records are generated from valid keys; a failure here is a bug
		panic(err)
	}
	return t
}

func diatonicRecord(k pitch.Key, degree, size int) (Record, bool) {
	scale := k.Scale()
	if k.Minor && (degree == 4 || degree == 6) {
		scale[6].Accidental++
	}

	tones := make([]pitch.Spelling, size)
	for i := range tones {
		tones[i] = scale[(degree+2*i)%7]
	}
	root := tones[0]

	var q quality
	var ok bool
	if size == 3 {
		q, ok = triadQualities[[2]int{above(root, tones[1]), above(root, tones[2])}]
	} else {
		q, ok = seventhQualities[[3]int{above(root, tones[1]), above(root, tones[2]), above(root, tones[3])}]
	}
	if !ok {
		return Record{}, false
	}

	numeral := numerals[degree]
	if q.lower {
		numeral = strings.ToLower(numeral)
	}

	chord := make([]string, size)
	pcs := make([]int, size)
	for i, tone := range tones {
		chord[i] = tone.Name()
		pcs[i] = int(tone.PitchClass())
	}
	return Record{
		PitchClassSet: pcs,
		Key:           k.String(),
		RomanNumeral:  numeral + q.suffix,
		Chord:         chord,
		Quality:       q.name,
	}, true
}

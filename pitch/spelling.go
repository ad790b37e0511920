package pitch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSpelling = errors.New("invalid pitch spelling")

const letters = "CDEFGAB"

// pitch class of each natural letter, indexed like letters
var naturals = [7]int{0, 2, 4, 5, 7, 9, 11}

const defaultOctave = 4

// Spelling is a note name with an optional octave. Flats are stored as a
// negative Accidental and rendered with the "-" marker.
type Spelling struct {
	Letter     byte
	Accidental int
	Octave     int
	HasOctave  bool
}

func mod12(n int) int {
	n %= 12
	if n < 0 {
		n += 12
	}
	return n
}

// wrapAccidental maps a semitone difference onto the closest accidental.
func wrapAccidental(d int) int {
	d = mod12(d)
	if d > 6 {
		d -= 12
	}
	return d
}

func letterIndex(l byte) int {
	return strings.IndexByte(letters, l)
}

// ParseSpelling accepts names such as "C4", "E-", "Eb3", "F#" and "B--2".
// Both "-" and "b" (after the letter) mark a flat.
func ParseSpelling(s string) (Spelling, error) {
	var sp Spelling
	s = strings.TrimSpace(s)
	if s == "" {
		return sp, fmt.Errorf("%w: empty", ErrInvalidSpelling)
	}
	l := strings.ToUpper(s[:1])[0]
	if letterIndex(l) < 0 {
		return sp, fmt.Errorf("%w: %q", ErrInvalidSpelling, s)
	}
	sp.Letter = l

	i := 1
AccidentalLoop:
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			sp.Accidental++
		case '-', 'b':
			sp.Accidental--
		default:
			break AccidentalLoop
		}
	}

	if rest := s[i:]; rest != "" {
		octave, err := strconv.Atoi(rest)
		if err != nil || octave < 0 {
			return Spelling{}, fmt.Errorf("%w: %q", ErrInvalidSpelling, s)
		}
		sp.Octave = octave
		sp.HasOctave = true
	}
	return sp, nil
}

// MustSpelling is ParseSpelling for literals known to be valid.
func MustSpelling(s string) Spelling {
	sp, err := ParseSpelling(s)
	if err != nil {
		panic(err)
	}
	return sp
}

func spell(letterIdx int, pc int) Spelling {
	letterIdx = ((letterIdx % 7) + 7) % 7
	return Spelling{
		Letter:     letters[letterIdx],
		Accidental: wrapAccidental(pc - naturals[letterIdx]),
	}
}

func (s Spelling) letterIndex() int {
	return letterIndex(s.Letter)
}

func (s Spelling) PitchClass() PitchClass {
	return PitchClass(mod12(naturals[s.letterIndex()] + s.Accidental))
}

// MIDI returns the MIDI key number, assuming octave 4 when none was given.
func (s Spelling) MIDI() int {
	octave := s.Octave
	if !s.HasOctave {
		octave = defaultOctave
	}
	return (octave+1)*12 + naturals[s.letterIndex()] + s.Accidental
}

func accidentalString(acc int) string {
	if acc > 0 {
		return strings.Repeat("#", acc)
	}
	return strings.Repeat("-", -acc)
}

// Name renders the spelling without octave, e.g. "E-".
func (s Spelling) Name() string {
	return string(s.Letter) + accidentalString(s.Accidental)
}

func (s Spelling) String() string {
	if s.HasOctave {
		return s.Name() + strconv.Itoa(s.Octave)
	}
	return s.Name()
}

// NormalizeName parses a note name and renders it back without octave, so
// "Eb4" and "E-" compare equal.
func NormalizeName(s string) (string, error) {
	sp, err := ParseSpelling(s)
	if err != nil {
		return "", err
	}
	return sp.Name(), nil
}

package roman

import (
	"fmt"
	"strings"
)

type ChordType int

const (
	Triad ChordType = iota
	Seventh
)

// ChordTypeOf maps a pitch-class set cardinality onto a chord type.
func ChordTypeOf(tones int) ChordType {
	if tones == 4 {
		return Seventh
	}
	return Triad
}

func (t ChordType) String() string {
	switch t {
	case Triad:
		return "triad"
	case Seventh:
		return "seventh"
	}
	return fmt.Sprintf("ChordType(%d)", int(t))
}

var suffixes = map[ChordType][]string{
	Triad:   {"", "6", "64"},
	Seventh: {"7", "65", "43", "2"},
}

// Figure is a chord type with an inversion that the type actually has.
// The zero value is a root-position triad.
type Figure struct {
	chordType ChordType
	inversion int
}

func NewFigure(t ChordType, inversion int) (Figure, error) {
	table, ok := suffixes[t]
	if !ok {
		return Figure{}, fmt.Errorf("unknown chord type %v", t)
	}
	if inversion < 0 || inversion >= len(table) {
		return Figure{}, fmt.Errorf("a %v has no inversion %d", t, inversion)
	}
	return Figure{chordType: t, inversion: inversion}, nil
}

func (f Figure) Type() ChordType { return f.chordType }
func (f Figure) Inversion() int  { return f.inversion }

// Suffix is the figured-bass suffix, e.g. "6" or "43".
func (f Figure) Suffix() string {
	return suffixes[f.chordType][f.inversion]
}

// Apply adds the inversion to a root-position figure. Seventh-chord suffixes
// replace the "7" already present in base; triad suffixes are appended.
func (f Figure) Apply(base string) string {
	suffix := f.Suffix()
	switch f.chordType {
	case Seventh:
		if f.inversion == 0 {
			return base
		}
		return strings.ReplaceAll(base, "7", suffix)
	default:
		return base + suffix
	}
}

package pitch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PitchClass is a note identity modulo octave, 0-11.
type PitchClass uint8

// PitchClassSet is sorted ascending with no duplicates. Build it with
// NewPitchClassSet to keep that invariant.
type PitchClassSet []PitchClass

func NewPitchClassSet(pcs ...PitchClass) PitchClassSet {
	seen := make(map[PitchClass]bool)
	var res PitchClassSet
	for _, pc := range pcs {
		pc = PitchClass(mod12(int(pc)))
		if seen[pc] {
			continue
		}
		seen[pc] = true
		res = append(res, pc)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

// FromSpellings builds the set sounded by the given note names.
func FromSpellings(names ...string) (PitchClassSet, error) {
	pcs := make([]PitchClass, 0, len(names))
	for _, name := range names {
		sp, err := ParseSpelling(name)
		if err != nil {
			return nil, err
		}
		pcs = append(pcs, sp.PitchClass())
	}
	return NewPitchClassSet(pcs...), nil
}

// ParsePitchClassSet reads "0-4-7", "0 4 7", "[0, 4, 7]" or "(0, 4, 7)".
func ParsePitchClassSet(s string) (PitchClassSet, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '-', ',', ' ', '\t', '(', ')', '[', ']':
			return true
		}
		return false
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty pitch-class set %q", s)
	}
	pcs := make([]PitchClass, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 11 {
			return nil, fmt.Errorf("invalid pitch class %q in %q", f, s)
		}
		pcs = append(pcs, PitchClass(n))
	}
	return NewPitchClassSet(pcs...), nil
}

// Key is the canonical lookup string, e.g. "0-4-7".
func (s PitchClassSet) Key() string {
	var res string
	for i, pc := range s {
		res += strconv.Itoa(int(pc))
		if i < len(s)-1 {
			res += "-"
		}
	}
	return res
}

func (s PitchClassSet) Contains(pc PitchClass) bool {
	for _, v := range s {
		if v == pc {
			return true
		}
	}
	return false
}

func (s PitchClassSet) Equal(o PitchClassSet) bool {
	return s.Key() == o.Key()
}

var sharpNames = [12]string{"C", "C#", "D", "E-", "E", "F", "F#", "G", "A-", "A", "B-", "B"}

// Name is a default spelling for the pitch class, used when no key context
// says how to spell it.
func (pc PitchClass) Name() string {
	return sharpNames[int(pc)%12]
}

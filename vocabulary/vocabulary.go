// Package vocabulary holds the chord vocabulary: for every known pitch-class
// set, the keys in which it has a Roman-numeral reading, with the figure,
// the chord-tone spelling and the chord quality.
//
// A Table is built once and never mutated. Lookups are safe from any number
// of goroutines.
package vocabulary

import (
	"fmt"

	"github.com/jsphweid/harmonet/pitch"
)

// Entry is the reading of one pitch-class set in one tonicized key.
// Chord is ordered root first, then ascending by thirds.
type Entry struct {
	Key          pitch.Key
	RomanNumeral string
	Chord        []string
	Quality      string
}

// Entries keeps the registration order, which is the candidate order handed
// to the tonicization policy.
type Entries []Entry

func (e Entries) Get(k pitch.Key) (Entry, bool) {
	for _, entry := range e {
		if entry.Key == k {
			return entry, true
		}
	}
	return Entry{}, false
}

func (e Entries) Keys() []pitch.Key {
	res := make([]pitch.Key, 0, len(e))
	for _, entry := range e {
		res = append(res, entry.Key)
	}
	return res
}

type ChordVocabulary interface {
	Lookup(set pitch.PitchClassSet) (Entries, bool)
}

// Record is the serialized form of one Entry.
type Record struct {
	PitchClassSet []int    `json:"pcset"`
	Key           string   `json:"key"`
	RomanNumeral  string   `json:"rn"`
	Chord         []string `json:"chord"`
	Quality       string   `json:"quality"`
}

type Table struct {
	entries map[string]Entries
	order   []string
}

var _ ChordVocabulary = (*Table)(nil)

func NewTable(records []Record) (*Table, error) {
	t := &Table{entries: make(map[string]Entries)}
	for i, r := range records {
		pcs := make([]pitch.PitchClass, 0, len(r.PitchClassSet))
		for _, n := range r.PitchClassSet {
			if n < 0 || n > 11 {
				return nil, fmt.Errorf("record %d: pitch class %d out of range", i, n)
			}
			pcs = append(pcs, pitch.PitchClass(n))
		}
		set := pitch.NewPitchClassSet(pcs...)
		if len(set) == 0 {
			return nil, fmt.Errorf("record %d: empty pitch-class set", i)
		}
		key, err := pitch.ParseKey(r.Key)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if len(r.Chord) == 0 {
			return nil, fmt.Errorf("record %d: empty chord spelling", i)
		}
		chord := make([]string, len(r.Chord))
		for j, name := range r.Chord {
			if chord[j], err = pitch.NormalizeName(name); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}

		setKey := set.Key()
		existing, ok := t.entries[setKey]
		if !ok {
			t.order = append(t.order, setKey)
		}
		if _, dup := existing.Get(key); dup {
			return nil, fmt.Errorf("record %d: duplicate entry for %v in %v", i, setKey, key)
		}
		t.entries[setKey] = append(existing, Entry{
			Key:          key,
			RomanNumeral: r.RomanNumeral,
			Chord:        chord,
			Quality:      r.Quality,
		})
	}
	return t, nil
}

// Lookup returns a copy of the entry list; the chord spellings inside are
// shared and must not be modified.
func (t *Table) Lookup(set pitch.PitchClassSet) (Entries, bool) {
	e, ok := t.entries[set.Key()]
	if !ok {
		return nil, false
	}
	res := make(Entries, len(e))
	copy(res, e)
	return res, true
}

// Len is the number of distinct pitch-class sets.
func (t *Table) Len() int {
	return len(t.order)
}

// Records flattens the table back into its serialized form.
func (t *Table) Records() []Record {
	var res []Record
	for _, setKey := range t.order {
		set, _ := pitch.ParsePitchClassSet(setKey)
		ints := make([]int, len(set))
		for i, pc := range set {
			ints[i] = int(pc)
		}
		for _, e := range t.entries[setKey] {
			chord := make([]string, len(e.Chord))
			copy(chord, e.Chord)
			res = append(res, Record{
				PitchClassSet: ints,
				Key:           e.Key.String(),
				RomanNumeral:  e.RomanNumeral,
				Chord:         chord,
				Quality:       e.Quality,
			})
		}
	}
	return res
}

// Package chord reduces a MIDI file to the sets of notes sounding together,
// and turns those sets into frames the resolver understands.
package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/vocabulary"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8{}, notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	note      uint8
}

func sounding(pressed map[uint8]bool) []uint8 {
	notes := make([]uint8, 0, len(pressed))
	for note := range pressed {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	return notes
}

// Simultaneities lists, for every onset in the file, the notes sounding
// once all events at that instant have been applied. Offsets are in
// microseconds; results are sorted by time.
func Simultaneities(s *smf.SMF) []model.Simultaneity {
	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := gomidi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{offset: s.TimeAt(absTicks), note: key})
			case msg.GetNoteEnd(&channel, &key):
				reducedEvents = append(reducedEvents, reducedEvent{offset: s.TimeAt(absTicks), isNoteOff: true, note: key})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	var res []model.Simultaneity
	pressed := make(map[uint8]bool)
	for i, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		last := i == len(reducedEvents)-1 || reducedEvents[i+1].offset != evt.offset
		if last && len(pressed) > 0 && onsetAt(reducedEvents, evt.offset) {
			res = append(res, model.Simultaneity{Offset: evt.offset, Notes: sounding(pressed)})
		}
	}
	return res
}

func onsetAt(events []reducedEvent, offset int64) bool {
	i := sort.Search(len(events), func(i int) bool { return events[i].offset >= offset })
	for ; i < len(events) && events[i].offset == offset; i++ {
		if !events[i].isNoteOff {
			return true
		}
	}
	return false
}

// Frame builds a resolver frame for a simultaneity heard in key. Only the
// bass voice is known, so it is spelled as the matching tone of the chord's
// reading in key (or in the first key the vocabulary lists) and the upper
// voices are left empty; the resolver then works from the pitch-class set.
func Frame(sim model.Simultaneity, key pitch.Key, vocab vocabulary.ChordVocabulary) model.Frame {
	pcs := make([]pitch.PitchClass, len(sim.Notes))
	for i, n := range sim.Notes {
		pcs[i] = pitch.PitchClass(n % 12)
	}
	set := pitch.NewPitchClassSet(pcs...)
	bassPc := pitch.PitchClass(sim.Lowest() % 12)

	bass := bassPc.Name()
	if entries, ok := vocab.Lookup(set); ok && len(entries) > 0 {
		entry, found := entries.Get(key)
		if !found {
			entry = entries[0]
		}
		for _, tone := range entry.Chord {
			if sp, err := pitch.ParseSpelling(tone); err == nil && sp.PitchClass() == bassPc {
				bass = tone
				break
			}
		}
	}

	return model.Frame{
		Bass:          bass,
		PitchClassSet: set,
		LocalKey:      key,
		TonicizedKey:  key,
	}
}

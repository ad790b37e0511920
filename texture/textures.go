package texture

import "github.com/jsphweid/harmonet/model"

// Texture spreads one chord over sub-onsets. Expand is only called with a
// duration and note count the texture lists as supported.
type Texture interface {
	Name() string
	Durations() []float64
	NoteCounts() []int
	Expand(ev model.ChordEvent) []model.SubEvent
}

func standardDurations() []float64 { return []float64{4.0, 2.0, 1.0} }
func standardNoteCounts() []int    { return []int{3, 4} }

// onset builds a sub-event in which every note is struck.
func onset(offset, duration float64, notes, intervals []string) model.SubEvent {
	s := model.SubEvent{
		Offset:    offset,
		Duration:  duration,
		Notes:     append([]string{}, notes...),
		Intervals: append([]string{}, intervals...),
		IsOnset:   make([]bool, len(notes)),
	}
	for i := range s.IsOnset {
		s.IsOnset[i] = true
	}
	return s
}

func pick(notes []string, order ...int) []string {
	res := make([]string, len(order))
	for i, idx := range order {
		res[i] = notes[idx]
	}
	return res
}

// BassSplit strikes the bass alone, then the upper notes together.
type BassSplit struct{}

func (BassSplit) Name() string         { return "BassSplit" }
func (BassSplit) Durations() []float64 { return standardDurations() }
func (BassSplit) NoteCounts() []int    { return standardNoteCounts() }

func (BassSplit) Expand(ev model.ChordEvent) []model.SubEvent {
	half := ev.Duration / 2
	return []model.SubEvent{
		onset(0, half, ev.Notes[:1], nil),
		onset(half, half, ev.Notes[1:], ev.Intervals[1:]),
	}
}

// Alberti arpeggiates the chord in four equal single-note onsets.
type Alberti struct{}

var albertiOrder = map[int][]int{
	3: {0, 2, 1, 2},
	4: {0, 3, 1, 2},
}

func (Alberti) Name() string         { return "Alberti" }
func (Alberti) Durations() []float64 { return standardDurations() }
func (Alberti) NoteCounts() []int    { return standardNoteCounts() }

func (Alberti) Expand(ev model.ChordEvent) []model.SubEvent {
	q := ev.Duration / 4
	order := albertiOrder[len(ev.Notes)]
	res := make([]model.SubEvent, len(order))
	for i, idx := range order {
		res[i] = onset(float64(i)*q, q, ev.Notes[idx:idx+1], nil)
	}
	return res
}

// Syncopation is a short-long-short pattern. It needs at least a half note
// to be playable, so whole-beat chords are not supported.
type Syncopation struct{}

func (Syncopation) Name() string         { return "Syncopation" }
func (Syncopation) Durations() []float64 { return []float64{4.0, 2.0} }
func (Syncopation) NoteCounts() []int    { return standardNoteCounts() }

func (Syncopation) Expand(ev model.ChordEvent) []model.SubEvent {
	q := ev.Duration / 4
	n := ev.Notes
	if len(n) == 3 {
		return []model.SubEvent{
			onset(0, q, pick(n, 2), nil),
			onset(q, 2*q, pick(n, 0), nil),
			onset(3*q, q, pick(n, 1), nil),
		}
	}
	return []model.SubEvent{
		onset(0, q, pick(n, 3), nil),
		onset(q, 2*q, n[:3], ev.Intervals[:2]),
		onset(3*q, q, n[:3], ev.Intervals[:2]),
	}
}

// BlockChord sounds every note together for the whole duration.
type BlockChord struct{}

func (BlockChord) Name() string         { return "BlockChord" }
func (BlockChord) Durations() []float64 { return standardDurations() }
func (BlockChord) NoteCounts() []int    { return standardNoteCounts() }

func (BlockChord) Expand(ev model.ChordEvent) []model.SubEvent {
	return []model.SubEvent{onset(0, ev.Duration, ev.Notes, ev.Intervals)}
}

// builtins is the static registry; adding a texture means adding it here.
func builtins() []Texture {
	return []Texture{BassSplit{}, Alberti{}, Syncopation{}, BlockChord{}}
}

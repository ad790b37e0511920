package texture

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jsphweid/harmonet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always picks the same index.
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

var triad = model.ChordEvent{
	Duration:  2.0,
	Notes:     []string{"C4", "E4", "G4"},
	Intervals: []string{"M3", "m3"},
}

var seventh = model.ChordEvent{
	Duration:  4.0,
	Notes:     []string{"G3", "B3", "D4", "F4"},
	Intervals: []string{"M3", "m3", "m3"},
}

func allTrue(n int) []bool {
	res := make([]bool, n)
	for i := range res {
		res[i] = true
	}
	return res
}

func TestBlockChordTriad(t *testing.T) {
	subs, err := NewEngine().Apply(triad, "BlockChord")
	require.NoError(t, err)
	assert.Equal(t, []model.SubEvent{{
		Offset:    0,
		Duration:  2.0,
		Notes:     []string{"C4", "E4", "G4"},
		Intervals: []string{"M3", "m3"},
		IsOnset:   allTrue(3),
	}}, subs)
}

func TestBassSplitTriad(t *testing.T) {
	subs, err := NewEngine().Apply(triad, "BassSplit")
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert := assert.New(t)
	assert.Equal(0.0, subs[0].Offset)
	assert.Equal(1.0, subs[0].Duration)
	assert.Equal([]string{"C4"}, subs[0].Notes)
	assert.Empty(subs[0].Intervals)

	assert.Equal(1.0, subs[1].Offset)
	assert.Equal(1.0, subs[1].Duration)
	assert.Equal([]string{"E4", "G4"}, subs[1].Notes)
	assert.Equal([]string{"m3"}, subs[1].Intervals)
}

func TestBassSplitSeventh(t *testing.T) {
	subs, err := NewEngine().Apply(seventh, "BassSplit")
	require.NoError(t, err)
	assert.Equal(t, []string{"B3", "D4", "F4"}, subs[1].Notes)
	assert.Equal(t, []string{"m3", "m3"}, subs[1].Intervals)
}

func notesOf(subs []model.SubEvent) [][]string {
	var res [][]string
	for _, s := range subs {
		res = append(res, s.Notes)
	}
	return res
}

func TestAlbertiOrder(t *testing.T) {
	e := NewEngine()
	subs, err := e.Apply(triad, "Alberti")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"C4"}, {"G4"}, {"E4"}, {"G4"}}, notesOf(subs))
	assert.Equal(t, 0.5, subs[1].Offset)
	for _, s := range subs {
		assert.Empty(t, s.Intervals)
	}

	subs, err = e.Apply(seventh, "Alberti")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"G3"}, {"F4"}, {"B3"}, {"D4"}}, notesOf(subs))
}

func TestSyncopation(t *testing.T) {
	e := NewEngine()
	subs, err := e.Apply(triad, "Syncopation")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"G4"}, {"C4"}, {"E4"}}, notesOf(subs))
	assert.Equal(t, []float64{0.5, 1.0, 0.5}, []float64{subs[0].Duration, subs[1].Duration, subs[2].Duration})

	subs, err = e.Apply(seventh, "Syncopation")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"F4"}, {"G3", "B3", "D4"}, {"G3", "B3", "D4"}}, notesOf(subs))
	assert.Equal(t, []string{"M3", "m3"}, subs[1].Intervals)
	assert.Equal(t, []string{"M3", "m3"}, subs[2].Intervals)
}

func TestSyncopationRejectsQuarterNote(t *testing.T) {
	ev := triad
	ev.Duration = 1.0
	_, err := NewEngine().Apply(ev, "Syncopation")
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestEveryBuiltinTilesEverySupportedShape(t *testing.T) {
	e := NewEngine()
	for _, tex := range e.Templates() {
		for _, d := range tex.Durations() {
			for _, n := range tex.NoteCounts() {
				name := fmt.Sprintf("%v/%v/%d", tex.Name(), d, n)
				t.Run(name, func(t *testing.T) {
					ev := probe(d, n)
					subs, err := e.Apply(ev, tex.Name())
					require.NoError(t, err)
					assert.True(t, Tiles(subs, d))
					for _, s := range subs {
						assert.Equal(t, allTrue(len(s.Notes)), s.IsOnset)
					}
				})
			}
		}
	}
}

func TestApplyErrors(t *testing.T) {
	e := NewEngine()

	_, err := e.Apply(triad, "Waltz")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	dyad := model.ChordEvent{Duration: 2.0, Notes: []string{"C4", "G4"}, Intervals: []string{"P5"}}
	_, err = e.Apply(dyad, "BlockChord")
	assert.ErrorIs(t, err, ErrUnsupportedShape)

	_, err = e.Apply(dyad, "")
	assert.ErrorIs(t, err, ErrNoApplicableTemplate)

	odd := triad
	odd.Duration = 3.0
	_, err = e.Apply(odd, "")
	assert.ErrorIs(t, err, ErrNoApplicableTemplate)

	bad := triad
	bad.Intervals = []string{"M3"}
	_, err = e.Apply(bad, "BlockChord")
	assert.ErrorIs(t, err, ErrInvalidEvent)

	bad = triad
	bad.Duration = 0
	_, err = e.Apply(bad, "")
	assert.ErrorIs(t, err, ErrInvalidEvent)

	// the name is checked before the event
	_, err = e.Apply(bad, "Waltz")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.NotErrorIs(t, err, ErrInvalidEvent)
}

func TestRandomChoiceUsesInjectedRand(t *testing.T) {
	ev := triad
	ev.Duration = 1.0

	// quarter-note triads: Alberti, BassSplit, BlockChord (Syncopation excluded)
	applicable := NewEngine().Applicable(1.0, 3)
	require.Len(t, applicable, 3)

	for i, tex := range applicable {
		got, err := NewEngine(WithRand(fixedRand(i))).Apply(ev, "")
		require.NoError(t, err)
		want, err := NewEngine().Apply(ev, tex.Name())
		require.NoError(t, err)
		assert.Equal(t, want, got, tex.Name())
	}
}

func TestSeededRandIsReproducible(t *testing.T) {
	a := NewEngine(WithRand(NewSeeded(7)))
	b := NewEngine(WithRand(NewSeeded(7)))
	for i := 0; i < 20; i++ {
		x, err := a.Apply(seventh, "")
		require.NoError(t, err)
		y, err := b.Apply(seventh, "")
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

type gappy struct{}

func (gappy) Name() string         { return "Gappy" }
func (gappy) Durations() []float64 { return []float64{2.0} }
func (gappy) NoteCounts() []int    { return []int{3} }
func (gappy) Expand(ev model.ChordEvent) []model.SubEvent {
	return []model.SubEvent{onset(0, ev.Duration/4, ev.Notes[:1], nil)}
}

func TestRegisterRejectsNonTilingTexture(t *testing.T) {
	e := NewEngine()
	err := e.Register(gappy{})
	assert.ErrorIs(t, err, ErrTilingViolation)
	assert.Len(t, e.Templates(), 4)

	assert.Error(t, e.Register(BlockChord{}))
}

func TestTiles(t *testing.T) {
	assert.False(t, Tiles(nil, 1))
	assert.False(t, Tiles([]model.SubEvent{{Offset: 0, Duration: 1}, {Offset: 0.5, Duration: 1}}, 2))
	assert.True(t, Tiles([]model.SubEvent{{Offset: 0, Duration: 1}, {Offset: 1, Duration: 1}}, 2))
}

func TestApplyAllKeepsPositionsAfterFailure(t *testing.T) {
	bad := model.ChordEvent{Duration: 1.0, Notes: []string{"C4"}}
	subs, failed := NewEngine().ApplyAll([]model.ChordEvent{triad, bad, triad}, "BlockChord")

	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Index)
	assert.ErrorIs(t, failed[0], ErrUnsupportedShape)

	require.Len(t, subs, 2)
	assert.Equal(t, 0.0, subs[0].Offset)
	assert.Equal(t, 3.0, subs[1].Offset)
}

func TestWriteCSV(t *testing.T) {
	subs, err := NewEngine().Apply(triad, "BassSplit")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, subs))

	want := "s_offset,s_duration,s_measure,s_notes,s_intervals,s_isOnset\n" +
		"0.0,1.0,,['C4'],[],[True]\n" +
		"1.0,1.0,,\"['E4', 'G4']\",['m3'],\"[True, True]\"\n"
	assert.Equal(t, want, buf.String())
}

func TestReadEvents(t *testing.T) {
	in := "duration,notes,intervals\n# comment\n2.0,C4 E4 G4,M3 m3\n4,G3 B3 D4 F4,M3 m3 m3\n"
	events, failed, err := ReadEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, events, 2)
	assert.Equal(t, triad, events[0])
	assert.Equal(t, seventh, events[1])

	_, _, err = ReadEvents(strings.NewReader("2.0\n"))
	assert.Error(t, err)
}

func TestReadEventsKeepsGoodRows(t *testing.T) {
	in := "duration,notes,intervals\n2.0,C4 E4 G4,M3 m3\nabc,C4 E4 G4,M3 m3\n4,G3 B3 D4 F4,M3 m3 m3\n"
	events, failed, err := ReadEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.ChordEvent{triad, seventh}, events)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Index)
	assert.Contains(t, failed[0].Error(), `line 3: bad duration "abc"`)
}

package annotation

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/roman"
	"github.com/jsphweid/harmonet/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const framesCSV = `measure,beat,bass,tenor,alto,soprano,pcset,local_key,tonicized_key
# the second frame has a bad voicing but a usable estimate
2,1,C3,G3,C4,E4,0-4-7,C,C
2,3,B2,X,D4,F4,2-5-7-11,C,C
3,1,D3,F#3,A3,C4,,C,G
3,3,C3,E3,G3,C4,,G,G
4,1,C#3,E3,A#3,C4,,G,G
`

func resolver() *roman.Resolver {
	return roman.NewResolver(vocabulary.Diatonic(pitch.DefaultTranspositionKeys()))
}

func readFrames(t *testing.T) []model.Frame {
	t.Helper()
	frames, failed, err := ReadFrames(strings.NewReader(framesCSV))
	require.NoError(t, err)
	require.Empty(t, failed)
	return frames
}

func TestReadFrames(t *testing.T) {
	frames := readFrames(t)
	require.Len(t, frames, 5)

	assert := assert.New(t)
	assert.Equal(2, frames[0].Measure)
	assert.Equal(3.0, frames[1].Beat)
	assert.Equal("B2", frames[1].Bass)
	assert.Equal(pitch.NewPitchClassSet(2, 5, 7, 11), frames[1].PitchClassSet)
	assert.Nil(frames[2].PitchClassSet)
	assert.Equal(pitch.MustKey("G"), frames[2].TonicizedKey)

	_, _, err := ReadFrames(strings.NewReader("1,1,C,E,G\n"))
	assert.Error(err)
}

func TestReadFramesKeepsGoodRows(t *testing.T) {
	in := "1,1,C3,G3,C4,E4,0-4-7,C,C\n1,3,E3,G3,C4,C5,,C,H\nx,1,C3,G3,D4,F4,,C,C\n2,3,B2,G3,D4,F4,,C,C\n"
	frames, failed, err := ReadFrames(strings.NewReader(in))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, frames, 2)
	assert.Equal(1.0, frames[0].Beat)
	assert.Equal("B2", frames[1].Bass)

	require.Len(t, failed, 2)
	assert.Equal(1, failed[0].Index)
	assert.ErrorIs(failed[0], pitch.ErrInvalidKey)
	assert.Contains(failed[0].Error(), "line 2")
	assert.Equal(2, failed[1].Index)
	assert.Contains(failed[1].Error(), `bad measure "x"`)
}

func TestAnnotate(t *testing.T) {
	anns, failed := Annotate(resolver(), readFrames(t))

	require.Len(t, failed, 1)
	assert.Equal(t, 4, failed[0].Index)
	assert.ErrorIs(t, failed[0], roman.ErrUnknownPitchClassSet)

	require.Len(t, anns, 4)
	figures := make([]string, len(anns))
	for i, a := range anns {
		figures[i] = a.Figure()
	}
	assert.Equal(t, []string{"C:I", "V65", "V7/V", "G:IV"}, figures)
	assert.Equal(t, "G7/B", anns[1].ChordLabel)
	assert.Equal(t, "D7", anns[2].ChordLabel)
}

type failing struct{}

func (failing) Resolve(roman.Query) (model.ResolvedChord, error) {
	return model.ResolvedChord{}, errors.New("boom")
}

func TestAnnotateContinuesAfterFailures(t *testing.T) {
	frames := readFrames(t)
	anns, failed := Annotate(failing{}, frames)
	assert.Empty(t, anns)
	assert.Len(t, failed, len(frames))
}

func TestWriteRomanText(t *testing.T) {
	anns := []model.Annotation{
		{Measure: 1, Beat: 1, KeyPrefix: "E-", RomanNumeral: "I"},
		{Measure: 1, Beat: 2.5, RomanNumeral: "V/I"},
		{Measure: 2, Beat: 1, KeyPrefix: "c", RomanNumeral: "V/-VII"},
		{Measure: 2, Beat: 3.3333, RomanNumeral: "I/I"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteRomanText(&buf, Header{Title: "Chorale\nsecond line", Analyst: "someone"}, anns))

	want := "Composer: Unknown\n" +
		"Title: Chorale\n" +
		"Analyst: someone\n" +
		"\n" +
		"m1 Eb: b1 I b2.5 V/I\n" +
		"m2 c: b1 V/bVII b3.333 I\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteRomanTextInjectsDownbeat(t *testing.T) {
	tests := []struct {
		name string
		anns []model.Annotation
		want string
	}{
		{
			name: "missing measure one",
			anns: []model.Annotation{{Measure: 3, Beat: 2, KeyPrefix: "G", RomanNumeral: "IV"}},
			want: "\nm1 G: b1 IV\nm3 b2 IV\n",
		},
		{
			name: "missing beat one",
			anns: []model.Annotation{{Measure: 1, Beat: 3, KeyPrefix: "G", RomanNumeral: "IV"}},
			want: "\nm1 G: b1 IV b3 IV\n",
		},
		{
			name: "pickup measure",
			anns: []model.Annotation{{Measure: 0, Beat: 4, KeyPrefix: "G", RomanNumeral: "V"}},
			want: "\nm0 G: b4 V\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteRomanText(&buf, Header{}, tt.anns))
			assert.True(t, strings.HasSuffix(buf.String(), "Analyst: harmonet\n"+tt.want), buf.String())
		})
	}
}

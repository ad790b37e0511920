package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jsphweid/harmonet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsMapsItemsBackToDataRows(t *testing.T) {
	r := rows[int]{
		items: []int{10, 30, 50},
		bad:   []model.EventError{{Index: 1}, {Index: 3}},
	}
	assert := assert.New(t)
	assert.Equal(0, r.row(0))
	assert.Equal(2, r.row(1))
	assert.Equal(4, r.row(2))
}

func TestRowsReportFailsOnlyWhenEverythingFailed(t *testing.T) {
	r := rows[int]{items: []int{1}, bad: []model.EventError{{Index: 0, Err: errors.New("bad")}}}
	assert.NoError(t, r.report("row", nil))
	assert.Error(t, r.report("row", []model.EventError{{Index: 0, Err: errors.New("worse")}}))
}

func TestResolveSkipsBadRows(t *testing.T) {
	in := "measure,beat,bass,tenor,alto,soprano,pcset,local_key,tonicized_key\n" +
		"1,1,C3,G3,C4,E4,0-4-7,C,C\n" +
		"1,3,E3,G3,C4,C5,,H,C\n" +
		"2,1,B2,G3,D4,F4,,C,C\n"
	var out bytes.Buffer
	require.NoError(t, Run([]string{"resolve"}, strings.NewReader(in), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"0", "1", "1", "C", "I", "C"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "2", "1", "C", "V65", "G7/B"}, strings.Fields(lines[2]))
}

func TestResolveFailsWhenNoRowParses(t *testing.T) {
	var out bytes.Buffer
	err := Run([]string{"resolve"}, strings.NewReader("1,1,C3,G3,C4,E4,0-4-7,C,H\n"), &out)
	assert.Error(t, err)
}

func TestTexturizeSkipsBadRows(t *testing.T) {
	in := "duration,notes,intervals\n" +
		"2.0,C4 E4 G4,M3 m3\n" +
		"abc,C4 E4 G4,M3 m3\n" +
		"4.0,G3 B3 D4 F4,M3 m3 m3\n"
	var out bytes.Buffer
	require.NoError(t, Run([]string{"texturize", "--template", "BlockChord", "--seed", "1"}, strings.NewReader(in), &out))
	assert.Equal(t, "s_offset,s_duration,s_measure,s_notes,s_intervals,s_isOnset\n"+
		"0.0,2.0,,\"['C4', 'E4', 'G4']\",\"['M3', 'm3']\",\"[True, True, True]\"\n"+
		"2.0,4.0,,\"['G3', 'B3', 'D4', 'F4']\",\"['M3', 'm3', 'm3']\",\"[True, True, True, True]\"\n", out.String())
}

func TestChromaCommand(t *testing.T) {
	in := "1,0,0,0,0,0,0,0,0,0,0,0\n0,0,0,0,1,0,0,0,0,0,0,0\n"
	var out bytes.Buffer
	require.NoError(t, Run([]string{"chroma", "--interval", "M2", "--shift", "0"}, strings.NewReader(in), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0,0,0,0,0,0,0,0,0,1,0,0,0,0,0,0,0,0,0", lines[0])
	assert.Equal(t, "0,0,0,0,0,0,0,0,0,0,0,0,0,1,0,0,0,0,0", lines[1])

	out.Reset()
	require.NoError(t, Run([]string{"chroma", "--interval=-m3"}, strings.NewReader(in), &out))
	assert.Equal(t, "0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,1,0,0", strings.SplitN(out.String(), "\n", 2)[0])
}

//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/harmonet/cmd"
	"github.com/jsphweid/harmonet/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const events = `duration,notes,intervals
2.0,C4 E4 G4,M3 m3
4.0,G3 B3 D4 F4,M3 m3 m3
`

const frames = `measure,beat,bass,tenor,alto,soprano,pcset,local_key,tonicized_key
1,1,C3,G3,C4,E4,0-4-7,C,C
1,3,E3,G3,C4,C5,,C,C
2,1,B2,G3,D4,F4,,C,C
`

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, cmd.Run(args, strings.NewReader(stdin), &out))
	return out.String()
}

func TestTexturize(t *testing.T) {
	out := run(t, events, "texturize", "--template", "BlockChord", "--seed", "1")
	assert.Equal(t, "s_offset,s_duration,s_measure,s_notes,s_intervals,s_isOnset\n"+
		"0.0,2.0,,\"['C4', 'E4', 'G4']\",\"['M3', 'm3']\",\"[True, True, True]\"\n"+
		"2.0,4.0,,\"['G3', 'B3', 'D4', 'F4']\",\"['M3', 'm3', 'm3']\",\"[True, True, True, True]\"\n", out)
}

func TestResolveAndAnnotate(t *testing.T) {
	out := run(t, frames, "resolve")
	assert.Contains(t, out, "key")
	assert.Contains(t, out, "I6")
	assert.Contains(t, out, "V65")
	assert.Contains(t, out, "G7/B")

	out = run(t, frames, "annotate", "--title", "Test", "--composer", "Nobody")
	assert.Contains(t, out, "Title: Test\n")
	assert.Contains(t, out, "m1 C: b1 I b3 I6\nm2 b1 V65\n")
}

func TestTranspositions(t *testing.T) {
	out := run(t, "", "transpositions", "--split", "training", "C", "a")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "P1\t0", lines[0])
	assert.Len(t, lines, 12)
}

func TestRenderThenAnalyze(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARMONET_OUT", dir)

	out := run(t, events, "render", "--template", "BlockChord", "--seed", "1")
	paths := strings.Fields(out)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, dir, filepath.Dir(p))
		assert.FileExists(t, p)
	}

	out = run(t, "", "analyze", "--key", "C", paths[1])
	assert.Contains(t, out, "V7")
	assert.Contains(t, out, "G7")

	out = run(t, "", "analyze", "--key", "C", "--max", "0", dir)
	assert.Equal(t, 2, strings.Count(out, "== "))
}

func TestVocabExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.gob")
	run(t, "", "vocab", "export", "--gob", path)

	tbl, err := vocabulary.Load(path)
	require.NoError(t, err)
	assert.Greater(t, tbl.Len(), 0)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

package texture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/harmonet/model"
)

var csvHeader = []string{"s_offset", "s_duration", "s_measure", "s_notes", "s_intervals", "s_isOnset"}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, v := range items {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func formatBools(flags []bool) string {
	parts := make([]string, len(flags))
	for i, b := range flags {
		parts[i] = "False"
		if b {
			parts[i] = "True"
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteCSV writes sub-events in the synthetic score table layout. The
// measure column is left empty; it is filled in by whoever places the
// texture in a score.
func WriteCSV(w io.Writer, subs []model.SubEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range subs {
		row := []string{
			formatFloat(s.Offset),
			formatFloat(s.Duration),
			"",
			formatList(s.Notes),
			formatList(s.Intervals),
			formatBools(s.IsOnset),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEvents parses chord events from CSV with the columns
// duration,notes,intervals. Notes and intervals are space separated; lines
// starting with '#' are skipped. A row with an unparsable duration is
// returned as a failure indexed by data row.
func ReadEvents(r io.Reader) ([]model.ChordEvent, []model.EventError, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var res []model.ChordEvent
	var failed []model.EventError
	row := 0
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := cr.FieldPos(0)
		if first && len(rec) > 0 && rec[0] == "duration" {
			continue
		}
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("line %d: expected duration,notes[,intervals]", line)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			failed = append(failed, model.EventError{Index: row, Err: fmt.Errorf("line %d: bad duration %q", line, rec[0])})
			row++
			continue
		}
		ev := model.ChordEvent{Duration: d, Notes: strings.Fields(rec[1])}
		if len(rec) > 2 {
			ev.Intervals = strings.Fields(rec[2])
		}
		res = append(res, ev)
		row++
	}
	return res, failed, nil
}

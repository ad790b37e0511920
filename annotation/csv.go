package annotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
)

// FrameColumns is the layout read by ReadFrames. pcset may be empty when
// the classifier gave no estimate.
var FrameColumns = []string{"measure", "beat", "bass", "tenor", "alto", "soprano", "pcset", "local_key", "tonicized_key"}

// ReadFrames parses predicted frames from CSV. A header row and lines
// starting with '#' are skipped. Rows whose values do not parse are
// returned as failures indexed by data row; only a malformed CSV stream
// fails the whole read.
func ReadFrames(r io.Reader) ([]model.Frame, []model.EventError, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = len(FrameColumns)
	cr.TrimLeadingSpace = true

	var res []model.Frame
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
		if first && rec[0] == FrameColumns[0] {
			continue
		}
		f, err := parseFrame(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			failed = append(failed, model.EventError{Index: row, Err: fmt.Errorf("line %d: %w", line, err)})
		} else {
			res = append(res, f)
		}
		row++
	}
	return res, failed, nil
}

func parseFrame(rec []string) (model.Frame, error) {
	var f model.Frame
	var err error
	if f.Measure, err = strconv.Atoi(strings.TrimSpace(rec[0])); err != nil {
		return f, fmt.Errorf("bad measure %q", rec[0])
	}
	if f.Beat, err = strconv.ParseFloat(strings.TrimSpace(rec[1]), 64); err != nil {
		return f, fmt.Errorf("bad beat %q", rec[1])
	}
	f.Bass, f.Tenor, f.Alto, f.Soprano = rec[2], rec[3], rec[4], rec[5]
	if s := strings.TrimSpace(rec[6]); s != "" {
		if f.PitchClassSet, err = pitch.ParsePitchClassSet(s); err != nil {
			return f, err
		}
	}
	if f.LocalKey, err = pitch.ParseKey(rec[7]); err != nil {
		return f, err
	}
	if f.TonicizedKey, err = pitch.ParseKey(rec[8]); err != nil {
		return f, err
	}
	return f, nil
}

package annotation

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/roman"
)

type Header struct {
	Composer string
	Title    string
	Analyst  string
}

func firstLine(s, fallback string) string {
	s = strings.TrimSpace(strings.SplitN(s, "\n", 2)[0])
	if s == "" {
		return fallback
	}
	return s
}

func formatBeat(beat float64) string {
	if math.Abs(beat-math.Round(beat)) < 0.001 {
		return strconv.Itoa(int(math.Round(beat)))
	}
	return strconv.FormatFloat(math.Round(beat*1000)/1000, 'f', -1, 64)
}

// withDownbeat makes sure the analysis starts on m1 b1, repeating the first
// chord there when the annotations start later. Pickup measures (m0) are
// left alone.
func withDownbeat(anns []model.Annotation) []model.Annotation {
	if len(anns) == 0 {
		return anns
	}
	first := anns[0]
	if first.Measure == 0 || (first.Measure == 1 && first.Beat == 1) {
		return anns
	}
	if first.Measure > 1 || first.Beat > 1 {
		injected := first
		injected.Measure, injected.Beat = 1, 1

		res := make([]model.Annotation, 0, len(anns)+1)
		res = append(res, injected)
		res = append(res, anns...)
		res[1].KeyPrefix = ""
		return res
	}
	return anns
}

// WriteRomanText writes the annotations as a RomanText document, one line
// per measure.
func WriteRomanText(w io.Writer, h Header, anns []model.Annotation) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Composer: %s\n", firstLine(h.Composer, "Unknown"))
	fmt.Fprintf(&b, "Title: %s\n", firstLine(h.Title, "Unknown"))
	fmt.Fprintf(&b, "Analyst: %s\n", firstLine(h.Analyst, "harmonet"))

	measure := -1
	for _, a := range withDownbeat(anns) {
		if a.Measure != measure {
			fmt.Fprintf(&b, "\nm%d", a.Measure)
			measure = a.Measure
		}
		if a.KeyPrefix != "" {
			fmt.Fprintf(&b, " %s:", roman.FormatRomanNumeral(a.KeyPrefix))
		}
		fmt.Fprintf(&b, " b%s %s", formatBeat(a.Beat), roman.FormatRomanNumeral(a.RomanNumeral))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

package model

type ResolveRequestBody struct {
	Frames []FrameBody `json:"frames"`
}

type FrameBody struct {
	Bass          string `json:"bass"`
	Tenor         string `json:"tenor"`
	Alto          string `json:"alto"`
	Soprano       string `json:"soprano"`
	PitchClassSet []int  `json:"pcset"`
	LocalKey      string `json:"local_key"`
	TonicizedKey  string `json:"tonicized_key"`
}

type ResolveResult struct {
	Index        int    `json:"index"`
	RomanNumeral string `json:"roman_numeral,omitempty"`
	ChordLabel   string `json:"chord_label,omitempty"`
	Forced       bool   `json:"forced,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ResolveResponse struct {
	RequestId string          `json:"request_id"`
	Results   []ResolveResult `json:"results"`
}

type TexturizeRequestBody struct {
	Template string          `json:"template"`
	Events   []ChordEventBody `json:"events"`
}

type ChordEventBody struct {
	Duration  float64  `json:"duration"`
	Notes     []string `json:"notes"`
	Intervals []string `json:"intervals"`
}

type SubEventBody struct {
	Offset    float64  `json:"offset"`
	Duration  float64  `json:"duration"`
	Notes     []string `json:"notes"`
	Intervals []string `json:"intervals"`
	IsOnset   []bool   `json:"is_onset"`
}

type TexturizeResult struct {
	Index     int            `json:"index"`
	SubEvents []SubEventBody `json:"sub_events,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type TexturizeResponse struct {
	RequestId string            `json:"request_id"`
	Results   []TexturizeResult `json:"results"`
}

type TranspositionsRequestBody struct {
	Keys  []string `json:"keys"`
	Split string   `json:"split"`
}

type TranspositionResult struct {
	Interval  string `json:"interval"`
	Semitones int    `json:"semitones"`
}

type TranspositionsResponse struct {
	Intervals []TranspositionResult `json:"intervals"`
}

type TemplateInfo struct {
	Name       string    `json:"name"`
	Durations  []float64 `json:"durations"`
	NoteCounts []int     `json:"note_counts"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

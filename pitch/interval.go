package pitch

import (
	"errors"
	"fmt"
)

var ErrUnknownInterval = errors.New("unknown interval class")

// Interval is a spelled transposition distance. Steps moves the letter name,
// Semitones moves the pitch; keeping both preserves enharmonic spelling.
type Interval struct {
	Name      string
	Steps     int
	Semitones int
}

var defaultIntervals = []Interval{
	{"P1", 0, 0},
	{"A1", 0, 1},
	{"d2", 1, 0},
	{"m2", 1, 1},
	{"M2", 1, 2},
	{"A2", 1, 3},
	{"d3", 2, 2},
	{"m3", 2, 3},
	{"M3", 2, 4},
	{"A3", 2, 5},
	{"d4", 3, 4},
	{"P4", 3, 5},
	{"A4", 3, 6},
	{"d5", 4, 6},
	{"P5", 4, 7},
	{"A5", 4, 8},
	{"d6", 5, 7},
	{"m6", 5, 8},
	{"M6", 5, 9},
	{"A6", 5, 10},
	{"d7", 6, 9},
	{"m7", 6, 10},
	{"M7", 6, 11},
	{"d8", 7, 11},
}

// DefaultIntervals returns the 24 interval classes in enumeration order.
func DefaultIntervals() []Interval {
	res := make([]Interval, len(defaultIntervals))
	copy(res, defaultIntervals)
	return res
}

func Identity() Interval {
	return defaultIntervals[0]
}

func (iv Interval) IsIdentity() bool {
	return iv.Steps == 0 && iv.Semitones == 0
}

// Shift is the semitone shift to apply to chroma features, in [-11, 11].
func (iv Interval) Shift() int {
	return iv.Semitones % 12
}

func (iv Interval) String() string {
	return iv.Name
}

func ParseInterval(name string) (Interval, error) {
	for _, iv := range defaultIntervals {
		if iv.Name == name {
			return iv, nil
		}
	}
	return Interval{}, fmt.Errorf("%w: %q", ErrUnknownInterval, name)
}

func ParseIntervals(names []string) ([]Interval, error) {
	res := make([]Interval, 0, len(names))
	for _, n := range names {
		iv, err := ParseInterval(n)
		if err != nil {
			return nil, err
		}
		res = append(res, iv)
	}
	return res, nil
}

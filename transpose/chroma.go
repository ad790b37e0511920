package transpose

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrShiftRange = errors.New("semitone shift out of range")
	ErrFrameWidth = errors.New("frame narrower than one octave")
)

const (
	octave = 12
	// register slots prepended to a bare 12-bin chroma so it lines up with
	// the 19-wide bass/chroma representations
	registerPad = 7
)

// NormalizedWidth is the width every 12-bin frame is padded to.
const NormalizedWidth = octave + registerPad

func checkShift(shift int) error {
	if shift < -11 || shift > 11 {
		return fmt.Errorf("%w: %d", ErrShiftRange, shift)
	}
	return nil
}

// Chroma circularly shifts the pitch-class axis of a frame by shift
// semitones: bin i moves to bin (i+shift) mod 12. The pitch-class axis is the
// last 12 channels; any leading channels are copied through untouched.
//
// A frame of exactly 12 channels is first padded with 7 leading zeros, so
// the result is always NormalizedWidth wide. That padding is not undone by
// the inverse shift: Chroma(Chroma(v, s), -s) gives back the padded v, not v.
// For frames already wider than 12 channels the round trip is exact.
func Chroma(frame []float64, shift int) ([]float64, error) {
	if err := checkShift(shift); err != nil {
		return nil, err
	}
	if len(frame) < octave {
		return nil, fmt.Errorf("%w: width %d", ErrFrameWidth, len(frame))
	}
	if len(frame) == octave {
		padded := make([]float64, NormalizedWidth)
		copy(padded[registerPad:], frame)
		frame = padded
	}

	res := make([]float64, len(frame))
	lead := len(frame) - octave
	copy(res[:lead], frame[:lead])
	for i := 0; i < octave; i++ {
		res[lead+mod12(i+shift)] = frame[lead+i]
	}
	return res, nil
}

// Frames applies Chroma to every row of a frames-by-channels matrix.
func Frames(m mat.Matrix, shift int) (*mat.Dense, error) {
	if err := checkShift(shift); err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	if cols < octave {
		return nil, fmt.Errorf("%w: width %d", ErrFrameWidth, cols)
	}
	width := cols
	if cols == octave {
		width = NormalizedWidth
	}

	res := mat.NewDense(rows, width, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, m)
		shifted, err := Chroma(row, shift)
		if err != nil {
			return nil, err
		}
		res.SetRow(i, shifted)
	}
	return res, nil
}

func mod12(n int) int {
	n %= octave
	if n < 0 {
		n += octave
	}
	return n
}

package roman

import "github.com/jsphweid/harmonet/pitch"

// TonicizationPolicy picks the tonicized key to use when the predicted one
// has no reading for the chord. candidates is never empty.
type TonicizationPolicy interface {
	ForceTonicization(current pitch.Key, candidates []pitch.Key) pitch.Key
}

type PolicyFunc func(current pitch.Key, candidates []pitch.Key) pitch.Key

func (f PolicyFunc) ForceTonicization(current pitch.Key, candidates []pitch.Key) pitch.Key {
	return f(current, candidates)
}

// ModalMixture prefers the parallel key of the current key, then the
// candidate closest to it on the circle of fifths. Ties go to the earliest
// candidate.
type ModalMixture struct{}

func (ModalMixture) ForceTonicization(current pitch.Key, candidates []pitch.Key) pitch.Key {
	parallel := current.Parallel()
	for _, c := range candidates {
		if c == parallel {
			return c
		}
	}

	var best pitch.Key
	bestDist := -1
	for _, c := range candidates {
		d := c.Fifths() - current.Fifths()
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

package pitch

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidKey = errors.New("invalid key")

// Key is a tonal center. The token form spells major keys with an uppercase
// tonic and minor keys with a lowercase one: "C", "c#", "E-", "b-".
type Key struct {
	Tonic Spelling
	Minor bool
}

var (
	majorSteps = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorSteps = [7]int{0, 2, 3, 5, 7, 8, 10}
)

// position of each natural letter on the circle of fifths, indexed like letters
var letterFifths = [7]int{0, 2, 4, -1, 1, 3, 5}

func ParseKey(token string) (Key, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Key{}, fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	sp, err := ParseSpelling(token)
	if err != nil || sp.HasOctave {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, token)
	}
	minor := token[0] >= 'a' && token[0] <= 'g'
	return Key{Tonic: sp, Minor: minor}, nil
}

func MustKey(token string) Key {
	k, err := ParseKey(token)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseKeys parses every token, failing on the first bad one.
func ParseKeys(tokens []string) ([]Key, error) {
	res := make([]Key, 0, len(tokens))
	for _, t := range tokens {
		k, err := ParseKey(t)
		if err != nil {
			return nil, err
		}
		res = append(res, k)
	}
	return res, nil
}

func (k Key) String() string {
	name := k.Tonic.Name()
	if k.Minor {
		return strings.ToLower(name[:1]) + name[1:]
	}
	return name
}

func (k Key) Transpose(iv Interval) Key {
	pc := int(k.Tonic.PitchClass()) + iv.Semitones
	return Key{
		Tonic: spell(k.Tonic.letterIndex()+iv.Steps, pc),
		Minor: k.Minor,
	}
}

// Parallel returns the key with the same tonic and the opposite mode.
func (k Key) Parallel() Key {
	return Key{Tonic: k.Tonic, Minor: !k.Minor}
}

// Fifths is the key signature as a position on the circle of fifths:
// sharps positive, flats negative.
func (k Key) Fifths() int {
	f := letterFifths[k.Tonic.letterIndex()] + 7*k.Tonic.Accidental
	if k.Minor {
		f -= 3
	}
	return f
}

func (k Key) steps() [7]int {
	if k.Minor {
		return minorSteps
	}
	return majorSteps
}

// Scale spells the seven degrees of the key, using natural minor for
// minor keys.
func (k Key) Scale() []Spelling {
	steps := k.steps()
	tonicPc := int(k.Tonic.PitchClass())
	res := make([]Spelling, 7)
	for i := range res {
		res[i] = spell(k.Tonic.letterIndex()+i, tonicPc+steps[i])
	}
	return res
}

// KeySet is an immutable membership set of keys.
type KeySet struct {
	keys map[Key]bool
}

func NewKeySet(keys ...Key) KeySet {
	m := make(map[Key]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return KeySet{keys: m}
}

func (s KeySet) Contains(k Key) bool {
	return s.keys[k]
}

func (s KeySet) Len() int {
	return len(s.keys)
}

var defaultTranspositionTokens = []string{
	"D-", "b-", "A-", "f", "E-", "c", "B-", "g", "F", "d", "C", "a",
	"G", "e", "D", "b", "A", "f#", "E", "c#", "B", "g#", "F#", "d#",
}

// DefaultTranspositionKeys lists the 24 keys a classifier can output.
func DefaultTranspositionKeys() []Key {
	keys, err := ParseKeys(defaultTranspositionTokens)
	if err != nil {
		panic(err)
	}
	return keys
}

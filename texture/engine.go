// Package texture expands an annotated chord into a synthetic rhythmic
// texture: a sequence of onsets that together fill the chord's duration.
package texture

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/util"
)

var (
	ErrUnknownTemplate      = errors.New("unknown texture template")
	ErrUnsupportedShape     = errors.New("template does not support this chord shape")
	ErrNoApplicableTemplate = errors.New("no texture template applies")
	ErrInvalidEvent         = errors.New("invalid chord event")
	ErrTilingViolation      = errors.New("texture does not tile its duration")
)

// Rand is the only source of non-determinism in the engine.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the math/rand/v2 top-level source, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewSeeded returns a reproducible Rand that may be shared between goroutines.
func NewSeeded(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed))}
}

type Engine struct {
	templates map[string]Texture
	rand      Rand
}

type Option func(*Engine)

func WithRand(r Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		templates: make(map[string]Texture),
		rand:      globalRand{},
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, t := range builtins() {
		if err := e.Register(t); err != nil {
			panic(err)
		}
	}
	return e
}

// Register admits a texture after checking that it tiles every duration and
// note count it claims to support.
func (e *Engine) Register(t Texture) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownTemplate)
	}
	if _, ok := e.templates[name]; ok {
		return fmt.Errorf("template %q already registered", name)
	}
	for _, d := range t.Durations() {
		for _, n := range t.NoteCounts() {
			ev := probe(d, n)
			if err := check(ev, t.Expand(ev)); err != nil {
				return fmt.Errorf("%w: %v with duration %v and %d notes: %v", ErrTilingViolation, name, d, n, err)
			}
		}
	}
	e.templates[name] = t
	return nil
}

func probe(duration float64, count int) model.ChordEvent {
	ev := model.ChordEvent{Duration: duration}
	for i := 0; i < count; i++ {
		ev.Notes = append(ev.Notes, "n"+strconv.Itoa(i))
		if i > 0 {
			ev.Intervals = append(ev.Intervals, "i"+strconv.Itoa(i-1))
		}
	}
	return ev
}

func check(ev model.ChordEvent, subs []model.SubEvent) error {
	if !Tiles(subs, ev.Duration) {
		return errors.New("sub-events leave a gap or overlap")
	}
	known := make(map[string]bool)
	for _, n := range ev.Notes {
		known[n] = true
	}
	for _, s := range subs {
		if len(s.IsOnset) != len(s.Notes) {
			return errors.New("onset flags do not match notes")
		}
		for i, n := range s.Notes {
			if !known[n] {
				return fmt.Errorf("note %q is not in the chord", n)
			}
			if !s.IsOnset[i] {
				return fmt.Errorf("note %q is not struck", n)
			}
		}
	}
	return nil
}

const epsilon = 1e-9

// Tiles reports whether subs, in order, cover [0, duration) with no gap and
// no overlap.
func Tiles(subs []model.SubEvent, duration float64) bool {
	if len(subs) == 0 {
		return false
	}
	var at float64
	for _, s := range subs {
		if s.Duration <= 0 || math.Abs(s.Offset-at) > epsilon {
			return false
		}
		at = s.End()
	}
	return math.Abs(at-duration) <= epsilon
}

func supports(t Texture, duration float64, count int) bool {
	var okDuration, okCount bool
	for _, d := range t.Durations() {
		if d == duration {
			okDuration = true
		}
	}
	for _, n := range t.NoteCounts() {
		if n == count {
			okCount = true
		}
	}
	return okDuration && okCount
}

func validate(ev model.ChordEvent) error {
	if ev.Duration <= 0 {
		return fmt.Errorf("%w: duration %v", ErrInvalidEvent, ev.Duration)
	}
	if len(ev.Notes) == 0 {
		return fmt.Errorf("%w: no notes", ErrInvalidEvent)
	}
	if len(ev.Intervals) != len(ev.Notes)-1 {
		return fmt.Errorf("%w: %d notes need %d intervals, got %d", ErrInvalidEvent, len(ev.Notes), len(ev.Notes)-1, len(ev.Intervals))
	}
	return nil
}

// Templates lists the registered textures by name.
func (e *Engine) Templates() []Texture {
	names := util.SortedKeys(e.templates)
	res := make([]Texture, 0, len(names))
	for _, name := range names {
		res = append(res, e.templates[name])
	}
	return res
}

// Applicable lists the textures supporting both the duration and note count.
func (e *Engine) Applicable(duration float64, count int) []Texture {
	var res []Texture
	for _, t := range e.Templates() {
		if supports(t, duration, count) {
			res = append(res, t)
		}
	}
	return res
}

// Apply expands ev with the named template, or with one chosen uniformly at
// random among the applicable templates when name is empty.
func (e *Engine) Apply(ev model.ChordEvent, name string) ([]model.SubEvent, error) {
	if name != "" {
		t, ok := e.templates[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
		}
		if err := validate(ev); err != nil {
			return nil, err
		}
		if !supports(t, ev.Duration, len(ev.Notes)) {
			return nil, fmt.Errorf("%w: %v with duration %v and %d notes", ErrUnsupportedShape, name, ev.Duration, len(ev.Notes))
		}
		return t.Expand(ev), nil
	}

	if err := validate(ev); err != nil {
		return nil, err
	}
	candidates := e.Applicable(ev.Duration, len(ev.Notes))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: duration %v and %d notes", ErrNoApplicableTemplate, ev.Duration, len(ev.Notes))
	}
	return candidates[e.rand.IntN(len(candidates))].Expand(ev), nil
}

// ApplyAll lays the events end to end and texturizes each one. An event that
// fails is recorded and leaves a rest of its own duration, so later events
// keep their position.
func (e *Engine) ApplyAll(events []model.ChordEvent, name string) ([]model.SubEvent, []model.EventError) {
	var res []model.SubEvent
	var failed []model.EventError
	var at float64
	for i, ev := range events {
		subs, err := e.Apply(ev, name)
		if err != nil {
			failed = append(failed, model.EventError{Index: i, Err: err})
		}
		for _, s := range subs {
			s.Offset += at
			res = append(res, s)
		}
		if ev.Duration > 0 {
			at += ev.Duration
		}
	}
	return res, failed
}

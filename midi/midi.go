package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/harmonet/model"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/jsphweid/harmonet/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = &blank, fmt.Errorf("error parsing midi file: %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

type RenderOptions struct {
	BPM      float64
	Velocity uint8
	Channel  uint8
	// ticks per quarter note
	Resolution uint16
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.BPM <= 0 {
		o.BPM = 120
	}
	if o.Velocity == 0 {
		o.Velocity = 80
	}
	if o.Resolution == 0 {
		o.Resolution = 960
	}
	o.Channel = util.Min(o.Channel, 15)
	return o
}

type noteEvent struct {
	tick uint32
	off  bool
	key  uint8
}

// Render writes texture sub-events into a one-track file. Offsets and
// durations are quarter lengths.
func Render(subs []model.SubEvent, opts RenderOptions) (*smf.SMF, error) {
	opts = opts.withDefaults()
	toTicks := func(ql float64) uint32 {
		return uint32(math.Round(ql * float64(opts.Resolution)))
	}

	var events []noteEvent
	for i, sub := range subs {
		if sub.Offset < 0 || sub.Duration <= 0 {
			return nil, fmt.Errorf("sub-event %d: bad timing %v+%v", i, sub.Offset, sub.Duration)
		}
		for j, name := range sub.Notes {
			if j < len(sub.IsOnset) && !sub.IsOnset[j] {
				continue
			}
			sp, err := pitch.ParseSpelling(name)
			if err != nil {
				return nil, fmt.Errorf("sub-event %d: %w", i, err)
			}
			key := uint8(util.Clamp(sp.MIDI(), 0, 127))
			events = append(events,
				noteEvent{tick: toTicks(sub.Offset), key: key},
				noteEvent{tick: toTicks(sub.End()), off: true, key: key},
			)
		}
	}
	if len(events) == 0 {
		return nil, errors.New("nothing to render")
	}

	// note offs first so a repeated note is struck again
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.Resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(opts.BPM))
	var last uint32
	for _, ev := range events {
		delta := ev.tick - last
		last = ev.tick
		if ev.off {
			tr.Add(delta, gomidi.NoteOff(opts.Channel, ev.key))
		} else {
			tr.Add(delta, gomidi.NoteOn(opts.Channel, ev.key, opts.Velocity))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, err
	}
	return s, nil
}

func Write(w io.Writer, s *smf.SMF) error {
	_, err := s.WriteTo(w)
	return err
}

func WriteFile(path string, s *smf.SMF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("could not write %v: %w", path, err)
	}
	return f.Close()
}

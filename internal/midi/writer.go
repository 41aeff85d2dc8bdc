// Package midi reads and writes Standard MIDI Files for the pipeline.
//
// The mapping between events and MIDI is fixed: 480 ticks per quarter note,
// one event every eighth note (the 0.5-offset grid), channel 0, and the
// acoustic grand piano program. Chord members share a start tick; the
// reader reverses that by grouping simultaneous note starts.
package midi

import (
	"fmt"
	"math"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/score"
)

const (
	ticksPerQuarter = 480
	stepTicks       = ticksPerQuarter / 2 // one 0.5 offset step

	channel      = 0
	pianoProgram = 0 // General MIDI acoustic grand piano

	// DefaultVelocity is used for every generated note.
	DefaultVelocity = 90

	// DefaultTempoBPM is used when the caller does not pick a tempo.
	DefaultTempoBPM = 120
)

// timedMessage is a MIDI message at an absolute tick, used to build a track
// in time order before converting to deltas.
type timedMessage struct {
	tick uint32
	off  bool // note-offs sort before note-ons at the same tick
	msg  []byte
}

// WriteFile renders an event stream to a single-track MIDI file.
//
// Event offsets are quantized to the eighth-note grid; every note lasts one
// grid step.
func WriteFile(path string, events []score.Event, tempoBPM int) error {
	if len(events) == 0 {
		return fmt.Errorf("no events to write")
	}
	if tempoBPM <= 0 {
		tempoBPM = DefaultTempoBPM
	}

	var msgs []timedMessage
	for _, e := range events {
		tick := uint32(math.Round(e.Offset/score.OffsetStep)) * stepTicks
		for _, p := range e.Pitches {
			key := p.MIDI()
			msgs = append(msgs, timedMessage{tick: tick, msg: gomidi.NoteOn(channel, key, DefaultVelocity)})
			msgs = append(msgs, timedMessage{tick: tick + stepTicks, off: true, msg: gomidi.NoteOff(channel, key)})
		}
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(float64(tempoBPM)))
	tr.Add(0, smf.MetaInstrument(score.DefaultInstrument))
	tr.Add(0, gomidi.ProgramChange(channel, pianoProgram))

	var pos uint32
	for _, m := range msgs {
		tr.Add(m.tick-pos, m.msg)
		pos = m.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("failed to build MIDI track: %w", err)
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

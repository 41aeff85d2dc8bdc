// Package score models symbolic musical events and their canonical string
// tokens.
//
// This package provides:
//   - Pitch: a pitch class with an optional octave
//   - Event: a single pitch or a simultaneous chord with a start offset
//   - Tokenize: Event -> canonical token (deterministic, order-independent)
//   - Decode: token sequence -> timed Event stream
//
// Tokens are the atomic unit of the sequence model's vocabulary: a single
// pitch tokenizes to its name ("F#4"), a chord to its sorted pitch classes
// joined with "." ("0.4.7").
package score

import (
	"fmt"
	"strconv"
	"strings"
)

// noteNames maps pitch class 0..11 to its sharp-based name.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// nameToClass is the inverse of noteNames, including flat spellings.
var nameToClass = map[string]int{
	"C": 0, "B#": 0,
	"C#": 1, "D-": 1, "DB": 1,
	"D": 2,
	"D#": 3, "E-": 3, "EB": 3,
	"E": 4, "F-": 4,
	"F": 5, "E#": 5,
	"F#": 6, "G-": 6, "GB": 6,
	"G": 7,
	"G#": 8, "A-": 8, "AB": 8,
	"A": 9,
	"A#": 10, "B-": 10, "BB": 10,
	"B": 11, "C-": 11,
}

// Pitch is a single musical pitch: a pitch class 0..11 plus an optional
// octave. Pitches decoded from bare pitch-class integers have no octave;
// DefaultOctave is applied when one is needed (e.g. for MIDI rendering).
type Pitch struct {
	Class     int // 0 = C .. 11 = B
	Octave    int
	HasOctave bool
}

// DefaultOctave is used when rendering a pitch that carries no octave.
const DefaultOctave = 4

// NewPitchClass returns an octave-less pitch for a class 0..11.
// Classes outside the range are folded modulo 12.
func NewPitchClass(class int) Pitch {
	return Pitch{Class: ((class % 12) + 12) % 12}
}

// NewPitch returns a pitch with an explicit octave.
func NewPitch(class, octave int) Pitch {
	return Pitch{Class: ((class % 12) + 12) % 12, Octave: octave, HasOctave: true}
}

// ParsePitch parses a pitch name such as "C", "F#4", or "B-2".
func ParsePitch(name string) (Pitch, error) {
	if name == "" {
		return Pitch{}, fmt.Errorf("empty pitch name")
	}

	// Split into letter part and optional trailing octave digits.
	i := len(name)
	for i > 0 && (name[i-1] >= '0' && name[i-1] <= '9') {
		i--
	}
	letters := name[:i]

	class, ok := nameToClass[strings.ToUpper(letters)]
	if !ok {
		return Pitch{}, fmt.Errorf("unrecognized pitch name %q", name)
	}

	if i == len(name) {
		return Pitch{Class: class}, nil
	}
	octave, err := strconv.Atoi(name[i:])
	if err != nil {
		return Pitch{}, fmt.Errorf("invalid octave in pitch %q: %w", name, err)
	}
	return Pitch{Class: class, Octave: octave, HasOctave: true}, nil
}

// Name returns the canonical name of the pitch: "F#4" with an octave,
// "F#" without one.
func (p Pitch) Name() string {
	if p.HasOctave {
		return noteNames[p.Class] + strconv.Itoa(p.Octave)
	}
	return noteNames[p.Class]
}

// MIDI returns the MIDI key number of the pitch (C4 = 60). Pitches without
// an octave are placed in DefaultOctave.
func (p Pitch) MIDI() uint8 {
	octave := p.Octave
	if !p.HasOctave {
		octave = DefaultOctave
	}
	key := (octave+1)*12 + p.Class
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return uint8(key)
}

// PitchFromMIDI converts a MIDI key number back into a pitch with octave.
func PitchFromMIDI(key uint8) Pitch {
	return Pitch{Class: int(key) % 12, Octave: int(key)/12 - 1, HasOctave: true}
}

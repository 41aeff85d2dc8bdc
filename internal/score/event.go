package score

import (
	"sort"
	"strconv"
	"strings"
)

// OffsetStep is the fixed time increment between consecutive events.
const OffsetStep = 0.5

// DefaultInstrument tags every event the pipeline emits.
const DefaultInstrument = "Piano"

// ChordSeparator joins the sorted pitch classes of a chord token.
const ChordSeparator = "."

// Event is a single pitch or a simultaneous group of pitches (a chord) with
// a start offset and an instrument tag.
//
// A chord is identified by Chord == true; Pitches then holds the member
// pitches in any order. A single-pitch event has exactly one entry in
// Pitches.
type Event struct {
	Pitches    []Pitch
	Chord      bool
	Offset     float64
	Instrument string
}

// NewNote returns a single-pitch event.
func NewNote(p Pitch, offset float64) Event {
	return Event{
		Pitches:    []Pitch{p},
		Offset:     offset,
		Instrument: DefaultInstrument,
	}
}

// NewChord returns a chord event over the given pitches.
func NewChord(pitches []Pitch, offset float64) Event {
	return Event{
		Pitches:    pitches,
		Chord:      true,
		Offset:     offset,
		Instrument: DefaultInstrument,
	}
}

// Tokenize converts an event into its canonical string token.
//
// Single pitches tokenize to their name ("F#4"). Chords tokenize to the
// sorted set of member pitch classes joined with "." ("0.4.7"), so two
// chords with the same pitch content produce the identical token regardless
// of member order.
func Tokenize(e Event) string {
	if !e.Chord && len(e.Pitches) == 1 {
		return e.Pitches[0].Name()
	}

	seen := make(map[int]bool, len(e.Pitches))
	classes := make([]int, 0, len(e.Pitches))
	for _, p := range e.Pitches {
		if !seen[p.Class] {
			seen[p.Class] = true
			classes = append(classes, p.Class)
		}
	}
	sort.Ints(classes)

	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ChordSeparator)
}

// TokenizeAll tokenizes an event stream in order.
func TokenizeAll(events []Event) []string {
	tokens := make([]string, len(events))
	for i, e := range events {
		tokens[i] = Tokenize(e)
	}
	return tokens
}

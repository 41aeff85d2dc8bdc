package score

import (
	"fmt"
	"strconv"
	"strings"
)

// IsChordToken reports whether a token encodes a chord: it contains the
// "." separator or is purely numeric (a single bare pitch class).
func IsChordToken(token string) bool {
	if strings.Contains(token, ChordSeparator) {
		return true
	}
	_, err := strconv.Atoi(token)
	return err == nil
}

// Decode converts a token sequence back into a timed event stream.
//
// Chord tokens split on "."; numeric parts become pitch-class pitches and
// named parts become named pitches. Every event is tagged with the default
// instrument and offset k*OffsetStep for the k-th token, starting at 0.
//
// Decode only fails on tokens whose parts are neither valid pitch-class
// integers nor recognizable pitch names; tokens produced by Tokenize always
// decode.
func Decode(tokens []string) ([]Event, error) {
	events := make([]Event, 0, len(tokens))
	offset := 0.0

	for _, token := range tokens {
		if IsChordToken(token) {
			parts := strings.Split(token, ChordSeparator)
			pitches := make([]Pitch, 0, len(parts))
			for _, part := range parts {
				if class, err := strconv.Atoi(part); err == nil {
					pitches = append(pitches, NewPitchClass(class))
					continue
				}
				p, err := ParsePitch(part)
				if err != nil {
					return nil, fmt.Errorf("decode token %q: %w", token, err)
				}
				pitches = append(pitches, p)
			}
			events = append(events, NewChord(pitches, offset))
		} else {
			p, err := ParsePitch(token)
			if err != nil {
				return nil, fmt.Errorf("decode token %q: %w", token, err)
			}
			events = append(events, NewNote(p, offset))
		}

		offset += OffsetStep
	}

	return events, nil
}

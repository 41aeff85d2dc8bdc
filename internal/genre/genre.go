// Package genre holds per-genre musical characteristics and synthesizes
// training corpora from them when no MIDI collection is available.
package genre

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Characteristics describes the musical vocabulary of one genre.
type Characteristics struct {
	TempoRange [2]int   `yaml:"tempo_range"` // [min, max] BPM
	Scales     []string `yaml:"scales"`      // pitch names used for single notes
	Chords     []string `yaml:"chords"`      // chord symbols characteristic of the genre
}

// Tempo picks a tempo inside the genre's range.
func (c Characteristics) Tempo(rng *rand.Rand) int {
	lo, hi := c.TempoRange[0], c.TempoRange[1]
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Table maps lowercase genre names to their characteristics. Tables are
// plain values: merging a configuration file produces a new table and the
// shipped defaults stay untouched.
type Table map[string]Characteristics

// defaults holds the shipped genre tables. Read-only; Defaults hands out
// copies.
var defaults = Table{
	"jazz": {
		TempoRange: [2]int{60, 180},
		Scales:     []string{"C", "D", "E", "F", "G", "A", "B", "C#", "D#", "F#", "G#", "A#"},
		Chords:     []string{"C", "Dm", "Em", "F", "G", "Am", "Bdim", "Cmaj7", "Dm7", "Em7", "Fmaj7", "G7", "Am7", "Bm7b5"},
	},
	"classical": {
		TempoRange: [2]int{40, 200},
		Scales:     []string{"C", "D", "E", "F", "G", "A", "B"},
		Chords:     []string{"C", "Dm", "Em", "F", "G", "Am", "Bdim", "Cmaj7", "Dm7", "Em7"},
	},
	"rock": {
		TempoRange: [2]int{80, 200},
		Scales:     []string{"C", "D", "E", "F", "G", "A", "B"},
		Chords:     []string{"C", "D", "E", "F", "G", "A", "B", "C5", "D5", "E5", "F5", "G5", "A5", "B5"},
	},
	"electronic": {
		TempoRange: [2]int{100, 180},
		Scales:     []string{"C", "D", "E", "F", "G", "A", "B", "C#", "D#", "F#", "G#", "A#"},
		Chords:     []string{"C", "D", "E", "F", "G", "A", "B", "Cmaj7", "Dmaj7", "Emaj7", "Fmaj7", "Gmaj7"},
	},
	"blues": {
		TempoRange: [2]int{60, 120},
		Scales:     []string{"C", "D", "E", "F", "G", "A", "B"},
		Chords:     []string{"C7", "F7", "G7", "Dm7", "Em7", "Am7"},
	},
	"pop": {
		TempoRange: [2]int{90, 140},
		Scales:     []string{"C", "D", "E", "F", "G", "A", "B"},
		Chords:     []string{"C", "Dm", "Em", "F", "G", "Am", "Bdim", "Cmaj7", "Dm7", "Em7"},
	},
}

// Defaults returns a fresh copy of the built-in genre table.
func Defaults() Table {
	t := make(Table, len(defaults))
	for name, c := range defaults {
		t[name] = c
	}
	return t
}

// Lookup returns the characteristics for a genre name (case-insensitive).
func (t Table) Lookup(name string) (Characteristics, error) {
	c, ok := t[strings.ToLower(name)]
	if !ok {
		return Characteristics{}, fmt.Errorf("unknown genre %q (available: %s)", name, strings.Join(t.Names(), ", "))
	}
	return c, nil
}

// Names returns the table's genre names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCorpusSize is the token count of one synthetic genre dataset.
const DefaultCorpusSize = 1000

// SyntheticTokens builds a token stream from a genre's characteristics:
// roughly 70% single notes drawn from the scale and 30% chords of 2 to 4
// distinct scale degrees joined with ".".
func SyntheticTokens(c Characteristics, n int, rng *rand.Rand) []string {
	tokens := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < 0.7 || len(c.Scales) < 2 {
			tokens = append(tokens, c.Scales[rng.Intn(len(c.Scales))])
			continue
		}

		size := 2 + rng.Intn(3)
		if size > len(c.Scales) {
			size = len(c.Scales)
		}
		perm := rng.Perm(len(c.Scales))[:size]
		parts := make([]string, size)
		for j, idx := range perm {
			parts[j] = c.Scales[idx]
		}
		tokens = append(tokens, strings.Join(parts, "."))
	}
	return tokens
}

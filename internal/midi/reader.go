package midi

import (
	"fmt"
	"path/filepath"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/score"
)

// ReadFile extracts the token stream from a MIDI file.
//
// Note starts from all tracks are grouped by absolute tick: a lone start
// becomes a note token, simultaneous starts become a chord token. Offsets
// within the file are discarded; the pipeline re-spaces events on its fixed
// grid.
func ReadFile(path string) ([]string, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file %s: %w", path, err)
	}

	starts := make(map[uint64][]score.Pitch)
	for _, tr := range s.Tracks {
		var abs uint64
		for _, ev := range tr {
			abs += uint64(ev.Delta)

			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) {
				starts[abs] = append(starts[abs], score.PitchFromMIDI(key))
			}
		}
	}
	if len(starts) == 0 {
		return nil, nil
	}

	ticks := make([]uint64, 0, len(starts))
	for tick := range starts {
		ticks = append(ticks, tick)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })

	tokens := make([]string, 0, len(ticks))
	for i, tick := range ticks {
		pitches := starts[tick]
		offset := float64(i) * score.OffsetStep

		if len(pitches) == 1 {
			tokens = append(tokens, score.Tokenize(score.NewNote(pitches[0], offset)))
			continue
		}
		tokens = append(tokens, score.Tokenize(score.NewChord(pitches, offset)))
	}
	return tokens, nil
}

// ReadDir extracts and concatenates the token streams of every .mid file in
// a directory, in sorted filename order.
func ReadDir(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.mid"))
	if err != nil {
		return nil, fmt.Errorf("failed to list MIDI files: %w", err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no .mid files in %s", dir)
	}

	var tokens []string
	for _, path := range paths {
		fileTokens, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, fileTokens...)
	}
	return tokens, nil
}

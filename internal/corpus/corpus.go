// Package corpus persists the extracted token stream between pipeline
// stages.
//
// Training parses MIDI files once and stores the flat token sequence as
// notes.json; generation reloads it to rebuild the vocabulary and pick seed
// windows without re-reading the MIDI corpus.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMissingArtifact indicates a required pipeline artifact (token stream
// or checkpoint) has not been produced yet.
var ErrMissingArtifact = errors.New("missing pipeline artifact")

// DefaultNotesFile is the conventional token stream filename.
const DefaultNotesFile = "notes.json"

// SaveTokens writes the token stream as a JSON array.
func SaveTokens(path string, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write token stream: %w", err)
	}
	return nil
}

// LoadTokens reads a token stream written by SaveTokens.
//
// A missing file reports ErrMissingArtifact so callers can tell "run the
// extraction step first" apart from real I/O failures.
func LoadTokens(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("token stream %s: %w", path, ErrMissingArtifact)
		}
		return nil, fmt.Errorf("failed to read token stream: %w", err)
	}

	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse token stream %s: %w", path, err)
	}
	return tokens, nil
}

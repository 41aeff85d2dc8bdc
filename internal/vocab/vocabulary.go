// Package vocab implements the closed token vocabulary of the sequence
// model: a deterministic bijection between observed tokens and contiguous
// integer ids.
//
// The vocabulary is fitted once on a training corpus and never extended;
// encoding a token that was absent at fit time is an error by design.
package vocab

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors.
var (
	// ErrUnknownToken is returned when encoding a token that was not
	// present when the vocabulary was fitted.
	ErrUnknownToken = errors.New("token not in vocabulary")

	// ErrUnknownID is returned when decoding an id outside [0, Size).
	ErrUnknownID = errors.New("id not in vocabulary")
)

// Vocabulary is a bijective mapping between tokens and ids.
//
// Ids are assigned 0..V-1 by ascending lexicographic token order, so a
// vocabulary fitted on the same token set is always identical.
type Vocabulary struct {
	tokens []string       // id -> token
	ids    map[string]int // token -> id
}

// Fit builds a vocabulary from an observed token stream.
//
// Duplicate tokens collapse; the distinct tokens are sorted
// lexicographically and numbered from 0.
func Fit(tokens []string) *Vocabulary {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}

	sorted := make([]string, 0, len(set))
	for tok := range set {
		sorted = append(sorted, tok)
	}
	sort.Strings(sorted)

	ids := make(map[string]int, len(sorted))
	for id, tok := range sorted {
		ids[tok] = id
	}

	return &Vocabulary{tokens: sorted, ids: ids}
}

// Size returns the number of distinct tokens V.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Encode maps a token to its id.
//
// Returns ErrUnknownToken for tokens absent at fit time: the vocabulary is
// closed-world and is deliberately never extended after fitting.
func (v *Vocabulary) Encode(token string) (int, error) {
	id, ok := v.ids[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	return id, nil
}

// EncodeAll encodes a token stream in order, failing on the first unknown
// token.
func (v *Vocabulary) EncodeAll(tokens []string) ([]int, error) {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		id, err := v.Encode(tok)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// Decode maps an id back to its token. Total over [0, Size).
func (v *Vocabulary) Decode(id int) (string, error) {
	if id < 0 || id >= len(v.tokens) {
		return "", fmt.Errorf("%w: %d (vocabulary size %d)", ErrUnknownID, id, len(v.tokens))
	}
	return v.tokens[id], nil
}

// DecodeAll decodes an id sequence in order, failing on the first id
// outside the vocabulary.
func (v *Vocabulary) DecodeAll(ids []int) ([]string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tok, err := v.Decode(id)
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// Tokens returns the tokens in id order. The returned slice is shared;
// callers must not mutate it.
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}

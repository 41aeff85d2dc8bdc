// Package generate produces new token sequences from a trained model.
//
// Generation is greedy: each step feeds the current context window to the
// model, picks the highest-probability token, and slides the window one
// position. There is no sampling temperature; identical seeds always
// produce identical output.
package generate

import (
	"context"
	"fmt"
	"math/rand"
)

// DefaultSteps is the number of tokens generated per run.
const DefaultSteps = 500

// Predictor is the model surface the generator needs.
type Predictor interface {
	// Predict returns the next-token probability distribution for a
	// context of token ids.
	Predict(ctx []int) ([]float32, error)
}

// Config holds generator configuration.
type Config struct {
	Steps      int // tokens to generate (default: 500)
	ContextLen int // model input window length
}

// Generator drives greedy autoregressive decoding.
type Generator struct {
	model  Predictor
	config Config
}

// New creates a generator.
func New(model Predictor, config Config) *Generator {
	if config.Steps == 0 {
		config.Steps = DefaultSteps
	}
	return &Generator{model: model, config: config}
}

// Argmax returns the index of the largest probability. Ties resolve to the
// lowest index, so decoding stays deterministic even on degenerate
// distributions.
func Argmax(probs []float32) int {
	best := 0
	for i, p := range probs[1:] {
		if p > probs[best] {
			best = i + 1
		}
	}
	return best
}

// SeedWindow picks a random contiguous window of contextLen ids from the
// source sequence to start generation from. Only windows followed by at
// least one more id are eligible, matching the contexts the model was
// trained on.
func SeedWindow(ids []int, contextLen int, rng *rand.Rand) ([]int, error) {
	if len(ids) <= contextLen {
		return nil, fmt.Errorf("sequence of %d ids is too short for the context length %d", len(ids), contextLen)
	}
	start := rng.Intn(len(ids) - contextLen)
	window := make([]int, contextLen)
	copy(window, ids[start:start+contextLen])
	return window, nil
}

// Run generates tokens starting from the seed window.
//
// The seed must be exactly ContextLen ids long. The returned slice holds
// only the newly generated ids, not the seed.
func (g *Generator) Run(ctx context.Context, seed []int) ([]int, error) {
	if len(seed) != g.config.ContextLen {
		return nil, fmt.Errorf("seed window has %d ids, expected %d", len(seed), g.config.ContextLen)
	}

	window := make([]int, len(seed))
	copy(window, seed)

	out := make([]int, 0, g.config.Steps)
	for step := 0; step < g.config.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation interrupted at step %d: %w", step, err)
		}

		probs, err := g.model.Predict(window)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		if len(probs) == 0 {
			return nil, fmt.Errorf("step %d: model returned an empty distribution", step)
		}

		next := Argmax(probs)
		out = append(out, next)

		// Slide the window one position.
		copy(window, window[1:])
		window[len(window)-1] = next
	}
	return out, nil
}

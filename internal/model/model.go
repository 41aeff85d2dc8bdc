// Package model implements the sequence model that learns to predict the
// next musical token from a fixed-length context.
//
// The architecture is a token embedding feeding a single LSTM layer, whose
// final hidden state projects through a fully connected layer onto the
// vocabulary:
//
//	ids -> Embedding(64) -> LSTM(128) -> Linear(V) -> softmax
//
// The model exposes two operations: Predict returns the next-token
// distribution for a context, and FitStep accumulates gradients for one
// mini-batch of windows. Parameter updates are the optimizer's job; the
// model only fills the gradient buffers.
package model

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/dataset"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/nn"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

// ErrShapeMismatch indicates that a tensor loaded from a checkpoint does
// not match the shape the current model configuration expects.
var ErrShapeMismatch = errors.New("shape mismatch")

// Default hyperparameters, used by Config fields left zero.
const (
	DefaultEmbedDim = 64
	DefaultHidden   = 128
)

// Config describes the model architecture and its fixed context length.
type Config struct {
	ContextLen int   // input window length
	VocabSize  int   // number of distinct tokens
	EmbedDim   int   // embedding vector size (default: 64)
	Hidden     int   // LSTM hidden state size (default: 128)
	Seed       int64 // weight initialization seed
}

func (c Config) withDefaults() Config {
	if c.EmbedDim == 0 {
		c.EmbedDim = DefaultEmbedDim
	}
	if c.Hidden == 0 {
		c.Hidden = DefaultHidden
	}
	return c
}

// Model is the next-token prediction network.
type Model struct {
	config    Config
	embedding *nn.Embedding
	lstm      *nn.LSTM
	output    *nn.Linear
}

// New creates a model with freshly initialized weights.
func New(config Config) (*Model, error) {
	config = config.withDefaults()
	if config.VocabSize <= 0 {
		return nil, fmt.Errorf("model: vocab size must be positive, got %d", config.VocabSize)
	}
	if config.ContextLen <= 0 {
		return nil, fmt.Errorf("model: context length must be positive, got %d", config.ContextLen)
	}

	rng := rand.New(rand.NewSource(config.Seed))
	return &Model{
		config:    config,
		embedding: nn.NewEmbedding(config.VocabSize, config.EmbedDim, rng),
		lstm:      nn.NewLSTM(config.EmbedDim, config.Hidden, rng),
		output:    nn.NewLinear("output", config.Hidden, config.VocabSize, rng),
	}, nil
}

// Config returns the model configuration with defaults applied.
func (m *Model) Config() Config {
	return m.config
}

// Predict returns the next-token probability distribution for a context of
// token ids. The result has one entry per vocabulary token and sums to 1.
func (m *Model) Predict(ctx []int) ([]float32, error) {
	if len(ctx) == 0 {
		return nil, fmt.Errorf("model: empty context")
	}
	for i, id := range ctx {
		if id < 0 || id >= m.config.VocabSize {
			return nil, fmt.Errorf("model: context[%d] = %d out of range [0, %d)", i, id, m.config.VocabSize)
		}
	}

	xs := m.embedding.Forward(ctx)
	final, _ := m.lstm.Forward(xs)
	logits := m.output.Forward(final)
	return nn.Softmax(logits), nil
}

// FitStep runs forward and backward passes over one mini-batch and returns
// the mean cross-entropy loss. Gradients accumulate into the model
// parameters, scaled by 1/len(batch) so the optimizer sees the gradient of
// the mean loss.
//
// Callers are expected to zero gradients before each call and apply an
// optimizer step after.
func (m *Model) FitStep(batch []dataset.Window) (float64, error) {
	if len(batch) == 0 {
		return 0, fmt.Errorf("model: empty batch")
	}

	scale := float32(1) / float32(len(batch))
	var total float64

	for _, w := range batch {
		if len(w.Context) != m.config.ContextLen {
			return 0, fmt.Errorf("model: window context length %d, expected %d: %w",
				len(w.Context), m.config.ContextLen, ErrShapeMismatch)
		}
		if w.Target < 0 || w.Target >= m.config.VocabSize {
			return 0, fmt.Errorf("model: target %d out of range [0, %d)", w.Target, m.config.VocabSize)
		}

		xs := m.embedding.Forward(w.Context)
		final, cache := m.lstm.Forward(xs)
		logits := m.output.Forward(final)

		probs, loss, err := nn.SoftmaxCrossEntropy(logits, w.Target)
		if err != nil {
			return 0, fmt.Errorf("model: fit step: %w", err)
		}
		total += loss

		// dL/dlogits = probs - onehot(target), scaled to the batch mean.
		dy := make([]float32, len(probs))
		for i, p := range probs {
			dy[i] = p * scale
		}
		dy[w.Target] -= scale

		dh := m.output.Backward(final, dy)
		dxs := m.lstm.Backward(cache, dh)
		m.embedding.Backward(w.Context, dxs)
	}

	return total / float64(len(batch)), nil
}

// Parameters returns all trainable parameters in a stable order.
func (m *Model) Parameters() []*nn.Parameter {
	var params []*nn.Parameter
	params = append(params, m.embedding.Parameters()...)
	params = append(params, m.lstm.Parameters()...)
	params = append(params, m.output.Parameters()...)
	return params
}

// StateDict returns a snapshot of all parameter tensors keyed by name.
// Tensors are cloned so the snapshot is stable across further training.
func (m *Model) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for _, p := range m.Parameters() {
		state[p.Name()] = p.Tensor().Clone()
	}
	return state
}

// LoadStateDict restores parameter values from a state dictionary.
//
// Every model parameter must be present with a matching shape; extra
// entries are rejected. Shape disagreements report ErrShapeMismatch.
func (m *Model) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	params := m.Parameters()
	if len(stateDict) != len(params) {
		return fmt.Errorf("model: state dict has %d tensors, expected %d: %w",
			len(stateDict), len(params), ErrShapeMismatch)
	}

	for _, p := range params {
		t, ok := stateDict[p.Name()]
		if !ok {
			return fmt.Errorf("model: state dict missing parameter %q", p.Name())
		}
		if !t.Shape().Equal(p.Tensor().Shape()) {
			return fmt.Errorf("model: parameter %q has shape %v, expected %v: %w",
				p.Name(), t.Shape(), p.Tensor().Shape(), ErrShapeMismatch)
		}
		copy(p.Tensor().Data(), t.Data())
	}
	return nil
}

// Package nn implements the neural network building blocks of the sequence
// model.
//
// This package provides:
//   - Parameter: trainable tensors with accumulated gradients
//   - Embedding: token id -> dense vector lookup
//   - LSTM: single-layer recurrent cell with backpropagation through time
//   - Linear: fully connected projection
//   - SoftmaxCrossEntropy: loss over the output distribution
//
// Layers expose explicit Forward/Backward pairs and accumulate gradients
// into their parameters; there is no autodiff tape. The pipeline runs one
// sample at a time, so forward methods take and return plain float32
// vectors.
package nn

import "github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"

// Module is the base interface for components that carry trainable state.
//
// Every module must expose its parameters for the optimizer and support
// state-dict round trips for checkpointing.
type Module interface {
	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter

	// StateDict returns a map of parameter names to raw tensors.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict loads parameters from a state dictionary.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

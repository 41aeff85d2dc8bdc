package nn

import "github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"

// Parameter represents a trainable parameter in a neural network.
//
// Parameters pair a value tensor with a gradient buffer of the same shape.
// Layers accumulate into the gradient during Backward; the optimizer reads
// it in Step and the trainer clears it between batches with ZeroGrad.
type Parameter struct {
	name   string
	tensor *tensor.RawTensor
	grad   *tensor.RawTensor
}

// NewParameter creates a new trainable parameter around an initialized
// tensor. The gradient buffer is allocated immediately and zero-filled.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
		grad:   tensor.Zeros(t.Shape()),
	}
}

// Name returns the parameter name (e.g. "lstm.weight_ih").
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter value tensor.
func (p *Parameter) Tensor() *tensor.RawTensor {
	return p.tensor
}

// Grad returns the accumulated gradient tensor.
func (p *Parameter) Grad() *tensor.RawTensor {
	return p.grad
}

// ZeroGrad clears the accumulated gradient.
//
// Call before each mini-batch to avoid carrying gradients across
// iterations.
func (p *Parameter) ZeroGrad() {
	data := p.grad.Data()
	for i := range data {
		data[i] = 0
	}
}

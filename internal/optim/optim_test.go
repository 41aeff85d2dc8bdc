package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/nn"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

func newParam(t *testing.T, values, grads []float32) *nn.Parameter {
	t.Helper()
	raw, err := tensor.FromSlice(values, tensor.Shape{len(values)})
	require.NoError(t, err)
	p := nn.NewParameter("w", raw)
	copy(p.Grad().Data(), grads)
	return p
}

func TestSGDStep(t *testing.T) {
	p := newParam(t, []float32{1, 2, 3}, []float32{0.5, -0.5, 1})
	opt := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1})

	opt.Step()

	assert.InDeltaSlice(t, []float32{0.95, 2.05, 2.9}, p.Tensor().Data(), 1e-6)
}

func TestSGDMomentumAccumulates(t *testing.T) {
	p := newParam(t, []float32{0}, []float32{1})
	opt := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1, Momentum: 0.9})

	// First step: velocity = 1, param = -0.1.
	opt.Step()
	assert.InDelta(t, -0.1, p.Tensor().Data()[0], 1e-6)

	// Second step with the same gradient: velocity = 1.9, param = -0.29.
	opt.Step()
	assert.InDelta(t, -0.29, p.Tensor().Data()[0], 1e-6)
}

func TestAdamFirstStepEqualsLR(t *testing.T) {
	// With bias correction, the first Adam step moves each parameter by
	// almost exactly lr in the direction opposing the gradient.
	p := newParam(t, []float32{1, 1}, []float32{0.5, -2})
	opt := NewAdam([]*nn.Parameter{p}, AdamConfig{LR: 0.001})

	opt.Step()

	data := p.Tensor().Data()
	assert.InDelta(t, 0.999, data[0], 1e-5)
	assert.InDelta(t, 1.001, data[1], 1e-5)
}

func TestAdamDefaults(t *testing.T) {
	opt := NewAdam(nil, AdamConfig{})
	assert.InDelta(t, 0.001, opt.GetLR(), 1e-9)
	assert.InDelta(t, 0.9, opt.beta1, 1e-9)
	assert.InDelta(t, 0.999, opt.beta2, 1e-9)
}

func TestZeroGrad(t *testing.T) {
	p := newParam(t, []float32{1}, []float32{5})
	opt := NewAdam([]*nn.Parameter{p}, AdamConfig{})

	opt.ZeroGrad()
	assert.Equal(t, []float32{0}, p.Grad().Data())
}

func TestOptimizerInterface(t *testing.T) {
	var _ Optimizer = (*SGD)(nil)
	var _ Optimizer = (*Adam)(nil)
}

// Package optim implements optimization algorithms for training the
// sequence model.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// Optimizers read the gradients accumulated on their parameters and update
// the parameter values in place:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	for _, batch := range batches {
//	    optimizer.ZeroGrad()
//	    loss := model.FitStep(batch) // accumulates gradients
//	    optimizer.Step()
//	}
package optim

import "github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/nn"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies the accumulated gradients to all parameters in place.
	Step()

	// ZeroGrad clears all parameter gradients. Call before each
	// mini-batch to prevent gradient accumulation across iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// zeroGrad clears gradients on a parameter list; shared by the concrete
// optimizers.
func zeroGrad(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

package nn

import (
	"fmt"
	"math/rand"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

// Linear implements a fully connected layer: y = W·x + b with
// W [out_features, in_features] and b [out_features].
//
// Weights use Xavier/Glorot initialization, biases start at zero.
type Linear struct {
	Weight      *Parameter // [out_features, in_features]
	Bias        *Parameter // [out_features]
	InFeatures  int
	OutFeatures int
}

// NewLinear creates a new Linear layer. The name prefixes the parameter
// names ("output.weight", "output.bias").
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	weight := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)
	bias := Zeros(tensor.Shape{outFeatures})

	return &Linear{
		Weight:      NewParameter(name+".weight", weight),
		Bias:        NewParameter(name+".bias", bias),
		InFeatures:  inFeatures,
		OutFeatures: outFeatures,
	}
}

// Forward computes y = W·x + b.
func (l *Linear) Forward(x []float32) []float32 {
	if len(x) != l.InFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input of %d features, got %d", l.InFeatures, len(x)))
	}

	w := l.Weight.Tensor().Data()
	b := l.Bias.Tensor().Data()

	y := make([]float32, l.OutFeatures)
	for j := 0; j < l.OutFeatures; j++ {
		sum := b[j]
		row := w[j*l.InFeatures : (j+1)*l.InFeatures]
		for k, xv := range x {
			sum += row[k] * xv
		}
		y[j] = sum
	}
	return y
}

// Backward accumulates weight and bias gradients for one sample and
// returns the gradient with respect to the input.
//
// x must be the input passed to Forward; dy is the gradient of the loss
// with respect to the output.
func (l *Linear) Backward(x, dy []float32) []float32 {
	w := l.Weight.Tensor().Data()
	gw := l.Weight.Grad().Data()
	gb := l.Bias.Grad().Data()

	dx := make([]float32, l.InFeatures)
	for j := 0; j < l.OutFeatures; j++ {
		dyj := dy[j]
		gb[j] += dyj
		if dyj == 0 {
			continue
		}
		gRow := gw[j*l.InFeatures : (j+1)*l.InFeatures]
		wRow := w[j*l.InFeatures : (j+1)*l.InFeatures]
		for k, xv := range x {
			gRow[k] += dyj * xv
			dx[k] += wRow[k] * dyj
		}
	}
	return dx
}

// Parameters returns the trainable parameters of this layer.
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.Weight, l.Bias}
}

package nn

import (
	"math"
	"math/rand"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Fills a tensor with values drawn from a uniform distribution
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))), which helps
// maintain the variance of activations across layers.
//
// The caller supplies the random source so that model construction is
// reproducible from a seed.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.RawTensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// Randn fills a tensor with values from N(0, std²).
func Randn(shape tensor.Shape, std float64, rng *rand.Rand) *tensor.RawTensor {
	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = float32(rng.NormFloat64() * std)
	}
	return t
}

// Zeros creates a zero-filled tensor. Commonly used for bias
// initialization.
func Zeros(shape tensor.Shape) *tensor.RawTensor {
	return tensor.Zeros(shape)
}

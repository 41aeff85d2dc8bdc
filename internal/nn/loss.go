package nn

import (
	"fmt"
	"math"
)

// Softmax converts logits into a probability distribution.
//
// Numerically stable: the maximum logit is subtracted before
// exponentiation. The result always sums to 1 and every entry is positive,
// so an argmax over it is well defined.
func Softmax(logits []float32) []float32 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	probs := make([]float32, len(logits))
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v - maxLogit))
		probs[i] = float32(e)
		sum += e
	}
	inv := float32(1.0 / sum)
	for i := range probs {
		probs[i] *= inv
	}
	return probs
}

// SoftmaxCrossEntropy computes softmax probabilities and the negative
// log-likelihood of the target class in one pass.
//
// The gradient of the loss with respect to the logits is probs with 1
// subtracted at the target index; callers apply that directly.
func SoftmaxCrossEntropy(logits []float32, target int) (probs []float32, loss float64, err error) {
	if target < 0 || target >= len(logits) {
		return nil, 0, fmt.Errorf("cross entropy: target %d out of range [0, %d)", target, len(logits))
	}

	probs = Softmax(logits)

	p := float64(probs[target])
	if p < 1e-12 {
		p = 1e-12 // clamp to keep the loss finite
	}
	loss = -math.Log(p)

	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return nil, 0, fmt.Errorf("cross entropy: non-finite loss")
	}
	return probs, loss, nil
}

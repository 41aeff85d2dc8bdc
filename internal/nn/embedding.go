package nn

import (
	"fmt"
	"math/rand"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

// Embedding is a lookup table that maps discrete token ids to dense
// vectors. The embedding vectors are learnable parameters; gradients
// scatter-add back into the looked-up rows.
type Embedding struct {
	Weight   *Parameter // [NumEmbed, EmbedDim]
	NumEmbed int        // vocabulary size
	EmbedDim int        // embedding vector size
}

// NewEmbedding creates an Embedding layer with weights drawn from
// N(0, 0.1²), small enough that early logits stay near uniform.
func NewEmbedding(numEmbeddings, embeddingDim int, rng *rand.Rand) *Embedding {
	weight := Randn(tensor.Shape{numEmbeddings, embeddingDim}, 0.1, rng)
	return &Embedding{
		Weight:   NewParameter("embedding.weight", weight),
		NumEmbed: numEmbeddings,
		EmbedDim: embeddingDim,
	}
}

// Forward looks up the embedding vector for each id.
//
// Rows are copied so that downstream caches never alias the weight matrix.
// Panics on an id outside [0, NumEmbed): ids are validated against the
// vocabulary before they reach the model.
func (e *Embedding) Forward(ids []int) [][]float32 {
	w := e.Weight.Tensor().Data()
	out := make([][]float32, len(ids))
	for t, id := range ids {
		if id < 0 || id >= e.NumEmbed {
			panic(fmt.Sprintf("Embedding.Forward: id %d out of range [0, %d)", id, e.NumEmbed))
		}
		row := make([]float32, e.EmbedDim)
		copy(row, w[id*e.EmbedDim:(id+1)*e.EmbedDim])
		out[t] = row
	}
	return out
}

// Backward scatter-adds per-step input gradients into the weight gradient.
//
// ids must be the same slice passed to Forward; dxs holds one gradient
// vector per step.
func (e *Embedding) Backward(ids []int, dxs [][]float32) {
	grad := e.Weight.Grad().Data()
	for t, id := range ids {
		dx := dxs[t]
		row := grad[id*e.EmbedDim : (id+1)*e.EmbedDim]
		for j := range row {
			row[j] += dx[j]
		}
	}
}

// Parameters returns the trainable parameters of this layer.
func (e *Embedding) Parameters() []*Parameter {
	return []*Parameter{e.Weight}
}

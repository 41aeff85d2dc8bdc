package nn

import (
	"math"
	"math/rand"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

// LSTM is a single-layer long short-term memory cell unrolled over an input
// sequence.
//
// Weight layout follows the PyTorch convention: the input and recurrent
// weight matrices stack the four gates row-wise in the order
// input (i), forget (f), cell (g), output (o):
//
//	WeightIH: [4H, D]  input projection
//	WeightHH: [4H, H]  recurrent projection
//	Bias:     [4H]
//
// The cell starts from zero hidden and cell state for every sequence; the
// pipeline never carries state across windows.
type LSTM struct {
	WeightIH *Parameter
	WeightHH *Parameter
	Bias     *Parameter
	InDim    int
	Hidden   int
}

// lstmCache stores the intermediate activations of one unrolled forward
// pass, consumed by Backward for backpropagation through time.
type lstmCache struct {
	xs [][]float32 // inputs per step
	hs [][]float32 // hidden states, hs[t] is the state after step t
	cs [][]float32 // cell states
	is [][]float32 // input gate activations
	fs [][]float32 // forget gate activations
	gs [][]float32 // candidate activations
	os [][]float32 // output gate activations
	tc [][]float32 // tanh(cell state) per step
}

// NewLSTM creates an LSTM layer with Xavier-initialized weights and a
// forget-gate bias of 1 (standard trick to keep memory open early in
// training).
func NewLSTM(inDim, hidden int, rng *rand.Rand) *LSTM {
	wih := Xavier(inDim, hidden, tensor.Shape{4 * hidden, inDim}, rng)
	whh := Xavier(hidden, hidden, tensor.Shape{4 * hidden, hidden}, rng)

	bias := Zeros(tensor.Shape{4 * hidden})
	bdata := bias.Data()
	for j := hidden; j < 2*hidden; j++ {
		bdata[j] = 1
	}

	return &LSTM{
		WeightIH: NewParameter("lstm.weight_ih", wih),
		WeightHH: NewParameter("lstm.weight_hh", whh),
		Bias:     NewParameter("lstm.bias", bias),
		InDim:    inDim,
		Hidden:   hidden,
	}
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}

func tanhf(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

// Forward unrolls the cell over xs and returns the final hidden state
// together with the cache needed for Backward.
func (l *LSTM) Forward(xs [][]float32) ([]float32, *lstmCache) {
	h := l.Hidden
	wih := l.WeightIH.Tensor().Data()
	whh := l.WeightHH.Tensor().Data()
	bias := l.Bias.Tensor().Data()

	cache := &lstmCache{
		xs: xs,
		hs: make([][]float32, len(xs)),
		cs: make([][]float32, len(xs)),
		is: make([][]float32, len(xs)),
		fs: make([][]float32, len(xs)),
		gs: make([][]float32, len(xs)),
		os: make([][]float32, len(xs)),
		tc: make([][]float32, len(xs)),
	}

	hPrev := make([]float32, h)
	cPrev := make([]float32, h)

	for t, x := range xs {
		// Pre-activations a = WeightIH·x + WeightHH·hPrev + Bias, 4H wide.
		a := make([]float32, 4*h)
		for j := range a {
			sum := bias[j]
			rowIH := wih[j*l.InDim : (j+1)*l.InDim]
			for k, xv := range x {
				sum += rowIH[k] * xv
			}
			rowHH := whh[j*h : (j+1)*h]
			for k, hv := range hPrev {
				sum += rowHH[k] * hv
			}
			a[j] = sum
		}

		it := make([]float32, h)
		ft := make([]float32, h)
		gt := make([]float32, h)
		ot := make([]float32, h)
		ct := make([]float32, h)
		ht := make([]float32, h)
		tct := make([]float32, h)

		for j := 0; j < h; j++ {
			it[j] = sigmoid(a[j])
			ft[j] = sigmoid(a[h+j])
			gt[j] = tanhf(a[2*h+j])
			ot[j] = sigmoid(a[3*h+j])
			ct[j] = ft[j]*cPrev[j] + it[j]*gt[j]
			tct[j] = tanhf(ct[j])
			ht[j] = ot[j] * tct[j]
		}

		cache.is[t], cache.fs[t], cache.gs[t], cache.os[t] = it, ft, gt, ot
		cache.cs[t], cache.hs[t], cache.tc[t] = ct, ht, tct
		hPrev, cPrev = ht, ct
	}

	final := make([]float32, h)
	if len(xs) > 0 {
		copy(final, cache.hs[len(xs)-1])
	}
	return final, cache
}

// Backward runs backpropagation through time.
//
// dhLast is the gradient of the loss with respect to the final hidden
// state. Weight gradients accumulate into the layer parameters; the
// returned slice holds the gradient for each input vector, aligned with the
// xs passed to Forward.
func (l *LSTM) Backward(cache *lstmCache, dhLast []float32) [][]float32 {
	h := l.Hidden
	steps := len(cache.xs)
	wih := l.WeightIH.Tensor().Data()
	whh := l.WeightHH.Tensor().Data()
	gih := l.WeightIH.Grad().Data()
	ghh := l.WeightHH.Grad().Data()
	gb := l.Bias.Grad().Data()

	dxs := make([][]float32, steps)

	dh := make([]float32, h)
	copy(dh, dhLast)
	dc := make([]float32, h)
	da := make([]float32, 4*h)

	for t := steps - 1; t >= 0; t-- {
		it, ft, gt, ot := cache.is[t], cache.fs[t], cache.gs[t], cache.os[t]
		tct := cache.tc[t]

		var cPrev []float32
		if t > 0 {
			cPrev = cache.cs[t-1]
		} else {
			cPrev = make([]float32, h)
		}

		// Gate gradients in pre-activation space.
		for j := 0; j < h; j++ {
			do := dh[j] * tct[j]
			dcj := dc[j] + dh[j]*ot[j]*(1-tct[j]*tct[j])

			di := dcj * gt[j]
			df := dcj * cPrev[j]
			dg := dcj * it[j]

			da[j] = di * it[j] * (1 - it[j])
			da[h+j] = df * ft[j] * (1 - ft[j])
			da[2*h+j] = dg * (1 - gt[j]*gt[j])
			da[3*h+j] = do * ot[j] * (1 - ot[j])

			dc[j] = dcj * ft[j] // flows to c_{t-1}
		}

		x := cache.xs[t]
		var hPrev []float32
		if t > 0 {
			hPrev = cache.hs[t-1]
		}

		dx := make([]float32, l.InDim)
		dhPrev := make([]float32, h)

		for j := 0; j < 4*h; j++ {
			daj := da[j]
			if daj == 0 {
				continue
			}
			gb[j] += daj

			rowIH := gih[j*l.InDim : (j+1)*l.InDim]
			wRowIH := wih[j*l.InDim : (j+1)*l.InDim]
			for k, xv := range x {
				rowIH[k] += daj * xv
				dx[k] += wRowIH[k] * daj
			}

			if hPrev != nil {
				rowHH := ghh[j*h : (j+1)*h]
				for k, hv := range hPrev {
					rowHH[k] += daj * hv
				}
			}
			wRowHH := whh[j*h : (j+1)*h]
			for k := 0; k < h; k++ {
				dhPrev[k] += wRowHH[k] * daj
			}
		}

		dxs[t] = dx
		dh = dhPrev
	}

	return dxs
}

// Parameters returns the trainable parameters of this layer.
func (l *LSTM) Parameters() []*Parameter {
	return []*Parameter{l.WeightIH, l.WeightHH, l.Bias}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/dataset"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/nn"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/optim"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

var _ nn.Module = (*Model)(nil)

func tinyModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(Config{ContextLen: 4, VocabSize: 5, EmbedDim: 8, Hidden: 12, Seed: 42})
	require.NoError(t, err)
	return m
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{ContextLen: 4, VocabSize: 0})
	assert.Error(t, err)

	_, err = New(Config{ContextLen: 0, VocabSize: 5})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	m, err := New(Config{ContextLen: 4, VocabSize: 5})
	require.NoError(t, err)
	assert.Equal(t, DefaultEmbedDim, m.Config().EmbedDim)
	assert.Equal(t, DefaultHidden, m.Config().Hidden)
}

func TestPredictReturnsDistribution(t *testing.T) {
	m := tinyModel(t)

	probs, err := m.Predict([]int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, probs, 5)

	var sum float64
	for _, p := range probs {
		assert.Greater(t, p, float32(0))
		sum += float64(p)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestPredictRejectsBadContext(t *testing.T) {
	m := tinyModel(t)

	_, err := m.Predict(nil)
	assert.Error(t, err)

	_, err = m.Predict([]int{0, 1, 9, 3})
	assert.Error(t, err)
}

func TestPredictIsDeterministic(t *testing.T) {
	m := tinyModel(t)

	a, err := m.Predict([]int{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := m.Predict([]int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFitStepDecreasesLoss(t *testing.T) {
	m := tinyModel(t)

	// A strictly repeating sequence the model should memorize quickly.
	batch := []dataset.Window{
		{Context: []int{0, 1, 2, 3}, Target: 4},
		{Context: []int{1, 2, 3, 4}, Target: 0},
		{Context: []int{2, 3, 4, 0}, Target: 1},
	}

	opt := optim.NewAdam(m.Parameters(), optim.AdamConfig{LR: 0.01})

	first, err := m.FitStep(batch)
	require.NoError(t, err)
	opt.Step()

	var last float64
	for i := 0; i < 60; i++ {
		opt.ZeroGrad()
		last, err = m.FitStep(batch)
		require.NoError(t, err)
		opt.Step()
	}

	assert.Less(t, last, first, "loss should decrease under training")
}

func TestFitStepRejectsBadWindows(t *testing.T) {
	m := tinyModel(t)

	_, err := m.FitStep(nil)
	assert.Error(t, err)

	_, err = m.FitStep([]dataset.Window{{Context: []int{0, 1}, Target: 0}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = m.FitStep([]dataset.Window{{Context: []int{0, 1, 2, 3}, Target: 9}})
	assert.Error(t, err)
}

func TestStateDictRoundTrip(t *testing.T) {
	m1 := tinyModel(t)
	state := m1.StateDict()
	require.Len(t, state, 7)

	m2, err := New(Config{ContextLen: 4, VocabSize: 5, EmbedDim: 8, Hidden: 12, Seed: 99})
	require.NoError(t, err)
	require.NoError(t, m2.LoadStateDict(state))

	p1, err := m1.Predict([]int{0, 1, 2, 3})
	require.NoError(t, err)
	p2, err := m2.Predict([]int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, p1, p2, "loaded model must reproduce source predictions")
}

func TestStateDictIsSnapshot(t *testing.T) {
	m := tinyModel(t)
	state := m.StateDict()

	m.Parameters()[0].Tensor().Data()[0] += 100
	assert.NotEqual(t, m.Parameters()[0].Tensor().Data()[0], state["embedding.weight"].Data()[0])
}

func TestLoadStateDictShapeMismatch(t *testing.T) {
	m := tinyModel(t)
	state := m.StateDict()
	state["embedding.weight"] = tensor.Zeros(tensor.Shape{2, 2})

	err := m.LoadStateDict(state)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLoadStateDictMissingParameter(t *testing.T) {
	m := tinyModel(t)
	state := m.StateDict()
	delete(state, "lstm.bias")
	state["unexpected"] = tensor.Zeros(tensor.Shape{1})

	assert.Error(t, m.LoadStateDict(state))
}

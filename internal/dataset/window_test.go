package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeWindowsScenario(t *testing.T) {
	windows := MakeWindows([]int{0, 1, 2, 3, 4}, 3)

	require.Len(t, windows, 2)
	assert.Equal(t, []int{0, 1, 2}, windows[0].Context)
	assert.Equal(t, 3, windows[0].Target)
	assert.Equal(t, []int{1, 2, 3}, windows[1].Context)
	assert.Equal(t, 4, windows[1].Target)
}

func TestMakeWindowsCardinality(t *testing.T) {
	tests := []struct {
		n, l, want int
	}{
		{0, 3, 0},
		{3, 3, 0},  // stream exactly L long: no target available
		{4, 3, 1},
		{10, 3, 7},
		{150, 100, 50},
	}

	for _, tt := range tests {
		ids := make([]int, tt.n)
		for i := range ids {
			ids[i] = i
		}
		got := MakeWindows(ids, tt.l)
		assert.Len(t, got, tt.want, "N=%d L=%d", tt.n, tt.l)
	}
}

func TestMakeWindowsContent(t *testing.T) {
	ids := make([]int, 20)
	for i := range ids {
		ids[i] = i * 2
	}

	const l = 5
	windows := MakeWindows(ids, l)
	require.Len(t, windows, len(ids)-l)

	for i, w := range windows {
		assert.Equal(t, ids[i:i+l], w.Context, "context of window %d", i)
		assert.Equal(t, ids[i+l], w.Target, "target of window %d", i)
	}
}

func TestBatches(t *testing.T) {
	ids := make([]int, 14)
	windows := MakeWindows(ids, 3) // 11 windows

	batches := Batches(windows, 4, nil)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 4)
	assert.Len(t, batches[2], 3, "final batch may be short")
}

func TestBatchesShuffleKeepsAllWindows(t *testing.T) {
	ids := make([]int, 30)
	for i := range ids {
		ids[i] = i
	}
	windows := MakeWindows(ids, 5)

	rng := rand.New(rand.NewSource(7))
	batches := Batches(windows, 8, rng)

	seen := make(map[int]bool)
	total := 0
	for _, batch := range batches {
		for _, w := range batch {
			seen[w.Target] = true
			total++
		}
	}
	assert.Equal(t, len(windows), total)
	assert.Len(t, seen, len(windows), "every window appears exactly once")

	// The source windows stay in stream order.
	assert.Equal(t, ids[5], windows[0].Target)
}

func TestBatchesEmpty(t *testing.T) {
	assert.Nil(t, Batches(nil, 4, nil))
	assert.Nil(t, Batches(MakeWindows([]int{1, 2}, 5), 4, nil))
}

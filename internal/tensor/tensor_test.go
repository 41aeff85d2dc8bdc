package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.shape.NumElements(), "shape %v", tt.shape)
	}
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{2, 3}.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShapeEqual(t *testing.T) {
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{2, 3}.Equal(Shape{2, 3, 1}))
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.True(t, raw.Shape().Equal(Shape{2, 3}))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, raw.Data())

	// Mismatched length rejected.
	_, err = FromSlice([]float32{1, 2}, Shape{2, 3})
	assert.Error(t, err)
}

func TestFromSliceCopies(t *testing.T) {
	src := []float32{1, 2, 3}
	raw, err := FromSlice(src, Shape{3})
	require.NoError(t, err)

	src[0] = 99
	assert.Equal(t, float32(1), raw.Data()[0], "FromSlice must copy input data")
}

func TestClone(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3}, Shape{3})
	require.NoError(t, err)

	clone := raw.Clone()
	clone.Data()[0] = 42
	assert.Equal(t, float32(1), raw.Data()[0], "Clone must not share backing data")
}

func TestBytesRoundTrip(t *testing.T) {
	raw, err := FromSlice([]float32{1.5, -2.25, 0, 1e-7}, Shape{2, 2})
	require.NoError(t, err)

	decoded, err := FromBytes(raw.Bytes(), Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, raw.Data(), decoded.Data())

	_, err = FromBytes(raw.Bytes()[:7], Shape{2, 2})
	assert.Error(t, err)
}

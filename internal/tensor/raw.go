// Package tensor provides the dense float32 tensor type shared by the
// neural-network, optimizer, and serialization packages.
//
// The pipeline is CPU-only and single-threaded, so RawTensor is a plain
// row-major float32 buffer with a shape. There are no views, strides, or
// device transfers; layers operate directly on the backing slice.
package tensor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// RawTensor is the low-level tensor representation: a row-major float32
// buffer with an attached shape.
type RawTensor struct {
	data  []float32
	shape Shape
}

// NewRaw creates a zero-filled RawTensor with the given shape.
func NewRaw(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:  make([]float32, shape.NumElements()),
		shape: shape.Clone(),
	}, nil
}

// FromSlice creates a RawTensor backed by a copy of data.
//
// The length of data must equal shape.NumElements().
func FromSlice(data []float32, shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	buf := make([]float32, len(data))
	copy(buf, data)
	return &RawTensor{data: buf, shape: shape.Clone()}, nil
}

// Zeros creates a zero-filled RawTensor, panicking on an invalid shape.
//
// Use this for internal allocations where the shape is known to be valid.
func Zeros(shape Shape) *RawTensor {
	t, err := NewRaw(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Data returns the backing float32 slice. Mutations are visible to all
// holders of the tensor.
func (r *RawTensor) Data() []float32 {
	return r.data
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	buf := make([]float32, len(r.data))
	copy(buf, r.data)
	return &RawTensor{data: buf, shape: r.shape.Clone()}
}

// Bytes encodes the tensor data as little-endian float32 for serialization.
func (r *RawTensor) Bytes() []byte {
	out := make([]byte, 4*len(r.data))
	for i, v := range r.data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// FromBytes decodes little-endian float32 data into a RawTensor of the
// given shape. The byte length must be exactly 4*shape.NumElements().
func FromBytes(b []byte, shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	n := shape.NumElements()
	if len(b) != 4*n {
		return nil, fmt.Errorf("byte length %d does not match shape %v (%d bytes expected)",
			len(b), shape, 4*n)
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return &RawTensor{data: data, shape: shape.Clone()}, nil
}

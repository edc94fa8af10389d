// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/crop/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: float32, float64, float16.Float16, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the runtime data type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
	Float16 DataType = tensor.Float16
)

// Shape represents the extents of an array.
// Example: Shape{2, 3, 4} represents a 3D array with extents 2×3×4.
type Shape = tensor.Shape

// Array is the dense row-major array contract: shape, linear offsets,
// reshaping, and separate value and gradient buffers.
type Array[T DType] = tensor.Array[T]

// Dense is the contiguous implementation of Array.
type Dense[T DType] = tensor.Dense[T]

// Creation functions

// NewDense creates a zero-filled array.
//
// Example:
//
//	x, err := tensor.NewDense[float32](tensor.Shape{2, 3})
func NewDense[T DType](shape Shape) (*Dense[T], error) {
	return tensor.NewDense[T](shape)
}

// FromSlice creates an array from a Go slice. The slice is copied.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*Dense[T], error) {
	return tensor.FromSlice(data, shape)
}

// Utility functions

// CanonicalAxis resolves a possibly negative axis against numAxes axes.
//
// Example:
//
//	axis, _ := tensor.CanonicalAxis(-1, 4) // 3
func CanonicalAxis(axis, numAxes int) (int, error) {
	return tensor.CanonicalAxis(axis, numAxes)
}

// DataTypeOf returns the runtime data type of T.
func DataTypeOf[T DType]() DataType {
	return tensor.DataTypeOf[T]()
}

package tensor

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Array is the dense row-major array contract consumed by operators.
//
// Every array carries two buffers of Shape().NumElements() elements each:
// primary values (Data) and gradient values (Grad).
type Array[T DType] interface {
	// Shape returns the array's extents. Callers must not modify it.
	Shape() Shape

	// Offset returns the row-major element offset of indices.
	// See Shape.LinearOffset for the handling of short index vectors.
	Offset(indices []int) int

	// Reshape changes the array's extents, reallocating both buffers if needed.
	Reshape(shape Shape) error

	// Data returns the primary value buffer.
	Data() []T

	// Grad returns the gradient buffer.
	Grad() []T
}

// Verify that Dense implements Array.
var _ Array[float32] = (*Dense[float32])(nil)

// Dense is a contiguous row-major array with a value buffer and a gradient buffer.
//
// Example:
//
//	d, _ := tensor.NewDense[float32](tensor.Shape{2, 3})
//	d.Set(1.5, 1, 2)
//	v := d.At(1, 2) // 1.5
type Dense[T DType] struct {
	shape  Shape
	stride []int
	data   []T
	grad   []T
}

// NewDense creates a zero-filled array with the given shape.
func NewDense[T DType](shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid shape")
	}
	n := shape.NumElements()
	return &Dense[T]{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]T, n),
		grad:   make([]T, n),
	}, nil
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's value buffer; the gradient buffer is zeroed.
func FromSlice[T DType](data []T, shape Shape) (*Dense[T], error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	d, err := NewDense[T](shape)
	if err != nil {
		return nil, err
	}
	copy(d.data, data)
	return d, nil
}

// Shape returns the array's shape.
func (d *Dense[T]) Shape() Shape {
	return d.shape
}

// Strides returns the array's row-major strides.
func (d *Dense[T]) Strides() []int {
	return d.stride
}

// NumAxes returns the number of axes.
func (d *Dense[T]) NumAxes() int {
	return len(d.shape)
}

// Dim returns the extent of axis, which may be negative to count from the end.
func (d *Dense[T]) Dim(axis int) int {
	a, err := d.shape.CanonicalAxis(axis)
	if err != nil {
		panic(err.Error())
	}
	return d.shape[a]
}

// NumElements returns the total number of elements.
func (d *Dense[T]) NumElements() int {
	return len(d.data)
}

// DType returns the array's runtime data type.
func (d *Dense[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Offset returns the row-major element offset of indices.
func (d *Dense[T]) Offset(indices []int) int {
	return d.shape.LinearOffset(indices)
}

// Reshape changes the shape of the array.
//
// Backing storage is kept when it is large enough for the new shape, in
// which case existing contents are preserved up to the new element count.
// Otherwise both buffers are reallocated and zeroed.
func (d *Dense[T]) Reshape(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return errors.WithMessage(err, "invalid shape")
	}
	n := shape.NumElements()
	d.data = resize(d.data, n)
	d.grad = resize(d.grad, n)
	d.shape = shape.Clone()
	d.stride = shape.ComputeStrides()
	return nil
}

func resize[T DType](buf []T, n int) []T {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Data returns the value buffer. Modifications write through to the array.
func (d *Dense[T]) Data() []T {
	return d.data
}

// Grad returns the gradient buffer. Modifications write through to the array.
func (d *Dense[T]) Grad() []T {
	return d.grad
}

// ZeroGrad sets every element of the gradient buffer to zero.
func (d *Dense[T]) ZeroGrad() {
	clear(d.grad)
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (d *Dense[T]) At(indices ...int) T {
	return d.data[d.flat(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (d *Dense[T]) Set(value T, indices ...int) {
	d.data[d.flat(indices)] = value
}

func (d *Dense[T]) flat(indices []int) int {
	if len(indices) != len(d.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(d.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= d.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, d.shape[i]))
		}
		offset += idx * d.stride[i]
	}
	return offset
}

// String returns a human-readable summary of the array.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%v (%s elements)", d.DType(), d.shape, humanize.Comma(int64(len(d.data))))
}

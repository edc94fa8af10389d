package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape represents the extents of an array, one per axis.
type Shape []int

// NumElements returns the total number of elements in the array.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every extent is non-negative.
// Zero extents are allowed: such arrays simply hold no elements.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// CanonicalAxis resolves axis, which may count from the end when negative,
// to an absolute index in [0, len(s)).
func (s Shape) CanonicalAxis(axis int) (int, error) {
	return CanonicalAxis(axis, len(s))
}

// CanonicalAxis resolves axis against an array with numAxes axes.
// Valid inputs are in [-numAxes, numAxes); -1 names the last axis.
func CanonicalAxis(axis, numAxes int) (int, error) {
	if axis < -numAxes || axis >= numAxes {
		return 0, errors.Errorf("axis %d out of range for %d-D array (valid range [%d, %d))",
			axis, numAxes, -numAxes, numAxes)
	}
	if axis < 0 {
		return axis + numAxes, nil
	}
	return axis, nil
}

// LinearOffset flattens indices into a row-major element offset.
//
// indices may be shorter than the shape: missing trailing indices are taken
// as zero, so LinearOffset(nil) is 0 and a prefix addresses the start of the
// corresponding sub-block. An index may equal its extent, which addresses
// the position one past the end of that axis.
func (s Shape) LinearOffset(indices []int) int {
	if len(indices) > len(s) {
		panic(fmt.Sprintf("expected at most %d indices, got %d", len(s), len(indices)))
	}
	offset := 0
	for axis, dim := range s {
		offset *= dim
		if axis < len(indices) {
			idx := indices[axis]
			if idx < 0 || idx > dim {
				panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, axis, dim))
			}
			offset += idx
		}
	}
	return offset
}

// String renders the shape as "(d0, d1, ...)".
func (s Shape) String() string {
	if len(s) == 0 {
		return "()"
	}
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(dim)
	}
	return out + ")"
}

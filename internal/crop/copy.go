package crop

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/crop/internal/parallel"
	"github.com/born-ml/crop/internal/tensor"
)

// Extract copies the crop window of input, starting at offsets, into output.
//
// from is indexed with input's layout and to with output's layout; for a
// forward pass they are input.Data() and output.Data(). The window spans
// output's extents on every axis.
//
// Only the leading axes are enumerated: each innermost row is contiguous in
// both arrays, so it is moved with a single copy.
func Extract[T tensor.DType](offsets []int, input, output tensor.Array[T], from, to []T, cfg parallel.Config) {
	checkTransfer("Extract", offsets, input, output, len(from), len(to))
	n := rowLength(output.Shape())
	forEachRowParallel(output.Shape(), offsets, cfg, func(reduced, withOffset []int) {
		src := input.Offset(withOffset)
		dst := output.Offset(reduced)
		copy(to[dst:dst+n], from[src:src+n])
	})
}

// Scatter copies every value of the cropped array back into the window of
// input that Extract reads from. It is the gradient of Extract.
//
// from is indexed with output's layout and to with input's layout; for a
// backward pass they are output.Grad() and input.Grad(). Elements of to
// outside the window are left untouched.
func Scatter[T tensor.DType](offsets []int, input, output tensor.Array[T], from, to []T, cfg parallel.Config) {
	checkTransfer("Scatter", offsets, input, output, len(to), len(from))
	n := rowLength(output.Shape())
	forEachRowParallel(output.Shape(), offsets, cfg, func(reduced, withOffset []int) {
		src := output.Offset(reduced)
		dst := input.Offset(withOffset)
		copy(to[dst:dst+n], from[src:src+n])
	})
}

// checkTransfer panics if the arrays, buffers and offsets don't agree.
// inputLen and outputLen are the lengths of the buffers laid out like input
// and output respectively.
func checkTransfer[T tensor.DType](op string, offsets []int, input, output tensor.Array[T], inputLen, outputLen int) {
	inShape, outShape := input.Shape(), output.Shape()
	if len(inShape) == 0 || len(inShape) != len(outShape) || len(offsets) != len(inShape) {
		exceptions.Panicf("crop.%s: input %v, output %v and offsets %v must have the same non-zero rank",
			op, inShape, outShape, offsets)
	}
	for axis := range inShape {
		if offsets[axis] < 0 || offsets[axis]+outShape[axis] > inShape[axis] {
			exceptions.Panicf("crop.%s: window of %v at offsets %v does not fit in input %v (axis %d)",
				op, outShape, offsets, inShape, axis)
		}
	}
	if inputLen != inShape.NumElements() {
		exceptions.Panicf("crop.%s: input buffer has %d elements, shape %v requires %d",
			op, inputLen, inShape, inShape.NumElements())
	}
	if outputLen != outShape.NumElements() {
		exceptions.Panicf("crop.%s: output buffer has %d elements, shape %v requires %d",
			op, outputLen, outShape, outShape.NumElements())
	}
}

// rowLength is the number of contiguous elements moved per copy.
func rowLength(shape tensor.Shape) int {
	return shape[len(shape)-1]
}

// numRowBlocks is the number of independent top-level iterations of the
// traversal: the extent of axis 0, or 1 for a vector, which is a single row.
func numRowBlocks(shape tensor.Shape) int {
	if len(shape) == 1 {
		return 1
	}
	return shape[0]
}

// forEachRowParallel runs forEachRow over every row of shape, splitting the
// axis-0 iterations according to cfg. Rows in different blocks write
// disjoint regions, so the blocks need no synchronization.
func forEachRowParallel(shape tensor.Shape, offsets []int, cfg parallel.Config, fn func(reduced, withOffset []int)) {
	parallel.For(numRowBlocks(shape), cfg, func(lo, hi int) {
		forEachRow(shape, offsets, lo, hi, fn)
	})
}

// forEachRow enumerates, in row-major order, every index prefix over the
// leading len(shape)-1 axes of shape whose axis-0 index lies in [lo, hi).
//
// For each prefix fn receives the prefix itself (reduced, addressing the
// cropped array) and the prefix shifted by offsets and extended with the
// innermost offset (withOffset, addressing the source array). The slices are
// reused between calls and must not be retained.
//
// For a vector there is a single empty prefix, selected by any non-empty
// [lo, hi).
func forEachRow(shape tensor.Shape, offsets []int, lo, hi int, fn func(reduced, withOffset []int)) {
	if lo >= hi {
		return
	}
	last := len(shape) - 1
	reduced := make([]int, last)
	withOffset := make([]int, last+1)
	copy(withOffset, offsets)
	if last == 0 {
		fn(reduced, withOffset)
		return
	}
	for axis := 1; axis < last; axis++ {
		if shape[axis] == 0 {
			return
		}
	}

	reduced[0] = lo
	withOffset[0] = lo + offsets[0]
	for {
		fn(reduced, withOffset)

		// Odometer step over axes [1, last), carrying into axis 0.
		axis := last - 1
		for axis > 0 {
			reduced[axis]++
			withOffset[axis]++
			if reduced[axis] < shape[axis] {
				break
			}
			reduced[axis] = 0
			withOffset[axis] = offsets[axis]
			axis--
		}
		if axis == 0 {
			reduced[0]++
			withOffset[0]++
			if reduced[0] >= hi {
				return
			}
		}
	}
}

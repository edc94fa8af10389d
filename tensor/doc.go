// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense arrays consumed by the crop operator.
//
// # Overview
//
// A Dense[T] is a contiguous row-major array holding two buffers of the same
// size: primary values (Data) and gradient values (Grad). Operators depend on
// the Array[T] interface only, so any dense row-major container can be used.
//
// # Basic Usage
//
//	import "github.com/born-ml/crop/tensor"
//
//	func main() {
//	    x, _ := tensor.NewDense[float32](tensor.Shape{2, 3})
//	    x.Set(1, 0, 2)
//	    off := x.Offset([]int{1}) // 3: start of row 1
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (floating-point)
//   - float16.Float16 (half precision, github.com/x448/float16)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// # Memory Layout
//
// Arrays use row-major order: the last axis is contiguous. Extents may be
// zero, in which case the array holds no elements.
package tensor

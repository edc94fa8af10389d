// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package crop provides the public API of the N-dimensional crop operator.
//
// A crop layer takes a source array and a reference array and outputs the
// window of the source that has the reference's extents on every axis from
// Config.Axis on. Backward scatters the output gradient into a zeroed source
// gradient at the same offsets.
//
// Example:
//
//	layer := crop.New[float32](crop.Config{Axis: 2, Offsets: []int{1, 1}})
//	if err := layer.Setup(source, reference); err != nil {
//	    return err
//	}
//	if err := layer.Reshape(source, reference, output); err != nil {
//	    return err
//	}
//	layer.Forward(source, output)
//	layer.Backward(output, true, source)
package crop

import (
	"github.com/born-ml/crop/internal/crop"
	"github.com/born-ml/crop/internal/parallel"
	"github.com/born-ml/crop/internal/tensor"
)

// DefaultAxis is the start axis used by DefaultConfig.
const DefaultAxis = crop.DefaultAxis

// Config selects the start axis and the crop offsets.
type Config = crop.Config

// DefaultConfig returns a Config cropping from DefaultAxis with zero offsets.
func DefaultConfig() Config {
	return crop.DefaultConfig()
}

// Plan holds the resolved per-axis offsets and output shape.
type Plan = crop.Plan

// Resolve computes the crop plan of source against reference from an
// absolute startAxis.
func Resolve(source, reference tensor.Shape, startAxis int, offsets []int) (Plan, error) {
	return crop.Resolve(source, reference, startAxis, offsets)
}

// Errors

// ErrConfiguration is matched by every configuration error.
var ErrConfiguration = crop.ErrConfiguration

// ErrShape is matched by every shape error.
var ErrShape = crop.ErrShape

// ConfigError carries the details of a rejected configuration.
type ConfigError = crop.ConfigError

// ShapeError carries the details of a crop window that does not fit.
type ShapeError = crop.ShapeError

// Layer

// Layer is the crop operator for element type T.
type Layer[T tensor.DType] = crop.Layer[T]

// Option configures a Layer.
type Option = crop.Option

// ParallelConfig controls how the copy is split across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns a ParallelConfig using every CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// WithParallel splits the copy of independent axis-0 blocks across goroutines.
func WithParallel(cfg ParallelConfig) Option {
	return crop.WithParallel(cfg)
}

// New creates a crop layer.
//
// Example:
//
//	layer := crop.New[float32](crop.DefaultConfig(), crop.WithParallel(crop.DefaultParallelConfig()))
func New[T tensor.DType](cfg Config, opts ...Option) *Layer[T] {
	return crop.New[T](cfg, opts...)
}

// Copy engine

// Extract copies the window of input at offsets into a buffer laid out like output.
func Extract[T tensor.DType](offsets []int, input, output tensor.Array[T], from, to []T) {
	crop.Extract(offsets, input, output, from, to, parallel.Sequential())
}

// Scatter copies a buffer laid out like output into the window of input at offsets.
func Scatter[T tensor.DType](offsets []int, input, output tensor.Array[T], from, to []T) {
	crop.Scatter(offsets, input, output, from, to, parallel.Sequential())
}

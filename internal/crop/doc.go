// Package crop implements an N-dimensional crop operator and its gradient.
//
// Given a source array and a reference array, the operator extracts the
// axis-aligned window of the source that has the reference's extents on every
// axis from a configured start axis on, and keeps the source extents on the
// axes before it. In the gradient direction the incoming gradient is
// scattered back into a zeroed array of the source's shape at the same
// offsets.
//
// The package is split into three pieces:
//   - Config.Validate and Resolve check the configuration and compute the
//     per-axis offsets and the output shape (a Plan).
//   - Extract and Scatter move data between the two layouts, one contiguous
//     innermost row per copy.
//   - Layer drives both for a pipeline: Setup, Reshape, Forward, Backward.
//
// Example: source (1, 3, 5, 5), reference (1, 3, 3, 3), Axis 2 and Offsets
// [1, 1] give output (1, 3, 3, 3) and offsets [0, 0, 1, 1]: the 3x3 window
// starting at row 1, column 1 of every 5x5 slice.
package crop

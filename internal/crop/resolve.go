package crop

import (
	"github.com/pkg/errors"

	"github.com/born-ml/crop/internal/tensor"
)

// Plan is the crop geometry resolved for one pair of source/reference shapes.
type Plan struct {
	// Offsets holds the crop offset of every source axis; axes before the
	// start axis are always 0.
	Offsets []int

	// Shape is the output shape: source extents before the start axis,
	// reference extents from it on.
	Shape tensor.Shape
}

// Resolve computes the per-axis offsets and the output shape for cropping
// source to reference from startAxis on.
//
// startAxis must be absolute (see Config.Validate) and offsets must have
// length 0, 1 or len(source)-startAxis. Resolve is a pure function of its
// inputs. Nothing is returned unless every axis passes the bounds check.
func Resolve(source, reference tensor.Shape, startAxis int, offsets []int) (Plan, error) {
	numAxes := len(source)
	if startAxis < 0 || startAxis >= numAxes ||
		(len(offsets) > 1 && startAxis+len(offsets) != numAxes) {
		return Plan{}, errors.WithStack(&ConfigError{
			Axis:       startAxis,
			NumAxes:    numAxes,
			NumOffsets: len(offsets),
			Reason:     "start axis or number of offsets inconsistent with source rank",
		})
	}
	if len(reference) != numAxes {
		return Plan{}, errors.WithStack(&ShapeError{
			Axis:      -1,
			Source:    source.Clone(),
			Reference: reference.Clone(),
		})
	}

	plan := Plan{
		Offsets: make([]int, numAxes),
		Shape:   source.Clone(),
	}
	for axis := range numAxes {
		offset := 0
		extent := source[axis]
		if axis >= startAxis {
			extent = reference[axis]
			switch len(offsets) {
			case 0:
			case 1:
				offset = offsets[0]
			default:
				offset = offsets[axis-startAxis]
			}
		}
		if offset < 0 || source[axis]-offset < extent {
			return Plan{}, errors.WithStack(&ShapeError{
				Axis:      axis,
				Offset:    offset,
				Extent:    extent,
				Source:    source.Clone(),
				Reference: reference.Clone(),
			})
		}
		plan.Shape[axis] = extent
		plan.Offsets[axis] = offset
	}
	return plan, nil
}

package crop

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/crop/internal/tensor"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrConfiguration reports a crop configuration that cannot be used with
	// the given number of axes.
	ErrConfiguration = errors.New("crop: invalid configuration")

	// ErrShape reports source/reference shapes whose crop window would not
	// fit inside the source.
	ErrShape = errors.New("crop: invalid crop shape")
)

// ConfigError describes a configuration rejected at setup time.
type ConfigError struct {
	Axis       int // Configured axis, as given (may be negative).
	NumAxes    int // Number of axes of the source array.
	NumOffsets int // Length of the configured offsets list.
	Reason     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("crop: %s (axis=%d, num_axes=%d, num_offsets=%d)",
		e.Reason, e.Axis, e.NumAxes, e.NumOffsets)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// ShapeError describes a crop window that does not fit inside the source.
// Axis is -1 when the shapes disagree on the number of axes.
type ShapeError struct {
	Axis      int
	Offset    int // Crop offset applied on Axis.
	Extent    int // Requested output extent on Axis.
	Source    tensor.Shape
	Reference tensor.Shape
}

func (e *ShapeError) Error() string {
	if e.Axis < 0 {
		return fmt.Sprintf("crop: source %v and reference %v have different number of axes",
			e.Source, e.Reference)
	}
	return fmt.Sprintf("crop: invalid crop parameters in dimension %d: source extent %d minus offset %d is smaller than %d (source %v, reference %v)",
		e.Axis, e.Source[e.Axis], e.Offset, e.Extent, e.Source, e.Reference)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

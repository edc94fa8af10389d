package crop

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/crop/internal/tensor"
)

// DefaultAxis is the start axis used when none is configured: for
// [batch, channels, height, width] arrays it crops the spatial axes.
const DefaultAxis = 2

// Config selects the cropped axes and where the crop window starts.
//
// Axes before Axis keep the source extent and offset 0. Axes from Axis on take
// the reference array's extent, starting at:
//   - offset 0, when Offsets is empty
//   - Offsets[0] on every cropped axis, when Offsets has one value
//   - Offsets[i-Axis] on axis i, when Offsets has one value per cropped axis
//
// Axis may be negative to count from the last axis.
type Config struct {
	Axis    int
	Offsets []int
}

// DefaultConfig returns a Config cropping from DefaultAxis with zero offsets.
func DefaultConfig() Config {
	return Config{Axis: DefaultAxis}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	return Config{Axis: c.Axis, Offsets: slices.Clone(c.Offsets)}
}

// Validate checks the configuration against a source array with numAxes axes
// and returns the absolute start axis.
//
// It only depends on the number of axes, not on the extents, so it can run
// once before any array sizes are known.
func (c Config) Validate(numAxes int) (int, error) {
	startAxis, err := tensor.CanonicalAxis(c.Axis, numAxes)
	if err != nil {
		return 0, errors.WithStack(c.configError(numAxes, "crop axis bigger than input dim"))
	}
	if len(c.Offsets) > 1 && startAxis+len(c.Offsets) != numAxes {
		return 0, errors.WithStack(c.configError(numAxes,
			"number of offset values specified must be equal to the number of dimensions following axis"))
	}
	for _, off := range c.Offsets {
		if off < 0 {
			return 0, errors.WithStack(c.configError(numAxes, "offsets must be non-negative"))
		}
	}
	return startAxis, nil
}

func (c Config) configError(numAxes int, reason string) *ConfigError {
	return &ConfigError{
		Axis:       c.Axis,
		NumAxes:    numAxes,
		NumOffsets: len(c.Offsets),
		Reason:     reason,
	}
}

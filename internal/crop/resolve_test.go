package crop

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/crop/internal/tensor"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		numAxes int
		want    int
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig(), numAxes: 4, want: 2},
		{name: "axis0", cfg: Config{Axis: 0}, numAxes: 3, want: 0},
		{name: "last axis", cfg: Config{Axis: 3, Offsets: []int{1}}, numAxes: 4, want: 3},
		{name: "negative axis", cfg: Config{Axis: -2, Offsets: []int{1, 2}}, numAxes: 4, want: 2},
		{name: "single offset", cfg: Config{Axis: 1, Offsets: []int{5}}, numAxes: 4, want: 1},
		{name: "full offsets", cfg: Config{Axis: 1, Offsets: []int{1, 2, 3}}, numAxes: 4, want: 1},
		{name: "axis too big", cfg: Config{Axis: 4}, numAxes: 4, wantErr: true},
		{name: "axis too negative", cfg: Config{Axis: -5}, numAxes: 4, wantErr: true},
		{name: "scalar source", cfg: Config{Axis: 0}, numAxes: 0, wantErr: true},
		{name: "offsets count mismatch", cfg: Config{Axis: 2, Offsets: []int{1, 1, 1}}, numAxes: 4, wantErr: true},
		{name: "negative offset", cfg: Config{Axis: 2, Offsets: []int{-1}}, numAxes: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Validate(tt.numAxes)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfiguration)
				assert.NotErrorIs(t, err, ErrShape)
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.numAxes, cfgErr.NumAxes)
				assert.Equal(t, len(tt.cfg.Offsets), cfgErr.NumOffsets)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := Config{Axis: 1, Offsets: []int{1, 2}}
	clone := cfg.Clone()
	cfg.Offsets[0] = 7
	assert.Equal(t, []int{1, 2}, clone.Offsets)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		source      tensor.Shape
		reference   tensor.Shape
		startAxis   int
		offsets     []int
		wantShape   tensor.Shape
		wantOffsets []int
	}{
		{
			name:        "spatial crop",
			source:      tensor.Shape{1, 3, 5, 5},
			reference:   tensor.Shape{1, 3, 3, 3},
			startAxis:   2,
			offsets:     []int{1, 1},
			wantShape:   tensor.Shape{1, 3, 3, 3},
			wantOffsets: []int{0, 0, 1, 1},
		},
		{
			name:        "single offset reused",
			source:      tensor.Shape{2, 4, 6},
			reference:   tensor.Shape{2, 2, 4},
			startAxis:   1,
			offsets:     []int{2},
			wantShape:   tensor.Shape{2, 2, 4},
			wantOffsets: []int{0, 2, 2},
		},
		{
			name:        "no offsets",
			source:      tensor.Shape{4, 7},
			reference:   tensor.Shape{9, 3},
			startAxis:   1,
			wantShape:   tensor.Shape{4, 3},
			wantOffsets: []int{0, 0},
		},
		{
			name:        "leading axes keep source extent",
			source:      tensor.Shape{5, 6, 8},
			reference:   tensor.Shape{1, 1, 2},
			startAxis:   2,
			offsets:     []int{6},
			wantShape:   tensor.Shape{5, 6, 2},
			wantOffsets: []int{0, 0, 6},
		},
		{
			name:        "all axes",
			source:      tensor.Shape{4, 4},
			reference:   tensor.Shape{2, 3},
			startAxis:   0,
			offsets:     []int{2, 1},
			wantShape:   tensor.Shape{2, 3},
			wantOffsets: []int{2, 1},
		},
		{
			name:        "empty window at the end",
			source:      tensor.Shape{3, 4},
			reference:   tensor.Shape{3, 0},
			startAxis:   1,
			offsets:     []int{4},
			wantShape:   tensor.Shape{3, 0},
			wantOffsets: []int{0, 4},
		},
		{
			name:        "vector",
			source:      tensor.Shape{10},
			reference:   tensor.Shape{4},
			startAxis:   0,
			offsets:     []int{6},
			wantShape:   tensor.Shape{4},
			wantOffsets: []int{6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Resolve(tt.source, tt.reference, tt.startAxis, tt.offsets)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, plan.Shape)
			assert.Equal(t, tt.wantOffsets, plan.Offsets)

			for axis := range tt.source {
				if axis < tt.startAxis {
					assert.Equal(t, tt.source[axis], plan.Shape[axis])
					assert.Zero(t, plan.Offsets[axis])
				} else {
					assert.Equal(t, tt.reference[axis], plan.Shape[axis])
				}
				assert.GreaterOrEqual(t, tt.source[axis]-plan.Offsets[axis], plan.Shape[axis])
			}
		})
	}
}

func TestResolve_DoesNotAliasInputs(t *testing.T) {
	source := tensor.Shape{2, 5}
	plan, err := Resolve(source, tensor.Shape{2, 3}, 1, []int{1})
	require.NoError(t, err)
	plan.Shape[0] = 99
	assert.Equal(t, tensor.Shape{2, 5}, source)
}

func TestResolve_Idempotent(t *testing.T) {
	source := tensor.Shape{2, 3, 8, 9}
	reference := tensor.Shape{2, 3, 4, 5}
	offsets := []int{2, 3}

	first, err := Resolve(source, reference, 2, offsets)
	require.NoError(t, err)
	second, err := Resolve(source, reference, 2, offsets)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_ShapeErrors(t *testing.T) {
	tests := []struct {
		name      string
		source    tensor.Shape
		reference tensor.Shape
		startAxis int
		offsets   []int
		wantAxis  int
	}{
		{
			name:      "reference larger than source",
			source:    tensor.Shape{1, 3, 5, 5},
			reference: tensor.Shape{1, 3, 6, 6},
			startAxis: 2,
			wantAxis:  2,
		},
		{
			name:      "reference larger than source with offsets",
			source:    tensor.Shape{1, 3, 5, 5},
			reference: tensor.Shape{1, 3, 6, 6},
			startAxis: 2,
			offsets:   []int{0, 0},
			wantAxis:  2,
		},
		{
			name:      "offset pushes window out",
			source:    tensor.Shape{1, 3, 5, 5},
			reference: tensor.Shape{1, 3, 3, 3},
			startAxis: 2,
			offsets:   []int{1, 3},
			wantAxis:  3,
		},
		{
			name:      "single offset shifts window past axis 1",
			source:    tensor.Shape{2, 4, 6},
			reference: tensor.Shape{2, 4, 4},
			startAxis: 1,
			offsets:   []int{2},
			wantAxis:  1,
		},
		{
			name:      "single offset too large",
			source:    tensor.Shape{2, 4, 6},
			reference: tensor.Shape{2, 4, 4},
			startAxis: 1,
			offsets:   []int{3},
			wantAxis:  1,
		},
		{
			name:      "rank mismatch",
			source:    tensor.Shape{2, 4, 6},
			reference: tensor.Shape{4, 4},
			startAxis: 1,
			wantAxis:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Resolve(tt.source, tt.reference, tt.startAxis, tt.offsets)
			require.Error(t, err)
			assert.Empty(t, plan.Shape)
			assert.Empty(t, plan.Offsets)
			assert.ErrorIs(t, err, ErrShape)
			assert.NotErrorIs(t, err, ErrConfiguration)

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.wantAxis, shapeErr.Axis)
			assert.Equal(t, tt.source, shapeErr.Source)
			assert.Equal(t, tt.reference, shapeErr.Reference)
			assert.Contains(t, err.Error(), "crop:")
		})
	}
}

func TestResolve_ConfigErrors(t *testing.T) {
	_, err := Resolve(tensor.Shape{1, 3, 5, 5}, tensor.Shape{1, 3, 3, 3}, 2, []int{1, 1, 1})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = Resolve(tensor.Shape{1, 3, 5, 5}, tensor.Shape{1, 3, 3, 3}, 4, nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = Resolve(tensor.Shape{1, 3, 5, 5}, tensor.Shape{1, 3, 3, 3}, -1, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

package crop

import (
	"reflect"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/crop/internal/parallel"
	"github.com/born-ml/crop/internal/tensor"
)

// Layer crops a source array to the extents of a reference array.
//
// The layer takes two inputs: the source, which supplies the values, and the
// reference, which only supplies the output extents. Its single output holds
// the crop window of the source.
//
// Usage follows the pipeline lifecycle:
//
//	layer := crop.New[float32](crop.Config{Axis: 2, Offsets: []int{1, 1}})
//	if err := layer.Setup(source, reference); err != nil { ... }
//	if err := layer.Reshape(source, reference, output); err != nil { ... }
//	layer.Forward(source, output)
//	layer.Backward(output, true, source)
//
// Reshape must be called again whenever the source or reference shape changes.
// A Layer is not safe for concurrent use.
type Layer[T tensor.DType] struct {
	cfg      Config
	parallel parallel.Config

	startAxis int
	plan      Plan
	source    tensor.Shape // Source shape the plan was resolved for.
	resolved  bool
}

// Option configures a Layer.
type Option func(*options)

type options struct {
	parallel parallel.Config
}

// WithParallel splits the copy of independent axis-0 blocks across goroutines.
// By default layers copy on the calling goroutine.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.parallel = cfg
	}
}

// New creates a crop layer. cfg is copied, so later changes to the caller's
// Offsets slice have no effect.
func New[T tensor.DType](cfg Config, opts ...Option) *Layer[T] {
	o := options{parallel: parallel.Sequential()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Layer[T]{
		cfg:      cfg.Clone(),
		parallel: o.parallel,
	}
}

// Config returns a copy of the layer configuration.
func (l *Layer[T]) Config() Config {
	return l.cfg.Clone()
}

// Setup validates the configuration against the initial source array.
// Only the number of axes matters here; extents are checked by Reshape.
// A nil source or reference, including a typed nil pointer, is a
// configuration error.
func (l *Layer[T]) Setup(source, reference tensor.Array[T]) error {
	if isNil(source) || isNil(reference) {
		return errors.WithStack(&ConfigError{
			Axis:       l.cfg.Axis,
			NumOffsets: len(l.cfg.Offsets),
			Reason:     "crop needs both a source and a reference input",
		})
	}
	numAxes := len(source.Shape())
	startAxis, err := l.cfg.Validate(numAxes)
	if err != nil {
		return err
	}
	l.startAxis = startAxis
	klog.V(1).Infof("crop: setup with start axis %d of %d, offsets %v", startAxis, numAxes, l.cfg.Offsets)
	return nil
}

// Reshape resolves the crop plan for the current source and reference shapes
// and reshapes output to the cropped shape.
//
// On error the previous plan is discarded and output is left unchanged.
func (l *Layer[T]) Reshape(source, reference, output tensor.Array[T]) error {
	l.resolved = false
	srcShape := source.Shape()
	startAxis, err := l.cfg.Validate(len(srcShape))
	if err != nil {
		return err
	}
	plan, err := Resolve(srcShape, reference.Shape(), startAxis, l.cfg.Offsets)
	if err != nil {
		return err
	}
	if err := output.Reshape(plan.Shape); err != nil {
		return errors.WithMessagef(err, "crop: failed to reshape output to %v", plan.Shape)
	}

	l.startAxis = startAxis
	l.plan = plan
	l.source = srcShape.Clone()
	l.resolved = true
	if klog.V(2).Enabled() {
		klog.Infof("crop: %v -> %v (reference %v), offsets %v, copying %s of %s elements",
			srcShape, plan.Shape, reference.Shape(), plan.Offsets,
			humanize.Comma(int64(plan.Shape.NumElements())), humanize.Comma(int64(srcShape.NumElements())))
	}
	return nil
}

// StartAxis returns the absolute start axis resolved by the last Setup or Reshape.
func (l *Layer[T]) StartAxis() int {
	return l.startAxis
}

// Plan returns a copy of the plan resolved by the last successful Reshape.
func (l *Layer[T]) Plan() Plan {
	return Plan{
		Offsets: slices.Clone(l.plan.Offsets),
		Shape:   l.plan.Shape.Clone(),
	}
}

// Forward copies the crop window of source's values into output's values.
//
// It panics if Reshape has not succeeded for the current source shape.
func (l *Layer[T]) Forward(source, output tensor.Array[T]) {
	l.checkResolved("Forward", source, output)
	klog.V(3).Infof("crop: forward %v -> %v", source.Shape(), output.Shape())
	Extract(l.plan.Offsets, source, output, source.Data(), output.Data(), l.parallel)
}

// Backward propagates output's gradient into source's gradient when
// propagate is true. The crop window receives the incoming gradient and
// everything outside it is zeroed. When propagate is false source is left
// untouched.
//
// It panics if Reshape has not succeeded for the current source shape.
func (l *Layer[T]) Backward(output tensor.Array[T], propagate bool, source tensor.Array[T]) {
	if !propagate {
		return
	}
	l.checkResolved("Backward", source, output)
	klog.V(3).Infof("crop: backward %v -> %v", output.Shape(), source.Shape())
	srcGrad := source.Grad()
	clear(srcGrad)
	Scatter(l.plan.Offsets, source, output, output.Grad(), srcGrad, l.parallel)
}

// isNil reports whether a is nil or holds a nil pointer.
func isNil(a any) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (l *Layer[T]) checkResolved(op string, source, output tensor.Array[T]) {
	if !l.resolved {
		exceptions.Panicf("crop.Layer.%s: called before a successful Reshape", op)
	}
	if !source.Shape().Equal(l.source) {
		exceptions.Panicf("crop.Layer.%s: source shape %v changed since Reshape resolved %v, call Reshape again",
			op, source.Shape(), l.source)
	}
	if !output.Shape().Equal(l.plan.Shape) {
		exceptions.Panicf("crop.Layer.%s: output shape %v does not match resolved shape %v",
			op, output.Shape(), l.plan.Shape)
	}
}

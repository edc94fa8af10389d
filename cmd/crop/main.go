// Package main provides a small command line driver for the crop operator.
//
// It crops an array filled with 0, 1, 2, ... and reports the resolved plan:
//
//	crop -source=1,3,5,5 -reference=1,3,3,3 -axis=2 -offsets=1,1 -print
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/crop/crop"
	"github.com/born-ml/crop/tensor"
)

const version = "v0.1.0"

var (
	flagSource    = flag.String("source", "1,3,5,5", "Comma-separated extents of the source array.")
	flagReference = flag.String("reference", "1,3,3,3", "Comma-separated extents of the reference array.")
	flagAxis      = flag.Int("axis", crop.DefaultAxis, "First cropped axis; negative values count from the end.")
	flagOffsets   = flag.String("offsets", "", "Comma-separated crop offsets: empty, one value, or one per cropped axis.")
	flagParallel  = flag.Bool("parallel", false, "Split the copy across all CPUs.")
	flagPrint     = flag.Bool("print", false, "Print the cropped values.")
	flagVersion   = flag.Bool("version", false, "Print the version and exit.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagVersion {
		fmt.Printf("crop %s\n", version)
		return
	}

	err := exceptions.TryCatch[error](func() {
		must.M(runFlags(os.Stdout, *flagSource, *flagReference, *flagOffsets, *flagAxis, *flagParallel, *flagPrint))
	})
	if err != nil {
		klog.Fatalf("Failed with error: %+v", err)
	}
}

// runFlags parses the comma-separated flag values and calls run.
func runFlags(w io.Writer, sourceFlag, referenceFlag, offsetsFlag string, axis int, parallel, printValues bool) error {
	source, err := parseInts(sourceFlag)
	if err != nil {
		return errors.WithMessage(err, "-source")
	}
	reference, err := parseInts(referenceFlag)
	if err != nil {
		return errors.WithMessage(err, "-reference")
	}
	offsets, err := parseInts(offsetsFlag)
	if err != nil {
		return errors.WithMessage(err, "-offsets")
	}
	return run(w, crop.Config{Axis: axis, Offsets: offsets}, source, reference, parallel, printValues)
}

// run crops an iota-filled source to reference and writes a report to w.
func run(w io.Writer, cfg crop.Config, sourceShape, referenceShape tensor.Shape, parallel, printValues bool) error {
	source, err := tensor.NewDense[float32](sourceShape)
	if err != nil {
		return errors.WithMessage(err, "source")
	}
	for i := range source.Data() {
		source.Data()[i] = float32(i)
	}
	reference, err := tensor.NewDense[float32](referenceShape)
	if err != nil {
		return errors.WithMessage(err, "reference")
	}
	output, err := tensor.NewDense[float32](tensor.Shape{0})
	if err != nil {
		return err
	}

	var opts []crop.Option
	if parallel {
		opts = append(opts, crop.WithParallel(crop.DefaultParallelConfig()))
	}
	layer := crop.New[float32](cfg, opts...)
	if err := layer.Setup(source, reference); err != nil {
		return err
	}
	if err := layer.Reshape(source, reference, output); err != nil {
		return err
	}
	layer.Forward(source, output)

	copy(output.Grad(), output.Data())
	layer.Backward(output, true, source)

	plan := layer.Plan()
	fmt.Fprintf(w, "source:    %v (%s elements)\n", source.Shape(), humanize.Comma(int64(source.NumElements())))
	fmt.Fprintf(w, "reference: %v\n", reference.Shape())
	fmt.Fprintf(w, "axis:      %d\n", layer.StartAxis())
	fmt.Fprintf(w, "offsets:   %v\n", plan.Offsets)
	fmt.Fprintf(w, "output:    %v (%s elements)\n", plan.Shape, humanize.Comma(int64(output.NumElements())))
	if printValues {
		fmt.Fprintf(w, "values:    %v\n", output.Data())
	}
	return nil
}

// parseInts parses a comma-separated list of integers; "" is an empty list.
func parseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid integer %q in %q", part, s)
		}
		values[i] = v
	}
	return values, nil
}

package pipeline

import (
	"fmt"
	"strconv"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/measure"
)

// Reason explains why a slice is not calculable.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonUnlocatable Reason = "unlocatable-reference-points"
	ReasonDegenerate  Reason = "degenerate-geometry"
	ReasonMissing     Reason = "missing-structure"
	ReasonOther       Reason = "other"
)

// Value is one entry of a measurement vector: a scalar or a point.
type Value struct {
	Scalar  float64
	Point   models.Point
	IsPoint bool
}

func scalar(v float64) Value     { return Value{Scalar: v} }
func point(p models.Point) Value { return Value{Point: p, IsPoint: true} }

// String formats the value for tabular output. Points are written as "(x, y)".
func (v Value) String() string {
	if v.IsPoint {
		return fmt.Sprintf("(%s, %s)", formatFloat(v.Point.X), formatFloat(v.Point.Y))
	}
	return formatFloat(v.Scalar)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Result is the outcome of one slice. Names always holds the full name list
// of the run; Values is either aligned with it or empty.
type Result struct {
	ID         string
	Calculable bool
	Reason     Reason
	Err        error
	Values     []Value
	Names      []string

	// Measurements holds the pixel space geometry of a calculable slice
	Measurements *measure.Slice
}

// Lookup returns the value stored under name.
func (r Result) Lookup(name string) (Value, bool) {
	if !r.Calculable {
		return Value{}, false
	}
	for i, n := range r.Names {
		if n == name {
			return r.Values[i], true
		}
	}
	return Value{}, false
}

func (r Result) String() string {
	if r.Calculable {
		return fmt.Sprintf("%s: %d values", r.ID, len(r.Values))
	}
	return fmt.Sprintf("%s: not calculable (%s)", r.ID, r.Reason)
}

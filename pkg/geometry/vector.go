// Package geometry provides the 2D primitives shared by every measurement
// stage: vector arithmetic, angles, rotation, polygon area, centroid and
// perimeter, line intersection and integer line rasterization.
package geometry

import (
	"math"

	"shortcardiac/internal/models"
)

// UndefinedAngle is returned by Angle when either vector has zero length.
// It is a sentinel, not a real angle.
const UndefinedAngle = 1000.0

// Precision selects whether computed points snap to whole pixels.
type Precision int

const (
	// Pixel rounds results to the nearest integer coordinate
	Pixel Precision = iota
	// SubPixel keeps real-valued coordinates
	SubPixel
)

// Round rounds half to even, matching how pixel coordinates are snapped
// everywhere in the pipeline.
func Round(v float64) float64 {
	return math.RoundToEven(v)
}

// RoundPoint rounds both coordinates of p.
func RoundPoint(p models.Point) models.Point {
	return models.Point{X: Round(p.X), Y: Round(p.Y)}
}

// Vector returns the elementwise difference a-b.
func Vector(a, b models.Point) models.Point {
	return a.Sub(b)
}

// Dot returns the dot product of v and w.
func Dot(v, w models.Point) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the Euclidean norm of v. The vector is scaled by its L1
// norm before squaring so that large coordinates cannot overflow.
func Length(v models.Point) float64 {
	scale := math.Abs(v.X) + math.Abs(v.Y)
	if scale == 0 {
		return 0
	}
	s := v.Scale(1 / scale)
	return math.Sqrt(Dot(s, s)) * scale
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b models.Point) float64 {
	return Length(Vector(a, b))
}

// Angle returns the angle between v1 and v2 in degrees, rounded to three
// decimals. UndefinedAngle is returned when either vector is zero.
func Angle(v1, v2 models.Point) float64 {
	l1 := Length(v1)
	l2 := Length(v2)
	if l1 == 0 || l2 == 0 {
		return UndefinedAngle
	}
	value := Dot(v1.Scale(1/l1), v2.Scale(1/l2))
	// rounding can push the cosine just outside [-1, 1]
	value = math.Max(-1, math.Min(1, value))
	deg := math.Acos(value) * 180 / math.Pi
	return math.Round(deg*1000) / 1000
}

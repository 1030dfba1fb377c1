// Package align measures the tilt of the septal axis and rotates slices onto
// a vertical septum.
package align

import (
	"errors"
	"math"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// ErrUndefinedAxis is returned when both reference points coincide.
var ErrUndefinedAxis = errors.New("septal axis has zero length")

var up = models.Point{X: 0, Y: -1}

// SeptumAngle returns the signed angle in degrees between the septal axis
// (inferior to superior) and the image up direction.
func SeptumAngle(refs models.ReferencePoints) (float64, error) {
	a := geometry.Angle(geometry.Vector(refs.Superior, refs.Inferior), up)
	if a == geometry.UndefinedAngle {
		return 0, ErrUndefinedAxis
	}
	if refs.Superior.X > refs.Inferior.X {
		a = -a
	}
	return a, nil
}

// ImageCenter returns the center of a width x height image at the working
// resolution. Without a known image size the center of the bounding box of
// all contours is used.
func ImageCenter(width, height, factor int, set models.ContourSet) models.Point {
	if width > 0 && height > 0 {
		f := float64(factor)
		return models.Point{X: float64(width) * f / 2, Y: float64(height) * f / 2}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, label := range set.Labels() {
		c, _ := set.Get(label)
		for _, p := range c {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return models.Point{}
	}
	return models.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}

// Correction is the outcome of the angle correction stage.
type Correction struct {
	// SeptumAngle is the measured tilt in degrees
	SeptumAngle float64

	// Center is the rotation origin
	Center models.Point

	// Applied reports whether the contours were rotated
	Applied bool

	// Contours is the (possibly rotated) contour snapshot
	Contours models.ContourSet

	// Refs are the reference points in the frame of Contours
	Refs models.ReferencePoints
}

// QueryRotation is the rotation measurement queries still have to apply to
// work in the septum-aligned frame.
func (c Correction) QueryRotation() float64 {
	if c.Applied {
		return 0
	}
	return c.SeptumAngle
}

// Corrector rotates contour sets onto the septal axis.
type Corrector struct {
	enabled   bool
	precision geometry.Precision
}

// NewCorrector returns a Corrector. A disabled Corrector passes contour sets through.
func NewCorrector(enabled bool, precision geometry.Precision) *Corrector {
	return &Corrector{enabled: enabled, precision: precision}
}

// Apply measures the septum angle and, when enabled, rotates every contour
// and both reference points about center.
func (c *Corrector) Apply(set models.ContourSet, refs models.ReferencePoints, center models.Point) (Correction, error) {
	angle, err := SeptumAngle(refs)
	if err != nil {
		return Correction{}, err
	}

	out := Correction{
		SeptumAngle: angle,
		Center:      center,
		Contours:    set,
		Refs:        refs,
	}
	if !c.enabled {
		return out, nil
	}

	out.Applied = true
	out.Contours = Rotate(set, center, angle, c.precision)
	out.Refs = models.ReferencePoints{
		Superior: geometry.Rotate(center, refs.Superior, angle, c.precision),
		Inferior: geometry.Rotate(center, refs.Inferior, angle, c.precision),
	}
	return out, nil
}

// Rotate returns a new set with every contour rotated about center.
func Rotate(set models.ContourSet, center models.Point, angle float64, prec geometry.Precision) models.ContourSet {
	return set.Map(func(_ string, c models.Contour) models.Contour {
		return geometry.RotateContour(c, center, angle, prec)
	})
}

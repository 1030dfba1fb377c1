package measure

import (
	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// Converter maps measurements at the working resolution to physical units.
type Converter struct {
	factor  float64
	spacing models.PixelSpacing
}

// NewConverter returns a Converter from upsampled pixels to millimetres.
func NewConverter(factor int, spacing models.PixelSpacing) Converter {
	if factor < 1 {
		factor = 1
	}
	return Converter{factor: float64(factor), spacing: spacing}
}

// Line returns the length of l in mm. Each endpoint is scaled per axis
// before the distance is taken.
func (c Converter) Line(l models.Line) float64 {
	a := models.Point{X: l.A.X / c.factor * c.spacing.X, Y: l.A.Y / c.factor * c.spacing.Y}
	b := models.Point{X: l.B.X / c.factor * c.spacing.X, Y: l.B.Y / c.factor * c.spacing.Y}
	return geometry.Distance(a, b)
}

// Point returns p in source image pixels. No spacing is applied.
func (c Converter) Point(p models.Point) models.Point {
	return p.Scale(1 / c.factor)
}

// Area returns a pixel area in mm^2.
func (c Converter) Area(a float64) float64 {
	return a / (c.factor * c.factor) * c.spacing.X * c.spacing.Y
}

// Scope returns a pixel perimeter in mm using the mean spacing.
func (c Converter) Scope(s float64) float64 {
	return s / c.factor * (c.spacing.X + c.spacing.Y) / 2
}

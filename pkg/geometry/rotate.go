package geometry

import (
	"math"

	"shortcardiac/internal/models"
)

// Rotate turns point counterclockwise (in a y-up frame) around origin by
// angleDeg degrees.
func Rotate(origin, point models.Point, angleDeg float64, prec Precision) models.Point {
	rad := angleDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx := point.X - origin.X
	dy := point.Y - origin.Y

	q := models.Point{
		X: origin.X + cos*dx - sin*dy,
		Y: origin.Y + sin*dx + cos*dy,
	}
	if prec == Pixel {
		return RoundPoint(q)
	}
	return q
}

// RotateContour rotates every point of c around origin and returns a new contour.
func RotateContour(c models.Contour, origin models.Point, angleDeg float64, prec Precision) models.Contour {
	out := make(models.Contour, len(c))
	for i, p := range c {
		out[i] = Rotate(origin, p, angleDeg, prec)
	}
	return out
}

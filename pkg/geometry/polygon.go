package geometry

import (
	"errors"

	"shortcardiac/internal/models"
)

var (
	// ErrEmptyContour is returned for operations that need at least one point
	ErrEmptyContour = errors.New("empty contour")

	// ErrDegeneratePolygon is returned when a polygon encloses zero area
	ErrDegeneratePolygon = errors.New("degenerate polygon: enclosed area is zero")
)

// SignedArea returns the shoelace area of c. The sign depends on the
// orientation of the polygon.
func SignedArea(c models.Contour) float64 {
	area := 0.0
	n := len(c)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return area / 2
}

// Area returns the absolute shoelace area of c.
func Area(c models.Contour) float64 {
	a := SignedArea(c)
	if a < 0 {
		return -a
	}
	return a
}

// Centroid returns the area-weighted centroid of c.
func Centroid(c models.Contour) (models.Point, error) {
	if len(c) == 0 {
		return models.Point{}, ErrEmptyContour
	}
	a := SignedArea(c)
	if a == 0 {
		return models.Point{}, ErrDegeneratePolygon
	}

	var xs, ys float64
	n := len(c)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := c[i].X*c[j].Y - c[j].X*c[i].Y
		xs += (c[i].X + c[j].X) * cross
		ys += (c[i].Y + c[j].Y) * cross
	}
	return models.Point{X: xs / (6 * a), Y: ys / (6 * a)}, nil
}

// PixelCentroid is Centroid snapped to the nearest pixel.
func PixelCentroid(c models.Contour) (models.Point, error) {
	p, err := Centroid(c)
	if err != nil {
		return p, err
	}
	return RoundPoint(p), nil
}

// Perimeter sums the edge lengths of c including the closing edge.
func Perimeter(c models.Contour) float64 {
	if len(c) == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(c)-1; i++ {
		total += Distance(c[i], c[i+1])
	}
	return total + Distance(c[0], c[len(c)-1])
}

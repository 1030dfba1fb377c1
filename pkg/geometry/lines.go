package geometry

import (
	"math"

	"shortcardiac/internal/models"
)

func det(a, b models.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// LineIntersection intersects the infinite lines through a and b.
//
// Parallel lines have a zero determinant; the denominator is then replaced
// by 1, which yields a finite but geometrically meaningless point. Callers
// that care must test for parallelism themselves.
func LineIntersection(a, b models.Line) models.Point {
	xdiff := models.Point{X: a.A.X - a.B.X, Y: b.A.X - b.B.X}
	ydiff := models.Point{X: a.A.Y - a.B.Y, Y: b.A.Y - b.B.Y}

	div := det(xdiff, ydiff)
	if div == 0 {
		div = 1
	}
	d := models.Point{X: det(a.A, a.B), Y: det(b.A, b.B)}
	return models.Point{
		X: det(d, xdiff) / div,
		Y: det(d, ydiff) / div,
	}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b models.Point, prec Precision) models.Point {
	m := a.Add(b.Sub(a).Scale(0.5))
	if prec == Pixel {
		return RoundPoint(m)
	}
	return m
}

// Bresenham rasterizes the segment from a to b onto the integer grid.
// Coordinates are truncated to integers first. The returned points run
// from a to b.
func Bresenham(a, b models.Point) []models.Point {
	x1, y1 := int(a.X), int(a.Y)
	x2, y2 := int(b.X), int(b.Y)

	steep := abs(y2-y1) > abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	reversed := false
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
		reversed = true
	}

	dx := x2 - x1
	dy := abs(y2 - y1)
	errTerm := int(math.RoundToEven(float64(dx) / 2))
	ystep := -1
	if y1 < y2 {
		ystep = 1
	}

	points := make([]models.Point, 0, dx+1)
	y := y1
	for x := x1; x <= x2; x++ {
		if steep {
			points = append(points, models.Point{X: float64(y), Y: float64(x)})
		} else {
			points = append(points, models.Point{X: float64(x), Y: float64(y)})
		}
		errTerm -= dy
		if errTerm < 0 {
			y += ystep
			errTerm += dx
		}
	}

	if reversed {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}

// Nearest returns the index of the point in c closest to ref, or -1 for an
// empty contour. Ties resolve to the earliest point.
func Nearest(c models.Contour, ref models.Point) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range c {
		if d := Distance(p, ref); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

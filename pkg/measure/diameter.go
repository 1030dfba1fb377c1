package measure

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// ErrNoDiameter is returned when no x column of a contour spans two points.
var ErrNoDiameter = errors.New("no diameter found")

// column is the vertical extent of a contour at one integer x
type column struct {
	bottom, top models.Point
	length      float64
}

// columns bins points by truncated x. Every bin also takes the points of
// its two neighbours to bridge gaps. A bin with fewer than two points maps
// to nil.
func columns(c models.Contour) (map[int]*column, []int) {
	buckets := make(map[int]models.Contour)
	var keys []int
	for _, p := range c {
		k := int(p.X)
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], p)
	}
	sort.Ints(keys)

	cols := make(map[int]*column, len(keys))
	for _, k := range keys {
		var pts models.Contour
		for d := -1; d <= 1; d++ {
			pts = append(pts, buckets[k+d]...)
		}
		if len(pts) < 2 {
			cols[k] = nil
			continue
		}
		hi, lo := 0, 0
		for i, p := range pts {
			if p.Y > pts[hi].Y {
				hi = i
			}
			if p.Y < pts[lo].Y {
				lo = i
			}
		}
		x := float64(k)
		bottom := geometry.RoundPoint(models.Point{X: x, Y: pts[hi].Y})
		top := geometry.RoundPoint(models.Point{X: x, Y: pts[lo].Y})
		cols[k] = &column{bottom: bottom, top: top, length: geometry.Distance(bottom, top)}
	}
	return cols, keys
}

// Diameter finds the longest vertical chord of c after rotating it by angle
// about its centroid and returns it rotated back into the frame of c.
//
// Chord lengths are smoothed over a sliding window of (xmax-xmin)/divisor
// columns on either side; the column at the window center with the largest
// mean wins.
func Diameter(c models.Contour, angle float64, divisor int) (models.Line, error) {
	center, err := geometry.PixelCentroid(c)
	if err != nil {
		return models.Line{}, err
	}
	if divisor < 1 {
		divisor = 1
	}

	rotated := geometry.RotateContour(c, center, angle, geometry.Pixel)
	cols, keys := columns(rotated)
	minX, maxX := keys[0], keys[len(keys)-1]
	w := int(geometry.Round(float64(maxX-minX) / float64(divisor)))

	var best *column
	bestMean := 0.0
	window := make([]float64, 0, 2*w+1)
	for i := minX + w; i <= maxX-w; i++ {
		lo, hi := i-w, i+w
		if w == 0 {
			hi = i + 1
		}
		window = window[:0]
		for k := lo; k < hi; k++ {
			if col := cols[k]; col != nil {
				window = append(window, col.length)
			}
		}
		if len(window) == 0 {
			continue
		}
		if mean := stat.Mean(window, nil); mean > bestMean {
			if col := cols[i]; col != nil {
				best = col
				bestMean = mean
			}
		}
	}
	if best == nil {
		return models.Line{}, ErrNoDiameter
	}

	return models.Line{
		A: geometry.Rotate(center, best.bottom, -angle, geometry.Pixel),
		B: geometry.Rotate(center, best.top, -angle, geometry.Pixel),
	}, nil
}

// Length returns the pixel length of l.
func Length(l models.Line) float64 {
	return geometry.Distance(l.A, l.B)
}

// EccentricityIndex is the ratio of the 0 degree diameter to the 90 degree
// diameter.
func EccentricityIndex(d0, d90 models.Line) (float64, error) {
	l90 := Length(d90)
	if l90 == 0 {
		return math.NaN(), ErrNoDiameter
	}
	return Length(d0) / l90, nil
}

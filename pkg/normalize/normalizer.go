// Package normalize rescales contours to the working resolution and
// optionally resamples them along a closed spline.
package normalize

import (
	"math"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// Normalizer scales contours by an upsample factor and, when smoothing is
// on, replaces them with an evenly resampled closed spline.
type Normalizer struct {
	factor    int
	smoothing bool
	precision geometry.Precision
}

// New returns a Normalizer that upsamples contours by factor.
func New(factor int, smoothing bool, precision geometry.Precision) *Normalizer {
	if factor < 1 {
		factor = 1
	}
	return &Normalizer{factor: factor, smoothing: smoothing, precision: precision}
}

// SampleCount approximates how many points an already scaled contour needs:
// the circumference of the ellipse spanning its bounding box (Ramanujan)
// divided by the upsample factor.
func SampleCount(c models.Contour, factor int) int {
	if len(c) == 0 {
		return 0
	}
	minX, maxX := c[0].X, c[0].X
	minY, maxY := c[0].Y, c[0].Y
	for _, p := range c[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	d1 := maxX - minX
	d2 := maxY - minY
	n := math.Pi * (3*(d1+d2)/2 - math.Sqrt(d1*d2)) / float64(factor)
	return int(geometry.Round(n))
}

// Contour normalizes a single contour. It never fails: when the spline
// cannot be fitted the scaled input is returned.
func (n *Normalizer) Contour(c models.Contour) models.Contour {
	scaled := make(models.Contour, len(c))
	for i, p := range c {
		scaled[i] = p.Scale(float64(n.factor))
	}

	out := scaled
	if n.smoothing && len(scaled) > 1 {
		if count := SampleCount(scaled, n.factor); count >= 3 {
			if s, err := FitClosedSpline(scaled); err == nil {
				out = s.Sample(count)
			}
		}
	}

	if n.precision == geometry.Pixel {
		for i, p := range out {
			out[i] = geometry.RoundPoint(p)
		}
	}
	return out
}

// Apply normalizes every contour of set and returns the new snapshot.
func (n *Normalizer) Apply(set models.ContourSet) models.ContourSet {
	return set.Map(func(_ string, c models.Contour) models.Contour {
		return n.Contour(c)
	})
}

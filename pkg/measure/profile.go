package measure

import (
	"math"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// excludedX parks points on the wrong side of the origin far away on the
// x axis so they only win when nothing else is available.
const excludedX = -100.0

// RadialProfile samples the contour c from origin at every angle.
//
// For an angle a the contour is rotated by frame-a about origin. Points
// whose rotated y lies on the wrong side of origin (not below it for
// a >= 0, not above it for a < 0) are excluded, and the contour point whose
// rotated x is closest to the origin's x is paired with origin. frame is
// the rotation that brings c into the septum-aligned frame; it is zero when
// the slice was already corrected.
func RadialProfile(origin models.Point, c models.Contour, angles []int, frame float64) ([]models.Line, error) {
	if len(c) == 0 {
		return nil, geometry.ErrEmptyContour
	}

	lines := make([]models.Line, 0, len(angles))
	for _, a := range angles {
		best := 0
		bestDX := math.Inf(1)
		for i, p := range c {
			r := geometry.Rotate(origin, p, frame-float64(a), geometry.Pixel)
			x := r.X
			if a >= 0 && r.Y <= origin.Y || a < 0 && r.Y >= origin.Y {
				x = excludedX
			}
			if dx := math.Abs(x - origin.X); dx < bestDX {
				best = i
				bestDX = dx
			}
		}
		lines = append(lines, models.Line{A: c[best], B: origin})
	}
	return lines, nil
}

// Package split cuts closed contours into open arcs at the septal reference
// points and derives the contours built from those arcs.
package split

import (
	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

type region int

const (
	outside region = iota
	first
	second
)

// Polygon cuts the point stream of a closed contour at p1 and p2 and
// returns the two arcs, longer perimeter first.
//
// Only the first occurrence of each split point starts an arc. Points seen
// before either split point wrap around and are appended to the arc that
// starts second. Every input point lands in exactly one arc.
func Polygon(c models.Contour, p1, p2 models.Point) (longer, shorter models.Contour) {
	var arc1, arc2, pending, tail1, tail2 models.Contour
	state := outside

	for _, p := range c {
		if p == p1 && len(arc2) == 0 {
			tail1, pending = pending, nil
			state = second
			arc2 = append(arc2, p)
			continue
		}
		if p == p2 && len(arc1) == 0 {
			tail2, pending = pending, nil
			state = first
			arc1 = append(arc1, p)
			continue
		}
		switch state {
		case first:
			arc1 = append(arc1, p)
		case second:
			arc2 = append(arc2, p)
		default:
			pending = append(pending, p)
		}
	}

	arc2 = append(arc2, tail2...)
	arc1 = append(arc1, tail1...)
	// a stream that never met a split point keeps its points
	arc1 = append(arc1, pending...)

	if geometry.Perimeter(arc1) > geometry.Perimeter(arc2) {
		return arc1, arc2
	}
	return arc2, arc1
}

// AtReferences splits c at the contour points nearest to the two reference points.
func AtReferences(c models.Contour, refs models.ReferencePoints) (longer, shorter models.Contour) {
	if len(c) == 0 {
		return nil, nil
	}
	p1 := c[geometry.Nearest(c, refs.Superior)]
	p2 := c[geometry.Nearest(c, refs.Inferior)]
	return Polygon(c, p1, p2)
}

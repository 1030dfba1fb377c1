package models

import (
	"image"
	"sort"
)

// Point is a 2D coordinate in pixel space of the (possibly upsampled) image.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Contour is an ordered sequence of points. A closed contour implicitly
// connects its last point back to the first; orientation is not fixed.
type Contour []Point

// Clone returns a copy that shares no memory with c.
func (c Contour) Clone() Contour {
	if c == nil {
		return nil
	}
	out := make(Contour, len(c))
	copy(out, c)
	return out
}

// Reversed returns a copy of c in reverse order.
func (c Contour) Reversed() Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// ContourSet maps structure labels to contours for one image slice.
//
// A ContourSet is an immutable snapshot: every modifying operation returns a
// new set and leaves the receiver untouched, so pipeline stages can hand sets
// to one another without sharing mutable state.
type ContourSet struct {
	contours map[string]Contour
}

// NewContourSet copies m into a new snapshot.
func NewContourSet(m map[string]Contour) ContourSet {
	s := ContourSet{contours: make(map[string]Contour, len(m))}
	for label, c := range m {
		s.contours[label] = c.Clone()
	}
	return s
}

// Get returns a copy of the contour stored under label.
func (s ContourSet) Get(label string) (Contour, bool) {
	c, ok := s.contours[label]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Has reports whether label is present.
func (s ContourSet) Has(label string) bool {
	_, ok := s.contours[label]
	return ok
}

// Len returns the number of stored contours.
func (s ContourSet) Len() int { return len(s.contours) }

// Labels returns the stored labels in sorted order.
func (s ContourSet) Labels() []string {
	labels := make([]string, 0, len(s.contours))
	for label := range s.contours {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// With returns a new set in which label maps to c.
func (s ContourSet) With(label string, c Contour) ContourSet {
	out := ContourSet{contours: make(map[string]Contour, len(s.contours)+1)}
	for k, v := range s.contours {
		out.contours[k] = v
	}
	out.contours[label] = c.Clone()
	return out
}

// Map returns a new set with fn applied to every contour.
func (s ContourSet) Map(fn func(label string, c Contour) Contour) ContourSet {
	out := ContourSet{contours: make(map[string]Contour, len(s.contours))}
	for k, v := range s.contours {
		out.contours[k] = fn(k, v.Clone())
	}
	return out
}

// PixelSpacing is the physical size of one pixel in mm along each axis.
type PixelSpacing struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Line is a segment between two points.
type Line struct {
	A, B Point
}

// ReferencePoints marks the two septal insertion sites of a slice.
// Superior has the smaller image y, Inferior the larger.
type ReferencePoints struct {
	Superior Point
	Inferior Point
}

// SliceInput is everything the measurement pipeline consumes for one slice.
type SliceInput struct {
	// ID identifies the slice, typically the source file name
	ID string

	// Contours holds the raw structure contours in original pixel space
	Contours ContourSet

	// Spacing is the pixel spacing of the source image in mm
	Spacing PixelSpacing

	// Width and Height are the source image dimensions in pixels; zero when unknown
	Width  int
	Height int

	// Image is the optional intensity image used for feature extraction
	Image image.Image
}

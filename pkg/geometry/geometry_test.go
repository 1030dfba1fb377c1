package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcardiac/internal/models"
)

func square() models.Contour {
	return models.Contour{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
}

func TestSquareMeasurements(t *testing.T) {
	c := square()

	assert.InDelta(t, 100.0, Area(c), 1e-9)
	assert.InDelta(t, 40.0, Perimeter(c), 1e-9)

	centroid, err := Centroid(c)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, centroid.X, 1e-9)
	assert.InDelta(t, 5.0, centroid.Y, 1e-9)
}

func TestAreaIgnoresOrientation(t *testing.T) {
	c := square()
	assert.InDelta(t, Area(c), Area(c.Reversed()), 1e-9)
	assert.InDelta(t, -SignedArea(c), SignedArea(c.Reversed()), 1e-9)

	a, err := Centroid(c)
	require.NoError(t, err)
	b, err := Centroid(c.Reversed())
	require.NoError(t, err)
	assert.InDelta(t, a.X, b.X, 1e-9)
	assert.InDelta(t, a.Y, b.Y, 1e-9)
}

func TestCentroidDegenerate(t *testing.T) {
	collinear := models.Contour{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	_, err := Centroid(collinear)
	assert.ErrorIs(t, err, ErrDegeneratePolygon)

	_, err = PixelCentroid(nil)
	assert.ErrorIs(t, err, ErrEmptyContour)
}

func TestLength(t *testing.T) {
	assert.InDelta(t, math.Sqrt(200), Distance(models.Point{}, models.Point{X: 10, Y: 10}), 1e-9)
	assert.Equal(t, 0.0, Distance(models.Point{}, models.Point{}))
	assert.InDelta(t, 5e300*math.Sqrt2, Length(models.Point{X: 5e300, Y: 5e300}), 1e290)
}

func TestAngle(t *testing.T) {
	assert.Equal(t, 90.0, Angle(models.Point{X: 0, Y: 1}, models.Point{X: 1, Y: 0}))
	assert.Equal(t, UndefinedAngle, Angle(models.Point{}, models.Point{X: 1, Y: 1}))
	assert.Equal(t, 0.0, Angle(models.Point{X: 2, Y: 2}, models.Point{X: 1, Y: 1}))
	assert.Equal(t, 45.0, Angle(models.Point{X: 1, Y: 1}, models.Point{X: 0, Y: 1}))
}

func TestRotate(t *testing.T) {
	q := Rotate(models.Point{}, models.Point{X: 1, Y: 0}, 90, SubPixel)
	assert.InDelta(t, 0.0, q.X, 1e-9)
	assert.InDelta(t, 1.0, q.Y, 1e-9)

	q = Rotate(models.Point{}, models.Point{X: 1, Y: 0}, 90, Pixel)
	assert.Equal(t, models.Point{X: 0, Y: 1}, q)

	origin := models.Point{X: 5, Y: 5}
	q = Rotate(origin, models.Point{X: 7, Y: 5}, 180, Pixel)
	assert.Equal(t, models.Point{X: 3, Y: 5}, q)
}

func TestRotateContourZeroAngleIsIdentity(t *testing.T) {
	c := models.Contour{{X: 3, Y: 4}, {X: 10, Y: -2}, {X: 7, Y: 8}}
	assert.Equal(t, c, RotateContour(c, models.Point{X: 50, Y: 50}, 0, Pixel))
}

func TestLineIntersection(t *testing.T) {
	p := LineIntersection(
		models.Line{A: models.Point{X: 0, Y: 0}, B: models.Point{X: 10, Y: 10}},
		models.Line{A: models.Point{X: 0, Y: 10}, B: models.Point{X: 10, Y: 0}},
	)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)

	// parallel lines fall back to a unit denominator
	p = LineIntersection(
		models.Line{A: models.Point{X: 0, Y: 0}, B: models.Point{X: 0, Y: 10}},
		models.Line{A: models.Point{X: 0, Y: 5}, B: models.Point{X: 0, Y: 20}},
	)
	assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	assert.Equal(t, models.Point{X: 0, Y: 0}, p)
}

func TestMidpoint(t *testing.T) {
	a := models.Point{X: 0, Y: 0}
	b := models.Point{X: 3, Y: 5}
	assert.Equal(t, models.Point{X: 1.5, Y: 2.5}, Midpoint(a, b, SubPixel))
	assert.Equal(t, models.Point{X: 2, Y: 2}, Midpoint(a, b, Pixel))
}

func TestBresenham(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Point
		want []models.Point
	}{
		{
			name: "diagonal",
			a:    models.Point{X: 0, Y: 0},
			b:    models.Point{X: 2, Y: 2},
			want: []models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
		},
		{
			name: "horizontal reversed",
			a:    models.Point{X: 3, Y: 1},
			b:    models.Point{X: 0, Y: 1},
			want: []models.Point{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		},
		{
			name: "steep",
			a:    models.Point{X: 0, Y: 0},
			b:    models.Point{X: 0, Y: 3},
			want: []models.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bresenham(tt.a, tt.b))
		})
	}
}

func TestNearest(t *testing.T) {
	c := square()
	assert.Equal(t, 2, Nearest(c, models.Point{X: 9, Y: 11}))
	assert.Equal(t, -1, Nearest(nil, models.Point{}))
}

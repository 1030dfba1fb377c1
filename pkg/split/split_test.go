package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

func circle(cx, cy, r float64, n int) models.Contour {
	c := make(models.Contour, n)
	for i := range c {
		a := 2 * math.Pi * float64(i) / float64(n)
		c[i] = models.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return c
}

func TestPolygonOppositePointsOfCircle(t *testing.T) {
	c := circle(0, 0, 100, 120)
	longer, shorter := Polygon(c, c[10], c[70])

	l1 := geometry.Perimeter(longer)
	l2 := geometry.Perimeter(shorter)
	assert.GreaterOrEqual(t, l1, l2)
	assert.InEpsilon(t, l1, l2, 0.03)

	// the arcs partition the contour
	assert.Len(t, append(longer.Clone(), shorter...), len(c))
	seen := make(map[models.Point]int)
	for _, p := range append(longer.Clone(), shorter...) {
		seen[p]++
	}
	for _, p := range c {
		assert.Equal(t, 1, seen[p], "point %v", p)
	}
}

func TestPolygonWrapsLeadingPoints(t *testing.T) {
	a := models.Point{X: 0, Y: 0}
	b := models.Point{X: 1, Y: 0}
	p1 := models.Point{X: 2, Y: 0}
	c := models.Point{X: 2, Y: 1}
	d := models.Point{X: 2, Y: 2}
	p2 := models.Point{X: 1, Y: 2}
	e := models.Point{X: 0, Y: 2}
	f := models.Point{X: 0, Y: 1}
	stream := models.Contour{a, b, p1, c, d, p2, e, f}

	longer, shorter := Polygon(stream, p1, p2)
	assert.Equal(t, models.Contour{p2, e, f, a, b}, longer)
	assert.Equal(t, models.Contour{p1, c, d}, shorter)
}

func TestPolygonSecondSplitPointFirst(t *testing.T) {
	stream := models.Contour{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 1}, {X: 0, Y: 5}, {X: 0, Y: 4}}
	longer, shorter := Polygon(stream, stream[3], stream[1])

	// the point before stream[1] goes to the arc entered second
	assert.Equal(t, models.Contour{{X: 0, Y: 5}, {X: 0, Y: 4}, {X: 0, Y: 0}}, longer)
	assert.Equal(t, models.Contour{{X: 5, Y: 0}, {X: 5, Y: 1}}, shorter)
}

func TestSplitterArcs(t *testing.T) {
	const factor = 8
	rv := circle(400, 400, 100, 160)
	for i := range rv {
		rv[i] = geometry.RoundPoint(rv[i])
	}
	refs := models.ReferencePoints{
		Superior: models.Point{X: 320, Y: 340},
		Inferior: models.Point{X: 320, Y: 460},
	}

	arcs, err := NewSplitter(factor, false).Split(rv, nil, refs)
	require.NoError(t, err)

	assert.Greater(t, geometry.Perimeter(arcs.Dorsal), geometry.Perimeter(arcs.Ventral))
	assert.Len(t, append(arcs.Dorsal.Clone(), arcs.Ventral...), len(rv))
	assert.Nil(t, arcs.LVEpi)

	// closed variant ends with the septal axis from inferior to superior
	closing := arcs.DorsalClosed[len(arcs.Dorsal):]
	require.NotEmpty(t, closing)
	assert.Equal(t, arcs.Dorsal, arcs.DorsalClosed[:len(arcs.Dorsal)])
	assert.Equal(t, refs.Inferior, closing[0])
	assert.Equal(t, refs.Superior, closing[len(closing)-1])
	for _, p := range closing {
		assert.Equal(t, 320.0, p.X)
	}
}

func TestSplitterCorrectsEpicardium(t *testing.T) {
	lv := circle(200, 400, 130, 200)
	rv := circle(400, 400, 100, 160)
	for i := range lv {
		lv[i] = geometry.RoundPoint(lv[i])
	}
	for i := range rv {
		rv[i] = geometry.RoundPoint(rv[i])
	}
	refs := models.ReferencePoints{
		Superior: models.Point{X: 315, Y: 340},
		Inferior: models.Point{X: 315, Y: 460},
	}

	arcs, err := NewSplitter(8, true).Split(rv, lv, refs)
	require.NoError(t, err)
	require.NotNil(t, arcs.LVEpi)

	// the septal wall of the epicardium now follows the RV arc
	for _, p := range arcs.Ventral {
		assert.Contains(t, arcs.LVEpi, p)
	}
	assert.Greater(t, geometry.Area(arcs.LVEpi), 0.0)
}

func TestApplyAddsDerivedContours(t *testing.T) {
	rv := circle(400, 400, 100, 160)
	lv := circle(200, 400, 130, 200)
	set := models.NewContourSet(map[string]models.Contour{"rv": rv, "epi": lv})
	refs := models.ReferencePoints{
		Superior: models.Point{X: 315, Y: 340},
		Inferior: models.Point{X: 315, Y: 460},
	}

	out, err := NewSplitter(8, true).Apply(set, "rv", "epi", refs)
	require.NoError(t, err)
	for _, label := range []string{"rvVentral", "rvDorsal", "rvDorsalClosed"} {
		assert.True(t, out.Has(label), label)
	}
	assert.False(t, set.Has("rvVentral"))

	before, _ := set.Get("epi")
	after, _ := out.Get("epi")
	assert.NotEqual(t, before, after)

	_, err = NewSplitter(8, true).Apply(set, "missing", "epi", refs)
	assert.Error(t, err)
}

func TestSplitDegenerate(t *testing.T) {
	rv := models.Contour{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	refs := models.ReferencePoints{Superior: models.Point{X: 0, Y: 0}, Inferior: models.Point{X: 0, Y: 1}}
	_, err := NewSplitter(8, false).Split(rv, nil, refs)
	assert.ErrorIs(t, err, ErrDegenerateSplit)
}

package measure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/config"
	"shortcardiac/pkg/geometry"
	"shortcardiac/pkg/split"
)

func ellipse(cx, cy, a, b float64, n int) models.Contour {
	c := make(models.Contour, n)
	for i := range c {
		t := 2 * math.Pi * float64(i) / float64(n)
		c[i] = geometry.RoundPoint(models.Point{X: cx + a*math.Cos(t), Y: cy + b*math.Sin(t)})
	}
	return c
}

func TestConverter(t *testing.T) {
	line := models.Line{A: models.Point{X: 0, Y: 0}, B: models.Point{X: 10, Y: 0}}

	assert.InDelta(t, 1.0, NewConverter(10, models.PixelSpacing{X: 1, Y: 1}).Line(line), 1e-9)
	assert.InDelta(t, 2.0, NewConverter(10, models.PixelSpacing{X: 2, Y: 2}).Line(line), 1e-9)
	assert.InDelta(t, 1.0, NewConverter(10, models.PixelSpacing{X: 1, Y: 10}).Line(line), 1e-9)

	diag := models.Line{B: models.Point{X: 10, Y: 10}}
	assert.InDelta(t, math.Sqrt2, NewConverter(10, models.PixelSpacing{X: 1, Y: 1}).Line(diag), 1e-9)

	assert.InDelta(t, 1.0, NewConverter(10, models.PixelSpacing{X: 1, Y: 1}).Area(100), 1e-9)
	assert.InDelta(t, 2.0, NewConverter(10, models.PixelSpacing{X: 1, Y: 2}).Area(100), 1e-9)

	assert.InDelta(t, 4.0, NewConverter(10, models.PixelSpacing{X: 1, Y: 1}).Scope(40), 1e-9)
	assert.InDelta(t, 6.0, NewConverter(1, models.PixelSpacing{X: 1, Y: 2}).Scope(4), 1e-9)

	p := NewConverter(8, models.PixelSpacing{X: 3, Y: 3}).Point(models.Point{X: 16, Y: 4})
	assert.Equal(t, models.Point{X: 2, Y: 0.5}, p)
}

func TestRadialProfileCircle(t *testing.T) {
	origin := models.Point{X: 100, Y: 100}
	c := ellipse(100, 100, 50, 50, 400)

	lines, err := RadialProfile(origin, c, []int{0, 90, 180, 270}, 0)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, models.Point{X: 100, Y: 150}, lines[0].A)
	assert.Equal(t, models.Point{X: 50, Y: 100}, lines[1].A)
	assert.Equal(t, models.Point{X: 100, Y: 50}, lines[2].A)
	assert.Equal(t, models.Point{X: 150, Y: 100}, lines[3].A)
	for _, l := range lines {
		assert.Equal(t, origin, l.B)
		assert.InDelta(t, 50.0, Length(l), 1e-9)
	}
}

func TestRadialProfileFrameRotation(t *testing.T) {
	origin := models.Point{X: 100, Y: 100}
	c := ellipse(100, 100, 50, 50, 400)

	lines, err := RadialProfile(origin, c, []int{0}, 90)
	require.NoError(t, err)
	assert.Equal(t, models.Point{X: 150, Y: 100}, lines[0].A)
}

func TestRadialProfileNegativeAngle(t *testing.T) {
	origin := models.Point{X: 100, Y: 100}
	c := ellipse(100, 100, 50, 50, 400)

	lines, err := RadialProfile(origin, c, []int{-90}, 0)
	require.NoError(t, err)
	// rotated by +90 the right side moves below; only points above count
	assert.Equal(t, models.Point{X: 50, Y: 100}, lines[0].A)
}

func TestRadialProfileEmpty(t *testing.T) {
	_, err := RadialProfile(models.Point{}, nil, []int{0}, 0)
	assert.ErrorIs(t, err, geometry.ErrEmptyContour)
}

func TestDiameterEllipse(t *testing.T) {
	c := ellipse(400, 400, 80, 40, 800)

	d0, err := Diameter(c, 0, 15)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, Length(d0), 3)
	assert.InDelta(t, 400.0, d0.A.X, 3)
	assert.Greater(t, d0.A.Y, d0.B.Y)

	d90, err := Diameter(c, 90, 15)
	require.NoError(t, err)
	assert.InDelta(t, 160.0, Length(d90), 3)
	assert.InDelta(t, 400.0, d90.A.Y, 3)

	ei, err := EccentricityIndex(d0, d90)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ei, 0.03)

	p := geometry.LineIntersection(d0, d90)
	assert.InDelta(t, 400.0, p.X, 3)
	assert.InDelta(t, 400.0, p.Y, 3)
}

func TestDiameterDegenerate(t *testing.T) {
	_, err := Diameter(models.Contour{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}, 0, 15)
	assert.ErrorIs(t, err, geometry.ErrDegeneratePolygon)

	_, err = EccentricityIndex(models.Line{B: models.Point{X: 1}}, models.Line{})
	assert.ErrorIs(t, err, ErrNoDiameter)
}

func TestDiameterZeroWidthWindow(t *testing.T) {
	// 4 px wide, so round(4/15) leaves a zero window and each column stands alone
	strip := models.Contour{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 100}, {X: 0, Y: 100}}

	d, err := Diameter(strip, 0, 15)
	require.NoError(t, err)
	assert.Equal(t, 100.0, Length(d))
	assert.Equal(t, models.Line{A: models.Point{X: 0, Y: 100}, B: models.Point{X: 0, Y: 0}}, d)

	// a window as wide as the contour leaves no center column
	_, err = Diameter(strip, 0, 1)
	assert.ErrorIs(t, err, ErrNoDiameter)
}

func TestColumnsBridgeNeighbours(t *testing.T) {
	cols, keys := columns(models.Contour{{X: 0, Y: 0}, {X: 1.5, Y: 10}, {X: 5, Y: 3}})
	assert.Equal(t, []int{0, 1, 5}, keys)
	require.NotNil(t, cols[0])
	assert.Equal(t, 10.0, cols[0].length)
	assert.Equal(t, models.Point{X: 1, Y: 10}, cols[1].bottom)
	assert.Nil(t, cols[5])
}

func synthSet(t *testing.T, run config.RunConfiguration) (models.ContourSet, models.ReferencePoints) {
	t.Helper()
	lv := ellipse(300, 400, 130, 130, 600)
	endo := ellipse(300, 400, 90, 90, 150)
	rv := ellipse(480, 400, 100, 150, 600)
	refs := models.ReferencePoints{
		Superior: models.Point{X: 410, Y: 320},
		Inferior: models.Point{X: 410, Y: 480},
	}
	set := models.NewContourSet(map[string]models.Contour{
		run.RVEndo: rv,
		run.LVEpi:  lv,
		run.LVEndo: endo,
	})
	out, err := split.NewSplitter(run.UpsampleFactor, run.CorrectEpicardium).Apply(set, run.RVEndo, run.LVEpi, refs)
	require.NoError(t, err)
	return out, refs
}

func TestEngineMeasure(t *testing.T) {
	run := config.DefaultRunConfiguration()
	set, refs := synthSet(t, run)

	m, err := NewEngine(run).Measure(set, refs, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, models.Point{X: 410, Y: 400}, m.Septum.Center)
	assert.Len(t, m.RV.Ventral, len(run.RVVentralAngles))
	assert.Len(t, m.RV.Dorsal, len(run.RVDorsalAngles))
	assert.Len(t, m.LVEpi.Profile, len(run.LVEpiAngles))
	assert.Len(t, m.LVEndo.Profile, len(run.LVEndoAngles))

	assert.InDelta(t, math.Pi*90*90, m.LVEndo.Area, 0.02*math.Pi*90*90)
	assert.InDelta(t, 2*math.Pi*90, m.LVEndo.Perimeter, 0.05*2*math.Pi*90)
	assert.InDelta(t, 1.0, m.LVEndo.EI, 0.05)
	assert.Equal(t, models.Point{X: 300, Y: 400}, m.LVEndo.Centroid)

	// the RV is taller than wide
	assert.Greater(t, m.RV.EI, 1.0)
	assert.Greater(t, m.RV.DorsalClosedArea, 0.0)
	assert.Greater(t, Length(m.RV.SeptumAxisToRV), 0.0)
}

func TestEngineMissingDerivedContour(t *testing.T) {
	run := config.DefaultRunConfiguration()
	set := models.NewContourSet(map[string]models.Contour{
		run.RVEndo: ellipse(0, 0, 10, 10, 40),
	})
	_, err := NewEngine(run).Measure(set, models.ReferencePoints{}, 0, 0)
	assert.Error(t, err)
}

package pipeline

import (
	"shortcardiac/internal/models"
	"shortcardiac/pkg/measure"
)

// flatten converts m to physical units in the order produced by Names.
func flatten(m measure.Slice, conv measure.Converter, features []float64) []Value {
	var out []Value
	out = append(out, scalar(m.Septum.Angle))

	lines := func(ls ...models.Line) {
		for _, l := range ls {
			out = append(out, scalar(conv.Line(l)))
		}
	}
	lines(m.RV.Ventral...)
	lines(m.RV.Dorsal...)
	lines(m.LVEpi.Profile...)
	lines(m.LVEndo.Profile...)
	lines(
		m.RV.EI0, m.RV.EI90,
		m.LVEpi.EI0, m.LVEpi.EI90,
		m.LVEndo.EI0, m.LVEndo.EI90,
		m.RV.SeptumAxisToRV,
	)

	for _, p := range []models.Point{
		m.RV.Centroid, m.Septum.Superior, m.Septum.Inferior,
		m.LVEpi.Centroid, m.LVEndo.Centroid, m.Septum.Center,
		m.RV.Intersection, m.LVEpi.Intersection, m.LVEndo.Intersection,
	} {
		out = append(out, point(conv.Point(p)))
	}

	for _, a := range []float64{m.RV.Area, m.RV.DorsalClosedArea, m.LVEpi.Area, m.LVEndo.Area} {
		out = append(out, scalar(conv.Area(a)))
	}
	for _, s := range []float64{m.RV.Perimeter, m.LVEpi.Perimeter, m.LVEndo.Perimeter} {
		out = append(out, scalar(conv.Scope(s)))
	}
	out = append(out, scalar(m.RV.EI), scalar(m.LVEpi.EI), scalar(m.LVEndo.EI))

	for _, f := range features {
		out = append(out, scalar(f))
	}
	return out
}

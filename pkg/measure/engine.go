// Package measure computes the per-structure geometry of a slice (areas,
// perimeters, centroids, radial distance profiles and eccentricity
// diameters) and converts it to physical units.
package measure

import (
	"fmt"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/config"
	"shortcardiac/pkg/geometry"
	"shortcardiac/pkg/split"
)

// Shape holds the measurements shared by all three structures.
type Shape struct {
	Centroid     models.Point
	Area         float64
	Perimeter    float64
	EI0          models.Line
	EI90         models.Line
	Intersection models.Point
	EI           float64
}

// RV adds the septum-relative measurements of the right ventricle.
type RV struct {
	Shape

	// DorsalClosedArea is the area between the dorsal arc and the septal axis
	DorsalClosedArea float64

	// Ventral and Dorsal are the radial profiles from the septum center
	Ventral []models.Line
	Dorsal  []models.Line

	// SeptumAxisToRV is the 90 degree diameter of the closed dorsal arc
	SeptumAxisToRV models.Line
}

// LV adds the radial profile from the structure's own centroid.
type LV struct {
	Shape
	Profile []models.Line
}

// Septum describes the septal axis in the measurement frame.
type Septum struct {
	Angle    float64
	Superior models.Point
	Inferior models.Point
	Center   models.Point
}

// Slice is the complete geometric result of one slice at the working resolution.
type Slice struct {
	Septum Septum
	RV     RV
	LVEpi  LV
	LVEndo LV
}

// Engine measures slices according to a run configuration.
type Engine struct {
	run config.RunConfiguration
}

// NewEngine returns an Engine sampling at the angles of run.
func NewEngine(run config.RunConfiguration) *Engine {
	return &Engine{run: run}
}

// Measure computes all structure measurements from the split and aligned
// contour set. queryRotation is applied to every angle dependent query and
// is zero when the contours were already rotated onto the septal axis.
func (e *Engine) Measure(set models.ContourSet, refs models.ReferencePoints, septumAngle, queryRotation float64) (Slice, error) {
	get := func(label string) (models.Contour, error) {
		c, ok := set.Get(label)
		if !ok {
			return nil, fmt.Errorf("missing contour %q", label)
		}
		return c, nil
	}

	var out Slice
	out.Septum = Septum{
		Angle:    septumAngle,
		Superior: refs.Superior,
		Inferior: refs.Inferior,
		Center:   geometry.Midpoint(refs.Superior, refs.Inferior, geometry.Pixel),
	}

	rv, err := get(e.run.RVEndo)
	if err != nil {
		return out, err
	}
	ventral, err := get(e.run.RVEndo + split.VentralSuffix)
	if err != nil {
		return out, err
	}
	dorsal, err := get(e.run.RVEndo + split.DorsalSuffix)
	if err != nil {
		return out, err
	}
	dorsalClosed, err := get(e.run.RVEndo + split.DorsalClosedSuffix)
	if err != nil {
		return out, err
	}
	if out.RV, err = e.rv(rv, ventral, dorsal, dorsalClosed, out.Septum.Center, queryRotation); err != nil {
		return out, fmt.Errorf("rv endocardium: %w", err)
	}

	epi, err := get(e.run.LVEpi)
	if err != nil {
		return out, err
	}
	if out.LVEpi, err = e.lv(epi, e.run.LVEpiAngles, queryRotation); err != nil {
		return out, fmt.Errorf("lv epicardium: %w", err)
	}

	endo, err := get(e.run.LVEndo)
	if err != nil {
		return out, err
	}
	if out.LVEndo, err = e.lv(endo, e.run.LVEndoAngles, queryRotation); err != nil {
		return out, fmt.Errorf("lv endocardium: %w", err)
	}

	return out, nil
}

// shape computes centroid, area, perimeter and the EI diameters of c.
func (e *Engine) shape(c models.Contour, queryRotation float64) (Shape, error) {
	var s Shape
	var err error
	if s.Centroid, err = geometry.PixelCentroid(c); err != nil {
		return s, err
	}
	s.Area = geometry.Area(c)
	s.Perimeter = geometry.Perimeter(c)

	if s.EI0, err = Diameter(c, queryRotation, e.run.EIWindowDivisor); err != nil {
		return s, fmt.Errorf("0 degree diameter: %w", err)
	}
	if s.EI90, err = Diameter(c, 90+queryRotation, e.run.EIWindowDivisor); err != nil {
		return s, fmt.Errorf("90 degree diameter: %w", err)
	}
	s.Intersection = geometry.LineIntersection(s.EI0, s.EI90)
	if s.EI, err = EccentricityIndex(s.EI0, s.EI90); err != nil {
		return s, err
	}
	return s, nil
}

func (e *Engine) rv(rv, ventral, dorsal, dorsalClosed models.Contour, septumCenter models.Point, queryRotation float64) (RV, error) {
	var out RV
	var err error
	if out.Shape, err = e.shape(rv, queryRotation); err != nil {
		return out, err
	}
	out.DorsalClosedArea = geometry.Area(dorsalClosed)

	if out.Ventral, err = RadialProfile(septumCenter, ventral, e.run.RVVentralAngles, queryRotation); err != nil {
		return out, fmt.Errorf("ventral profile: %w", err)
	}
	if out.Dorsal, err = RadialProfile(septumCenter, dorsal, e.run.RVDorsalAngles, queryRotation); err != nil {
		return out, fmt.Errorf("dorsal profile: %w", err)
	}
	if out.SeptumAxisToRV, err = Diameter(dorsalClosed, 90+queryRotation, e.run.EIWindowDivisor); err != nil {
		return out, fmt.Errorf("septum axis diameter: %w", err)
	}
	return out, nil
}

func (e *Engine) lv(c models.Contour, angles []int, queryRotation float64) (LV, error) {
	var out LV
	var err error
	if out.Shape, err = e.shape(c, queryRotation); err != nil {
		return out, err
	}
	if out.Profile, err = RadialProfile(out.Centroid, c, angles, queryRotation); err != nil {
		return out, fmt.Errorf("radial profile: %w", err)
	}
	return out, nil
}

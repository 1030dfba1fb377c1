package split

import (
	"errors"
	"fmt"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// Suffixes appended to the RV label for the derived arc contours.
const (
	VentralSuffix      = "Ventral"
	DorsalSuffix       = "Dorsal"
	DorsalClosedSuffix = "DorsalClosed"
)

// ErrDegenerateSplit is returned when a split leaves one side without points.
var ErrDegenerateSplit = errors.New("contour split produced an empty arc")

// Arcs holds the contours derived from splitting the RV at the reference points.
type Arcs struct {
	// Ventral is the shorter RV arc
	Ventral models.Contour

	// Dorsal is the longer RV arc
	Dorsal models.Contour

	// DorsalClosed is the dorsal arc closed by the rasterized septal axis
	DorsalClosed models.Contour

	// LVEpi is the corrected epicardium, nil when the correction is off
	LVEpi models.Contour
}

// Splitter derives the arc contours of a slice.
type Splitter struct {
	factor            int
	correctEpicardium bool
}

// NewSplitter returns a Splitter for contours upsampled by factor.
func NewSplitter(factor int, correctEpicardium bool) *Splitter {
	if factor < 1 {
		factor = 1
	}
	return &Splitter{factor: factor, correctEpicardium: correctEpicardium}
}

// Split cuts rv and, when enabled, lvEpi at the points nearest to refs.
func (s *Splitter) Split(rv, lvEpi models.Contour, refs models.ReferencePoints) (Arcs, error) {
	dorsal, ventral := AtReferences(rv, refs)
	if len(dorsal) == 0 || len(ventral) == 0 {
		return Arcs{}, fmt.Errorf("rv: %w", ErrDegenerateSplit)
	}

	arcs := Arcs{
		Ventral:      ventral,
		Dorsal:       dorsal,
		DorsalClosed: s.closeArc(dorsal, refs),
	}

	if s.correctEpicardium {
		outer, _ := AtReferences(lvEpi, refs)
		if len(outer) == 0 {
			return Arcs{}, fmt.Errorf("lv epicardium: %w", ErrDegenerateSplit)
		}
		arcs.LVEpi = joinArcs(outer, ventral)
	}
	return arcs, nil
}

// Apply splits the contours of set and returns a new snapshot that carries
// the derived arcs under the RV label plus the arc suffixes.
func (s *Splitter) Apply(set models.ContourSet, rvLabel, lvEpiLabel string, refs models.ReferencePoints) (models.ContourSet, error) {
	rv, ok := set.Get(rvLabel)
	if !ok {
		return set, fmt.Errorf("missing contour %q", rvLabel)
	}
	lvEpi, ok := set.Get(lvEpiLabel)
	if !ok {
		return set, fmt.Errorf("missing contour %q", lvEpiLabel)
	}

	arcs, err := s.Split(rv, lvEpi, refs)
	if err != nil {
		return set, err
	}

	out := set.
		With(rvLabel+VentralSuffix, arcs.Ventral).
		With(rvLabel+DorsalSuffix, arcs.Dorsal).
		With(rvLabel+DorsalClosedSuffix, arcs.DorsalClosed)
	if arcs.LVEpi != nil {
		out = out.With(lvEpiLabel, arcs.LVEpi)
	}
	return out, nil
}

// closeArc appends the septal axis from the inferior to the superior
// reference point, rasterized at half the upsample factor.
func (s *Splitter) closeArc(arc models.Contour, refs models.ReferencePoints) models.Contour {
	half := 0.5 * float64(s.factor)
	line := geometry.Bresenham(refs.Inferior.Scale(1/half), refs.Superior.Scale(1/half))

	out := make(models.Contour, 0, len(arc)+len(line))
	out = append(out, arc...)
	for _, p := range line {
		out = append(out, p.Scale(half))
	}
	return out
}

// joinArcs appends inner to outer, oriented so that the joint is the
// shorter of the two possible connections.
func joinArcs(outer, inner models.Contour) models.Contour {
	end := outer[len(outer)-1]
	if geometry.Distance(end, inner[0]) > geometry.Distance(end, inner[len(inner)-1]) {
		inner = inner.Reversed()
	}
	out := make(models.Contour, 0, len(outer)+len(inner))
	out = append(out, outer...)
	return append(out, inner...)
}

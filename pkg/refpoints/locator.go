// Package refpoints locates the two septal insertion points of a slice from
// the proximity of the right-ventricle and left-ventricle epicardium contours.
package refpoints

import (
	"errors"
	"sort"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// ErrUnlocatable means the contours never came close enough to place the
// reference points. It is an expected outcome for many slices.
var ErrUnlocatable = errors.New("septal reference points could not be located")

// Locator searches for point pairs closer than a tolerance that starts at
// the upsample factor and doubles on every retry.
type Locator struct {
	initialDelta float64
	minMatched   int
	maxRetries   int
	precision    geometry.Precision
}

// NewLocator returns a Locator starting its tolerance at the upsample factor.
func NewLocator(factor, minMatched, maxRetries int, precision geometry.Precision) *Locator {
	return &Locator{
		initialDelta: float64(factor),
		minMatched:   minMatched,
		maxRetries:   maxRetries,
		precision:    precision,
	}
}

// Match holds the contour points of both sides that took part in a close pair.
type Match struct {
	RV    models.Contour
	LVEpi models.Contour
	// Pairs is the running pair count over all attempts
	Pairs int
	Delta float64
}

// Match runs the tolerance back-off. Pair counts accumulate over attempts
// and the search stops at the first tolerance where the running total
// reaches the minimum. The returned points are those of the last attempt,
// which contain every point matched at a smaller tolerance.
func (l *Locator) Match(rv, lvEpi models.Contour) (Match, error) {
	if len(rv) == 0 || len(lvEpi) == 0 {
		return Match{}, geometry.ErrEmptyContour
	}
	tree := newTree(lvEpi)

	delta := l.initialDelta
	total := 0
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		var rvIdx []int
		lvSeen := make(map[int]bool)
		pairs := 0
		for i, p := range rv {
			near := within(tree, p, delta)
			if len(near) == 0 {
				continue
			}
			pairs += len(near)
			rvIdx = append(rvIdx, i)
			for _, j := range near {
				lvSeen[j] = true
			}
		}

		total += pairs
		if total >= l.minMatched {
			lvIdx := make([]int, 0, len(lvSeen))
			for j := range lvSeen {
				lvIdx = append(lvIdx, j)
			}
			sort.Ints(lvIdx)
			return Match{
				RV:    pick(rv, rvIdx),
				LVEpi: pick(lvEpi, lvIdx),
				Pairs: total,
				Delta: delta,
			}, nil
		}
		delta *= 2
	}
	return Match{}, ErrUnlocatable
}

// Locate returns the superior and inferior septal reference points.
func (l *Locator) Locate(rv, lvEpi models.Contour) (models.ReferencePoints, error) {
	m, err := l.Match(rv, lvEpi)
	if err != nil {
		return models.ReferencePoints{}, err
	}
	lSup, lInf := Extremes(m.LVEpi)
	rSup, rInf := Extremes(m.RV)
	return models.ReferencePoints{
		Superior: geometry.Midpoint(lSup, rSup, l.precision),
		Inferior: geometry.Midpoint(lInf, rInf, l.precision),
	}, nil
}

// Extremes returns the two points of c that lie farthest apart, ordered so
// that the point with the smaller image y (superior) comes first.
func Extremes(c models.Contour) (superior, inferior models.Point) {
	best := -1.0
	for i := range c {
		for j := range c {
			if d := geometry.Distance(c[i], c[j]); d > best {
				best = d
				superior, inferior = c[i], c[j]
			}
		}
	}
	if superior.Y > inferior.Y {
		superior, inferior = inferior, superior
	}
	return superior, inferior
}

func pick(c models.Contour, idx []int) models.Contour {
	out := make(models.Contour, len(idx))
	for k, i := range idx {
		out[k] = c[i]
	}
	return out
}

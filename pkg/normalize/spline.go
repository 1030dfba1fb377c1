package normalize

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/geometry"
)

// ErrTooFewPoints is returned when a closed spline cannot be fitted.
var ErrTooFewPoints = errors.New("closed spline needs at least 3 distinct points")

// ClosedSpline is an interpolating periodic cubic spline through the points
// of a closed contour, parameterized by normalized chord length on [0, 1].
type ClosedSpline struct {
	x, y interp.PiecewiseCubic
}

// FitClosedSpline fits a C2-continuous periodic cubic spline that passes
// through every point of c and returns to the first point at u = 1.
func FitClosedSpline(c models.Contour) (*ClosedSpline, error) {
	pts := dedupe(c)
	n := len(pts)
	if n < 3 {
		return nil, ErrTooFewPoints
	}

	// knots t[0..n], t[n] closes the curve
	t := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		t[i] = t[i-1] + geometry.Distance(pts[i-1], pts[i%n])
	}
	total := t[n]
	for i := range t {
		t[i] /= total
	}
	t[n] = 1

	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		xs[i] = pts[i%n].X
		ys[i] = pts[i%n].Y
	}

	dx, err := periodicSlopes(t, xs)
	if err != nil {
		return nil, fmt.Errorf("x slopes: %w", err)
	}
	dy, err := periodicSlopes(t, ys)
	if err != nil {
		return nil, fmt.Errorf("y slopes: %w", err)
	}

	var s ClosedSpline
	s.x.FitWithDerivatives(t, xs, dx)
	s.y.FitWithDerivatives(t, ys, dy)
	return &s, nil
}

// At evaluates the spline at parameter u in [0, 1].
func (s *ClosedSpline) At(u float64) models.Point {
	return models.Point{X: s.x.Predict(u), Y: s.y.Predict(u)}
}

// Sample evaluates the spline at n evenly spaced parameters in [0, 1).
// The closing point at u = 1 is omitted since it repeats u = 0.
func (s *ClosedSpline) Sample(n int) models.Contour {
	out := make(models.Contour, n)
	for k := 0; k < n; k++ {
		out[k] = s.At(float64(k) / float64(n))
	}
	return out
}

// periodicSlopes solves the cyclic system for the knot derivatives of a
// periodic cubic spline with second-derivative continuity. v[len(v)-1]
// must equal v[0]. The returned slice has the same length as t.
func periodicSlopes(t, v []float64) ([]float64, error) {
	n := len(t) - 1
	h := make([]float64, n)
	delta := make([]float64, n)
	for i := 0; i < n; i++ {
		h[i] = t[i+1] - t[i]
		if h[i] <= 0 {
			return nil, fmt.Errorf("knot %d is not increasing", i)
		}
		delta[i] = (v[i+1] - v[i]) / h[i]
	}

	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		a.Set(i, prev, a.At(i, prev)+h[i])
		a.Set(i, i, a.At(i, i)+2*(h[prev]+h[i]))
		a.Set(i, next, a.At(i, next)+h[prev])
		b.SetVec(i, 3*(h[i]*delta[prev]+h[prev]*delta[i]))
	}

	var lu mat.LU
	lu.Factorize(a)
	var m mat.VecDense
	if err := lu.SolveVecTo(&m, false, b); err != nil {
		return nil, err
	}

	out := make([]float64, n+1)
	for i := 0; i < n; i++ {
		out[i] = m.AtVec(i)
	}
	out[n] = out[0]
	return out, nil
}

// dedupe drops consecutive repeats, including a final point equal to the first.
func dedupe(c models.Contour) models.Contour {
	out := make(models.Contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

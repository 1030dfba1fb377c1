// Package features turns structure contours into binary masks and extracts
// intensity features from the image pixels under each mask.
package features

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyMask is returned when a mask selects no pixels.
var ErrEmptyMask = errors.New("mask selects no pixels")

// Extractor computes a fixed list of named scalars from the pixels of img
// selected by mask. Names must not depend on the image content.
type Extractor interface {
	Names(structure string) []string
	Extract(mask *image.Gray, img image.Image) ([]float64, error)
}

var firstOrderFeatures = []string{
	"Count", "Mean", "StandardDeviation", "Minimum", "Maximum",
	"Median", "10Percentile", "90Percentile", "Energy", "Entropy",
}

// FirstOrder extracts intensity statistics. Intensities are normalized to
// zero mean and unit variance over the whole image before extraction.
type FirstOrder struct {
	bins int
}

// NewFirstOrder returns a FirstOrder extractor with bins histogram bins for Entropy.
func NewFirstOrder(bins int) *FirstOrder {
	if bins < 2 {
		bins = 2
	}
	return &FirstOrder{bins: bins}
}

// Names returns the feature names for structure in Extract order.
func (f *FirstOrder) Names(structure string) []string {
	names := make([]string, len(firstOrderFeatures))
	for i, feat := range firstOrderFeatures {
		names[i] = fmt.Sprintf("firstorder_%s_%s", structure, feat)
	}
	return names
}

// Extract computes the first-order statistics of img inside mask.
func (f *FirstOrder) Extract(mask *image.Gray, img image.Image) ([]float64, error) {
	all := intensities(img)
	mean, sd := stat.MeanStdDev(all, nil)
	if sd == 0 || math.IsNaN(sd) {
		sd = 1
	}

	var x []float64
	b := img.Bounds().Intersect(mask.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if mask.GrayAt(px, y).Y == 0 {
				continue
			}
			v := float64(color.Gray16Model.Convert(img.At(px, y)).(color.Gray16).Y)
			x = append(x, (v-mean)/sd)
		}
	}
	if len(x) == 0 {
		return nil, ErrEmptyMask
	}
	sort.Float64s(x)

	m, s := stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		s = 0
	}
	energy := floats.Dot(x, x)

	return []float64{
		float64(len(x)),
		m,
		s,
		floats.Min(x),
		floats.Max(x),
		stat.Quantile(0.5, stat.LinInterp, x, nil),
		stat.Quantile(0.1, stat.LinInterp, x, nil),
		stat.Quantile(0.9, stat.LinInterp, x, nil),
		energy,
		f.entropy(x),
	}, nil
}

// entropy is the Shannon entropy in bits of the histogram of sorted x.
func (f *FirstOrder) entropy(x []float64) float64 {
	lo, hi := x[0], x[len(x)-1]
	if hi == lo {
		return 0
	}
	counts := make([]float64, f.bins)
	width := (hi - lo) / float64(f.bins)
	for _, v := range x {
		i := int((v - lo) / width)
		if i >= f.bins {
			i = f.bins - 1
		}
		counts[i]++
	}
	floats.Scale(1/float64(len(x)), counts)
	return stat.Entropy(counts) / math.Ln2
}

func intensities(img image.Image) []float64 {
	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, float64(color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y))
		}
	}
	return out
}

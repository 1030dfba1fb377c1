package features

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"shortcardiac/internal/models"
)

// ErrNoImage is returned when features are requested for a slice without an intensity image.
var ErrNoImage = errors.New("no intensity image for feature extraction")

// Labels names the contours the masks are built from.
type Labels struct {
	RVEndo string
	LVEpi  string
	LVEndo string
}

// Runner builds the RV, LV endocardium and LV myocardium masks of a slice
// and runs an Extractor over each of them.
type Runner struct {
	extractor Extractor
	labels    Labels

	// maskDir receives one PNG per mask when set
	maskDir string
}

// NewRunner returns a Runner. Masks are written to maskDir when it is not empty.
func NewRunner(extractor Extractor, labels Labels, maskDir string) *Runner {
	return &Runner{extractor: extractor, labels: labels, maskDir: maskDir}
}

// Names lists the feature names in output order. The myocardium features
// are reported under the epicardium label.
func (r *Runner) Names() []string {
	var names []string
	names = append(names, r.extractor.Names(r.labels.RVEndo)...)
	names = append(names, r.extractor.Names(r.labels.LVEndo)...)
	names = append(names, r.extractor.Names(r.labels.LVEpi)...)
	return names
}

// Run extracts the features of one slice. set holds contours at factor
// times the resolution of img.
func (r *Runner) Run(id string, set models.ContourSet, factor int, img image.Image) ([]float64, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	mask := func(label string) (*image.Gray, error) {
		if !set.Has(label) {
			return nil, fmt.Errorf("missing contour %q", label)
		}
		c, _ := set.Get(label)
		scaled := make(models.Contour, len(c))
		for i, p := range c {
			scaled[i] = p.Scale(1 / float64(factor))
		}
		return Mask(scaled, w, h), nil
	}

	rv, err := mask(r.labels.RVEndo)
	if err != nil {
		return nil, err
	}
	endo, err := mask(r.labels.LVEndo)
	if err != nil {
		return nil, err
	}
	epi, err := mask(r.labels.LVEpi)
	if err != nil {
		return nil, err
	}
	myo := Subtract(epi, endo)

	masks := []struct {
		label string
		m     *image.Gray
	}{
		{r.labels.RVEndo, rv},
		{r.labels.LVEndo, endo},
		{r.labels.LVEpi, myo},
	}

	for _, mk := range masks {
		if Count(mk.m) == 0 {
			return nil, fmt.Errorf("%s features: %w", mk.label, ErrEmptyMask)
		}
	}

	var values []float64
	for _, mk := range masks {
		if r.maskDir != "" {
			if err := SaveMask(mk.m, filepath.Join(r.maskDir, id), mk.label); err != nil {
				return nil, err
			}
		}
		v, err := r.extractor.Extract(mk.m, img)
		if err != nil {
			return nil, fmt.Errorf("%s features: %w", mk.label, err)
		}
		values = append(values, v...)
	}
	return values, nil
}

// Package pipeline sequences the per-slice stages: normalization, reference
// point location, RV splitting, septum alignment and measurement. Every
// slice ends in a Result that is either calculable with a full value vector
// or not calculable with a reason.
package pipeline

import (
	"errors"
	"fmt"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/align"
	"shortcardiac/pkg/config"
	"shortcardiac/pkg/features"
	"shortcardiac/pkg/geometry"
	"shortcardiac/pkg/measure"
	"shortcardiac/pkg/normalize"
	"shortcardiac/pkg/refpoints"
	"shortcardiac/pkg/split"
)

var (
	// ErrMissingStructure is returned when a required label is absent from the input.
	ErrMissingStructure = errors.New("missing required structure")

	// ErrNoSpacing is returned when a slice carries no usable pixel spacing.
	ErrNoSpacing = errors.New("pixel spacing must be positive")
)

// Pipeline runs slices under a single run configuration. It holds no
// per-slice state and is safe for concurrent use.
type Pipeline struct {
	run config.RunConfiguration

	normalizer *normalize.Normalizer
	locator    *refpoints.Locator
	splitter   *split.Splitter
	corrector  *align.Corrector
	engine     *measure.Engine
	features   *features.Runner

	names []string
}

// New builds a pipeline. fr may be nil, in which case no feature columns
// are produced.
func New(run config.RunConfiguration, fr *features.Runner) *Pipeline {
	p := &Pipeline{
		run:        run,
		normalizer: normalize.New(run.UpsampleFactor, run.Smoothing, run.Precision),
		locator:    refpoints.NewLocator(run.UpsampleFactor, run.MinMatchedPoints, run.MaxRetries, run.Precision),
		splitter:   split.NewSplitter(run.UpsampleFactor, run.CorrectEpicardium),
		corrector:  align.NewCorrector(run.AngleCorrection, run.Precision),
		engine:     measure.NewEngine(run),
	}
	var featureNames []string
	if fr != nil {
		p.features = fr
		featureNames = fr.Names()
	}
	p.names = Names(run, featureNames)
	return p
}

// Names returns a copy of the result name list.
func (p *Pipeline) Names() []string {
	return append([]string(nil), p.names...)
}

func (p *Pipeline) labels() []string {
	return []string{p.run.RVEndo, p.run.LVEpi, p.run.LVEndo}
}

// Run processes one slice. It never panics and never returns a partial
// value vector.
func (p *Pipeline) Run(in models.SliceInput) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = p.fail(in.ID, fmt.Errorf("slice %s: panic: %v", in.ID, r))
		}
	}()

	m, feats, err := p.measure(in)
	if err != nil {
		return p.fail(in.ID, err)
	}

	conv := measure.NewConverter(p.run.UpsampleFactor, in.Spacing)
	values := flatten(m, conv, feats)
	if len(values) != len(p.names) {
		return p.fail(in.ID, fmt.Errorf("slice %s: %d values for %d names", in.ID, len(values), len(p.names)))
	}

	return Result{
		ID:           in.ID,
		Calculable:   true,
		Values:       values,
		Names:        p.Names(),
		Measurements: &m,
	}
}

func (p *Pipeline) measure(in models.SliceInput) (measure.Slice, []float64, error) {
	var m measure.Slice

	if err := p.check(in); err != nil {
		return m, nil, err
	}

	normalized := p.normalizer.Apply(in.Contours)
	rv, _ := normalized.Get(p.run.RVEndo)
	epi, _ := normalized.Get(p.run.LVEpi)

	refs, err := p.locator.Locate(rv, epi)
	if err != nil {
		return m, nil, err
	}

	splitSet, err := p.splitter.Apply(normalized, p.run.RVEndo, p.run.LVEpi, refs)
	if err != nil {
		return m, nil, fmt.Errorf("split: %w", err)
	}

	center := align.ImageCenter(in.Width, in.Height, p.run.UpsampleFactor, splitSet)
	corr, err := p.corrector.Apply(splitSet, refs, center)
	if err != nil {
		return m, nil, fmt.Errorf("align: %w", err)
	}

	m, err = p.engine.Measure(corr.Contours, corr.Refs, corr.SeptumAngle, corr.QueryRotation())
	if err != nil {
		return m, nil, fmt.Errorf("measure: %w", err)
	}

	var feats []float64
	if p.features != nil {
		// masks live in the image frame: split and corrected, not rotated
		if feats, err = p.features.Run(in.ID, splitSet, p.run.UpsampleFactor, in.Image); err != nil {
			return m, nil, fmt.Errorf("features: %w", err)
		}
	}
	return m, feats, nil
}

// check rejects inputs that cannot produce a measurement before any stage runs.
func (p *Pipeline) check(in models.SliceInput) error {
	for _, label := range p.labels() {
		if !in.Contours.Has(label) {
			return fmt.Errorf("%w: %s", ErrMissingStructure, label)
		}
		c, _ := in.Contours.Get(label)
		if len(c) == 0 {
			return fmt.Errorf("%s: %w", label, geometry.ErrEmptyContour)
		}
		if _, err := geometry.PixelCentroid(c); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
	}
	if in.Spacing.X <= 0 || in.Spacing.Y <= 0 {
		return ErrNoSpacing
	}
	return nil
}

func (p *Pipeline) fail(id string, err error) Result {
	return Result{
		ID:     id,
		Reason: Classify(err),
		Err:    err,
		Names:  p.Names(),
	}
}

// Classify maps a stage error onto a non-calculable reason.
func Classify(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, refpoints.ErrUnlocatable):
		return ReasonUnlocatable
	case errors.Is(err, ErrMissingStructure):
		return ReasonMissing
	case errors.Is(err, geometry.ErrEmptyContour),
		errors.Is(err, geometry.ErrDegeneratePolygon),
		errors.Is(err, split.ErrDegenerateSplit),
		errors.Is(err, align.ErrUndefinedAxis),
		errors.Is(err, measure.ErrNoDiameter):
		return ReasonDegenerate
	default:
		return ReasonOther
	}
}

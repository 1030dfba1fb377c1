package config

import "shortcardiac/pkg/geometry"

// RunConfiguration is the read-only view of a Config consumed by the slice
// pipeline. It holds no references into the Config it was built from, so a
// single value can be shared by every worker of a batch.
type RunConfiguration struct {
	RVEndo string
	LVEpi  string
	LVEndo string

	RVVentralAngles []int
	RVDorsalAngles  []int
	LVEpiAngles     []int
	LVEndoAngles    []int

	UpsampleFactor    int
	AngleCorrection   bool
	Smoothing         bool
	Precision         geometry.Precision
	CorrectEpicardium bool
	MinMatchedPoints  int
	MaxRetries        int
	EIWindowDivisor   int

	FeaturesEnabled bool
}

// RunConfiguration snapshots the configuration for one batch run
func (c *Config) RunConfiguration() RunConfiguration {
	prec := geometry.Pixel
	if c.Geometry.SubPixel {
		prec = geometry.SubPixel
	}
	return RunConfiguration{
		RVEndo:            c.Structures.RVEndo,
		LVEpi:             c.Structures.LVEpi,
		LVEndo:            c.Structures.LVEndo,
		RVVentralAngles:   c.Angles.RVVentral.Angles(),
		RVDorsalAngles:    c.Angles.RVDorsal.Angles(),
		LVEpiAngles:       c.Angles.LVEpi.Angles(),
		LVEndoAngles:      c.Angles.LVEndo.Angles(),
		UpsampleFactor:    c.Geometry.UpsampleFactor,
		AngleCorrection:   c.Geometry.AngleCorrection,
		Smoothing:         c.Geometry.Smoothing,
		Precision:         prec,
		CorrectEpicardium: c.Geometry.CorrectEpicardium,
		MinMatchedPoints:  c.Geometry.MinMatchedPoints,
		MaxRetries:        c.Geometry.MaxRetries,
		EIWindowDivisor:   c.Geometry.EIWindowDivisor,
		FeaturesEnabled:   c.Features.Enabled,
	}
}

// DefaultRunConfiguration is the run configuration of DefaultConfig
func DefaultRunConfiguration() RunConfiguration {
	return DefaultConfig().RunConfiguration()
}

// Package config provides configuration loading and management for shortcardiac.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// AngleGrid describes the sample angles of one radial distance profile
type AngleGrid struct {
	// Min is the first sampled angle in degrees
	Min int `yaml:"min"`

	// Max is the upper bound of the grid in degrees
	Max int `yaml:"max"`

	// Step is the distance between two samples in degrees
	Step int `yaml:"step"`

	// IncludeMax controls whether Max itself is sampled
	IncludeMax bool `yaml:"includeMax"`
}

// Angles expands the grid into its list of sample angles
func (g AngleGrid) Angles() []int {
	if g.Step <= 0 {
		return nil
	}
	upper := g.Max
	if g.IncludeMax {
		upper++
	}
	var angles []int
	for a := g.Min; a < upper; a += g.Step {
		angles = append(angles, a)
	}
	return angles
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Structure labels as they appear in the contour input
	Structures struct {
		// RVEndo is the label of the right-ventricle endocardium
		RVEndo string `yaml:"rvEndo"`

		// LVEpi is the label of the left-ventricle epicardium
		LVEpi string `yaml:"lvEpi"`

		// LVEndo is the label of the left-ventricle endocardium
		LVEndo string `yaml:"lvEndo"`
	} `yaml:"structures"`

	// Angle grids for the radial distance profiles
	Angles struct {
		RVVentral AngleGrid `yaml:"rvVentral"`
		RVDorsal  AngleGrid `yaml:"rvDorsal"`
		LVEpi     AngleGrid `yaml:"lvEpi"`
		LVEndo    AngleGrid `yaml:"lvEndo"`
	} `yaml:"angles"`

	// Geometry parameters
	Geometry struct {
		// UpsampleFactor scales contour coordinates before any computation
		UpsampleFactor int `yaml:"upsampleFactor"`

		// AngleCorrection rotates all contours onto the vertical septal axis
		AngleCorrection bool `yaml:"angleCorrection"`

		// Smoothing resamples contours with a periodic spline
		Smoothing bool `yaml:"smoothing"`

		// SubPixel keeps real-valued coordinates instead of whole pixels
		SubPixel bool `yaml:"subPixel"`

		// CorrectEpicardium replaces the septal part of the LV epicardium with the RV arc
		CorrectEpicardium bool `yaml:"correctEpicardium"`

		// MinMatchedPoints is the number of close point pairs required to place the reference points
		MinMatchedPoints int `yaml:"minMatchedPoints"`

		// MaxRetries is how often the proximity tolerance is doubled
		MaxRetries int `yaml:"maxRetries"`

		// EIWindowDivisor sets the EI sliding window to the x extent divided by this value
		EIWindowDivisor int `yaml:"eiWindowDivisor"`
	} `yaml:"geometry"`

	// Processing parameters
	Processing struct {
		// NumWorkers specifies how many slices are processed concurrently
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"processing"`

	// Feature extraction parameters
	Features struct {
		// Enabled appends intensity features to every result row
		Enabled bool `yaml:"enabled"`

		// Bins is the histogram resolution used for entropy
		Bins int `yaml:"bins"`
	} `yaml:"features"`

	// Output parameters
	Output struct {
		// SaveIntermediaryResults writes structure masks as PNG for inspection
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// IntermediaryDir is where intermediary results are saved
		IntermediaryDir string `yaml:"intermediaryDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Structures.RVEndo = "sarvendocardialContour"
	cfg.Structures.LVEpi = "saepicardialContour"
	cfg.Structures.LVEndo = "saendocardialContour"

	cfg.Angles.RVVentral = AngleGrid{Min: 0, Max: 180, Step: 15, IncludeMax: true}
	cfg.Angles.RVDorsal = AngleGrid{Min: 0, Max: 180, Step: 15, IncludeMax: true}
	cfg.Angles.LVEpi = AngleGrid{Min: 0, Max: 360, Step: 15}
	cfg.Angles.LVEndo = AngleGrid{Min: 0, Max: 360, Step: 15}

	// The upsampling was tuned at factor 8
	cfg.Geometry.UpsampleFactor = 8
	cfg.Geometry.AngleCorrection = true
	cfg.Geometry.Smoothing = true
	cfg.Geometry.SubPixel = false
	cfg.Geometry.CorrectEpicardium = true
	cfg.Geometry.MinMatchedPoints = 10
	cfg.Geometry.MaxRetries = 3
	cfg.Geometry.EIWindowDivisor = 15

	cfg.Processing.NumWorkers = runtime.NumCPU()

	cfg.Features.Enabled = false
	cfg.Features.Bins = 32

	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.IntermediaryDir = "intermediary_results"
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	var errs []error
	if c.Structures.RVEndo == "" || c.Structures.LVEpi == "" || c.Structures.LVEndo == "" {
		errs = append(errs, errors.New("all three structure labels must be set"))
	}
	if c.Geometry.UpsampleFactor < 1 {
		errs = append(errs, fmt.Errorf("upsampleFactor must be >= 1, got %d", c.Geometry.UpsampleFactor))
	}
	if c.Geometry.MinMatchedPoints < 1 {
		errs = append(errs, fmt.Errorf("minMatchedPoints must be >= 1, got %d", c.Geometry.MinMatchedPoints))
	}
	if c.Geometry.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("maxRetries must be >= 0, got %d", c.Geometry.MaxRetries))
	}
	if c.Geometry.EIWindowDivisor < 1 {
		errs = append(errs, fmt.Errorf("eiWindowDivisor must be >= 1, got %d", c.Geometry.EIWindowDivisor))
	}
	grids := map[string]AngleGrid{
		"rvVentral": c.Angles.RVVentral,
		"rvDorsal":  c.Angles.RVDorsal,
		"lvEpi":     c.Angles.LVEpi,
		"lvEndo":    c.Angles.LVEndo,
	}
	for name, g := range grids {
		if g.Step <= 0 {
			errs = append(errs, fmt.Errorf("angle grid %s: step must be positive", name))
		}
	}
	if c.Features.Enabled && c.Features.Bins < 2 {
		errs = append(errs, fmt.Errorf("features.bins must be >= 2, got %d", c.Features.Bins))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shortcardiac/internal/logger"
	"shortcardiac/internal/models"
	"shortcardiac/pkg/batch"
	"shortcardiac/pkg/config"
	"shortcardiac/pkg/contours"
	"shortcardiac/pkg/features"
	"shortcardiac/pkg/pipeline"
	"shortcardiac/pkg/report"
	"shortcardiac/pkg/spacing"
)

const component = logger.ComponentCLI

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "shortcardiac.yaml", "YAML configuration file (defaults are used when missing)")
	contourPath := flag.String("contours", "", "JSON file with the slice contours")
	manifestPath := flag.String("spacing", "", "CSV manifest with id,spacing_x,spacing_y per slice")
	dicomDir := flag.String("dicom-dir", "", "Directory of <id>.dcm files to read pixel spacing and image size from")
	outputPath := flag.String("output", "measurements.csv", "Output CSV file")
	numCores := flag.Int("cores", 0, "Number of slices processed concurrently (default: from config)")
	withFeatures := flag.Bool("features", false, "Append first-order intensity features (requires images)")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	// Validate inputs
	if *contourPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *numCores > 0 {
		cfg.Processing.NumWorkers = *numCores
	}
	if *withFeatures {
		cfg.Features.Enabled = true
	}

	level := zerolog.InfoLevel
	if cfg.Output.Verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(level)

	fmt.Println("================================")
	fmt.Println("SHORT-AXIS CARDIAC CONTOUR MEASUREMENTS")
	fmt.Println("================================")

	if err := run(cfg, log, *contourPath, *manifestPath, *dicomDir, *outputPath); err != nil {
		log.Error(component, err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.ZerologAdapter, contourPath, manifestPath, dicomDir, outputPath string) error {
	file, err := contours.Load(contourPath)
	if err != nil {
		return fmt.Errorf("loading contours: %w", err)
	}

	src := contours.Sources{LoadImages: cfg.Features.Enabled}
	if manifestPath != "" {
		if src.Manifest, err = spacing.LoadManifest(manifestPath); err != nil {
			return fmt.Errorf("loading spacing manifest: %w", err)
		}
	}
	if dicomDir != "" {
		if src.Headers, err = spacing.FromDICOMDir(dicomDir); err != nil {
			return fmt.Errorf("reading dicom headers: %w", err)
		}
	}

	inputs, err := file.Inputs(src)
	if err != nil {
		return err
	}
	log.Info(component, "loaded slices", map[string]interface{}{
		"file":   contourPath,
		"slices": len(inputs),
	})
	warnMissingSpacing(log, inputs)

	p := pipeline.New(cfg.RunConfiguration(), featureRunner(cfg))

	proc := batch.NewProcessor(&batch.Params{NumCores: cfg.Processing.NumWorkers}, p, log)

	startTime := time.Now()
	results, err := proc.Process(inputs)
	if err != nil {
		return err
	}
	processingTime := time.Since(startTime)

	if err := report.WriteFile(outputPath, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	summary, err := batch.Summarize(results)
	if err != nil {
		return err
	}
	summaryPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_summary.csv"
	f, err := os.Create(summaryPath)
	if err != nil {
		return err
	}
	if err := report.WriteSummary(f, summary); err != nil {
		f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info(component, "batch finished", map[string]interface{}{
		logger.FieldRun: proc.RunID(),
		"calculable":    summary.Calculable,
		"total":         summary.Total,
		"seconds":       processingTime.Seconds(),
	})

	fmt.Printf("\nProcessed %d slices in %.2f seconds using %d workers\n", summary.Total, processingTime.Seconds(), cfg.Processing.NumWorkers)
	fmt.Print(summary.String())
	fmt.Printf("Results saved to: %s\n", outputPath)
	fmt.Printf("Summary saved to: %s\n", summaryPath)
	if cfg.Output.SaveIntermediaryResults && cfg.Features.Enabled {
		fmt.Printf("Structure masks saved to: %s\n", filepath.Join(cfg.Output.IntermediaryDir, "masks"))
	}
	return nil
}

// featureRunner returns nil when features are disabled.
func featureRunner(cfg *config.Config) *features.Runner {
	if !cfg.Features.Enabled {
		return nil
	}
	var maskDir string
	if cfg.Output.SaveIntermediaryResults {
		maskDir = filepath.Join(cfg.Output.IntermediaryDir, "masks")
	}
	return features.NewRunner(features.NewFirstOrder(cfg.Features.Bins), features.Labels{
		RVEndo: cfg.Structures.RVEndo,
		LVEpi:  cfg.Structures.LVEpi,
		LVEndo: cfg.Structures.LVEndo,
	}, maskDir)
}

func warnMissingSpacing(log logger.Logger, inputs []models.SliceInput) {
	for _, in := range inputs {
		if in.Spacing.X <= 0 || in.Spacing.Y <= 0 {
			log.Warning(component, "no pixel spacing, slice will not be calculable", map[string]interface{}{
				logger.FieldSlice: in.ID,
			})
		}
	}
}

// =============================================================================
// UPD XML Generator - Converter Module
// =============================================================================
//
// This module orchestrates the generation pipeline for a single document
// configuration, from YAML loading to the written XML file.
//
// GENERATION PIPELINE:
//   1. Load the document configuration
//   2. Load line items from an external file, when one is supplied
//   3. Run advisory validation (warnings only)
//   4. Construct the document builder (hard validation happens here)
//   5. Write the XML file (skipped on dry runs)
//
// CONCURRENCY:
//   Each configuration is processed in its own goroutine. The converter is
//   stateless and safe for concurrent use; concurrent runs targeting the same
//   output path race on the file write and remain a caller responsibility.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glavbuh/updgen/internal/config"
	"github.com/glavbuh/updgen/internal/itemsource"
	"github.com/glavbuh/updgen/internal/upd"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single configuration file.
type Result struct {
	// ConfigPath is the path to the configuration that was processed.
	ConfigPath string

	// OutputFile is the path to the generated XML file.
	// This is empty if processing failed or was a dry run.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Items is the number of line items in the generated table.
	Items int

	// BasisDocuments is the number of basis-document references.
	BasisDocuments int

	// Warnings is the number of advisory validation warnings.
	Warnings int

	// ProcessingTime is the time taken to process the configuration.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Options control a single conversion run.
type Options struct {
	// OutputDir is the directory the XML file is written into.
	OutputDir string

	// ItemsFile optionally replaces the inline upd_table with line items
	// loaded from a CSV or XLSX export.
	ItemsFile string

	// DryRun loads, validates and builds but writes nothing.
	DryRun bool

	// LenientIO selects the builder's lenient directory-creation policy.
	LenientIO bool
}

// Converter handles the generation of one UPD document from one
// configuration file.
type Converter struct {
	configPath string
	opts       Options
}

// New creates a new Converter instance.
func New(configPath string, opts Options) *Converter {
	return &Converter{configPath: configPath, opts: opts}
}

// Run executes the generation pipeline and reports the outcome. It never
// panics; every failure is carried in the Result.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{ConfigPath: c.configPath}

	logger := log.With().Str("config", c.configPath).Logger()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	doc, err := config.Load(c.configPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to load configuration: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: LOAD EXTERNAL LINE ITEMS
	// =========================================================================
	// An external items file replaces the inline table entirely.

	items := doc.Items()
	if c.opts.ItemsFile != "" {
		items, err = itemsource.Load(c.opts.ItemsFile)
		if err != nil {
			result.Error = fmt.Errorf("failed to load items: %w", err)
			return result
		}
		logger.Debug().Int("count", len(items)).Str("file", c.opts.ItemsFile).Msg("Loaded external line items")
	}

	// =========================================================================
	// STEP 3: ADVISORY VALIDATION
	// =========================================================================
	// Warnings are logged but never block generation.

	warnings := doc.Validate()
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	result.Stats.Warnings = len(warnings)

	// =========================================================================
	// STEP 4: CONSTRUCT THE BUILDER
	// =========================================================================
	// Date parsing, the date cross-check and tax-id length validation all
	// happen here and fail the run synchronously.

	builder, err := upd.NewWithOptions(
		doc.Header(),
		doc.BuyerParty(),
		doc.SellerParty(),
		items,
		doc.BasisDocuments(),
		upd.Options{LenientIO: c.opts.LenientIO, Indent: "  "},
	)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.Items = len(items)
	result.Stats.BasisDocuments = len(doc.Docs)

	// =========================================================================
	// STEP 5: WRITE THE OUTPUT FILE
	// =========================================================================

	if c.opts.DryRun {
		logger.Info().Str("file", builder.FileName()+".xml").Msg("Dry run: skipping file write")
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	outPath, err := builder.Create(c.opts.OutputDir)
	if err != nil {
		result.Error = err
		return result
	}

	logger.Info().Str("output", outPath).Msg("Generated UPD document")

	result.OutputFile = outPath
	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

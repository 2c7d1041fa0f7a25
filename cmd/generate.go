// =============================================================================
// UPD XML Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which is the main command for
// producing UPD XML files. It orchestrates the generation pipeline for one or
// many document configurations.
//
// COMMAND USAGE:
//   updgen generate [flags] <config.yaml> [<config.yaml> ...]
//
// FLAGS:
//   --output      : Destination directory for the generated XML files
//   --items       : CSV/XLSX file replacing the inline upd_table
//   --dry-run     : Build and validate without writing output files
//   --lenient-io  : Fall back to the working directory when the destination
//                   cannot be created (reference-compatible behavior)
//
// PROCESSING PIPELINE:
//   1. For each configuration file (concurrently):
//      a. Load the YAML document configuration
//      b. Load external line items if supplied
//      c. Validate (advisory warnings)
//      d. Build the document tree
//      e. Serialize and write the windows-1251 XML file
//   2. Collect results and print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/glavbuh/updgen/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outputDir is the destination directory for generated XML files.
var outputDir string

// itemsFile optionally replaces the inline items table.
var itemsFile string

// dryRun simulates processing without writing output files.
var dryRun bool

// lenientIO selects the fallback directory-creation policy.
var lenientIO bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate <config.yaml> [<config.yaml> ...]",
	Short: "Generate UPD XML files from document configurations",
	Long: `The generate command loads one or more YAML document configurations and
produces one UPD XML file per configuration.

Processing is done concurrently. Each configuration is processed
independently, and errors in one configuration do not affect the others.

The output file name follows the mandated pattern
ON_NSCHFDOPPR_{buyer}_{seller}_{date}_{doc-guid}_0_0_0_0_0_00.xml and the
file is encoded in windows-1251 as required by the receiving systems.

The destination directory defaults to $UPDGEN_OUTPUT_DIR, then "./out".`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(
		&outputDir,
		"output",
		"o",
		"",
		"Destination directory for generated XML files (default $UPDGEN_OUTPUT_DIR or ./out)",
	)

	generateCmd.Flags().StringVar(
		&itemsFile,
		"items",
		"",
		"CSV or XLSX file with line items, replacing the inline upd_table",
	)

	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Build and validate without writing output files",
	)

	generateCmd.Flags().BoolVar(
		&lenientIO,
		"lenient-io",
		false,
		"Fall back to the working directory when the destination cannot be created",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runGenerate processes every configuration file concurrently and prints a
// summary. It returns an error when any configuration failed, so the process
// exit code reflects the batch outcome.
func runGenerate(configPaths []string) error {
	startTime := time.Now()

	if outputDir == "" {
		outputDir = envOrDefault("UPDGEN_OUTPUT_DIR", "./out")
	}

	log.Info().Int("configs", len(configPaths)).Str("output", outputDir).Msg("Generating UPD documents")

	opts := converter.Options{
		OutputDir: outputDir,
		ItemsFile: itemsFile,
		DryRun:    dryRun,
		LenientIO: lenientIO,
	}

	var wg sync.WaitGroup
	results := make(chan converter.Result, len(configPaths))

	for _, path := range configPaths {
		wg.Add(1)
		go func(configPath string) {
			defer wg.Done()
			results <- converter.New(configPath, opts).Run()
		}(path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var successCount, errorCount int
	for result := range results {
		if result.Success {
			successCount++
			fmt.Printf("  ✓ %s -> %s\n", filepath.Base(result.ConfigPath), result.OutputFile)
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.ConfigPath), result.Error)
		}
	}

	fmt.Println("\n=== Generation Complete ===")
	fmt.Printf("Total configs:   %d\n", len(configPaths))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	if errorCount > 0 {
		return fmt.Errorf("%d of %d configurations failed", errorCount, len(configPaths))
	}
	return nil
}

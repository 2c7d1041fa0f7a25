// =============================================================================
// UPD XML Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks document
// configurations without producing any output files. It runs the same hard
// validation the builder performs (date formats, the date cross-check,
// tax-identifier lengths) plus the advisory checks (totals consistency,
// missing signer parts).
//
// COMMAND USAGE:
//   updgen validate <config.yaml> [<config.yaml> ...]
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glavbuh/updgen/internal/config"
	"github.com/glavbuh/updgen/internal/upd"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml> [<config.yaml> ...]",
	Short: "Validate document configurations without generating files",
	Long: `The validate command loads each configuration, runs every check the
generate command would run, and reports the findings. Nothing is written to
disk. Advisory warnings (for example a totals mismatch) do not fail the
command; hard errors (unparseable dates, invalid tax identifiers) do.`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate checks every configuration sequentially and prints a report.
func runValidate(configPaths []string) error {
	var errorCount int

	for _, path := range configPaths {
		name := filepath.Base(path)

		doc, err := config.Load(path)
		if err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", name, err)
			continue
		}

		for _, w := range doc.Validate() {
			fmt.Printf("  ! %s: %s\n", name, w)
		}

		// The builder constructor performs the hard validation; a dry
		// construction surfaces exactly the errors generation would hit.
		_, err = upd.New(doc.Header(), doc.BuyerParty(), doc.SellerParty(), doc.Items(), doc.BasisDocuments())
		if err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", name, err)
			continue
		}

		fmt.Printf("  ✓ %s\n", name)
	}

	if errorCount > 0 {
		return fmt.Errorf("%d of %d configurations are invalid", errorCount, len(configPaths))
	}
	return nil
}

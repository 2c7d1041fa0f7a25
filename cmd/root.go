// =============================================================================
// UPD XML Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'generate', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (updgen)
//   ├── generateCmd (updgen generate)
//   ├── validateCmd (updgen validate)
//   └── versionCmd (updgen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --verbose)
//   2. Loading optional .env defaults
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "updgen",
	Short: "UPD XML Generator - Produce Russian Universal Transfer Documents (XSD v5.03)",
	Long: `UPD XML Generator builds schema-compliant Russian Universal Transfer
Documents (УПД, format version 5.03) from YAML document configurations and
writes them as windows-1251 encoded XML files ready for upload into Diadoc
and similar operator systems.

Key Features:
  - Exact element, attribute and nesting structure mandated by the format
  - Legal-entity and individual-entrepreneur identity blocks
  - Structured and free-text address blocks, optional bank details
  - Line items from inline YAML, CSV or XLSX exports
  - Concurrent batch generation over multiple configurations

Example Usage:
  updgen generate invoice.yaml                 # Generate one document
  updgen generate --output ./out a.yaml b.yaml # Generate a batch
  updgen validate invoice.yaml                 # Validate without writing`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging, initEnv)

	// --verbose flag: enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initEnv loads optional .env defaults (UPDGEN_OUTPUT_DIR and friends).
// A missing file is not an error.
func initEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}
}

// initLogging configures zerolog console output.
func initLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// envOrDefault returns the environment variable value or the default when it
// is unset.
func envOrDefault(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

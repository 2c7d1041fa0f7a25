// =============================================================================
// UPD XML Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the UPD XML Generator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   updgen generate <config.yaml> ...  - Generate UPD XML files
//   updgen validate <config.yaml> ...  - Validate configurations without writing
//   updgen version                     - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/                  : CLI command definitions (Cobra)
//   - internal/config/      : YAML document configuration loading
//   - internal/itemsource/  : line items from CSV/XLSX exports
//   - internal/upd/         : the UPD document builder (the core)
//   - internal/converter/   : per-configuration generation pipeline
//   - configs/              : example document configurations
//
// =============================================================================

package main

import (
	"github.com/glavbuh/updgen/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}

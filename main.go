// =============================================================================
// Asset Import - Main Entry Point
// =============================================================================
//
// This is the main entry point for the asset bulk-import CLI. It hands control
// to the Cobra commands in the cmd package.
//
// USAGE:
//   asset-import process        - Validate every import file in the input directory
//   asset-import template       - Write a blank import workbook
//   asset-import lookup sync    - Publish the lookup sets to Redis
//   asset-import version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : parsing, validation, import orchestration, reports
//   - pkg/           : file discovery and archival helpers
//   - configs/       : per-template YAML configurations
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/asset-import/cmd"
)

func main() {
	cmd.Execute()
}

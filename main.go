// =============================================================================
// CSV to XLSX Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the CSV to XLSX Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   csv2xlsx --input_file data.csv --output_filename report   - Convert a file
//   csv2xlsx inspect --file report.xlsx                        - Print a workbook
//   csv2xlsx version                                           - Display the version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Conversion logic (not for external import)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}

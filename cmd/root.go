// =============================================================================
// CSV to XLSX Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the conversion itself (see convert.go); the other commands are
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv2xlsx)         convert a delimited file to .xlsx
//   ├── inspectCmd (inspect)   print a workbook as delimited text
//   └── versionCmd (version)   display the application version
//
// The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the optional settings file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the settings file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd converts a delimited text file to a spreadsheet.
var rootCmd = &cobra.Command{
	Use:   "csv2xlsx",
	Short: "Convert a CSV/TSV file into an .xlsx spreadsheet",
	Long: `csv2xlsx converts a delimited text table (CSV, TSV, ...) into an .xlsx
workbook with a single sheet. Cells that hold numbers are stored as numbers,
everything else is kept as text.

The first row can be treated as a header (column labels) and the first column
as an index (row labels). Both are excluded from numeric conversion and
written back as labels.

Example Usage:
  csv2xlsx --input_file data.csv --output_filename report
  csv2xlsx --input_file data.tsv --delimiter tab --it_has_header --output_filename report
  csv2xlsx --input_file data.csv --it_has_header --it_has_index --output_filename out/report`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: optional YAML settings file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultSettingsFile,
		"Path to the settings file",
	)

	// --verbose flag: enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadSettings reads the settings file. The default file is optional; a
// file named with --config must exist.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	required := cmd.Flags().Changed("config")
	settings, err := config.LoadSettings(cfgFile, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// newLogger builds the logger for a command from the settings and --verbose.
func newLogger(cmd *cobra.Command, settings *config.Settings) (zerolog.Logger, error) {
	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

// =============================================================================
// CSV to XLSX Converter - Conversion Flags and Pipeline
// =============================================================================
//
// This file wires the root command's flags to the converter.
//
// COMMAND USAGE:
//   csv2xlsx --input_file PATH --output_filename NAME [flags]
//
// FLAGS:
//   --input_file       : Delimited input file (required)
//   --output_filename  : Output base name, ".xlsx" is appended (required)
//   --delimiter        : Field separator (default ",")
//   --it_has_header    : First row holds column labels
//   --it_has_index     : First column holds row labels
//   --encoding         : Input character encoding (default UTF-8)
//   --sheet_name       : Worksheet name (default Sheet1)
//
// Flags explicitly given on the command line override the settings file.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputFile      string
	outputFilename string
	delimiter      string
	hasHeader      bool
	hasIndex       bool
	encoding       string
	sheetName      string
)

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := rootCmd.Flags()

	flags.StringVar(&inputFile, "input_file", "", "Input file, csv or tsv preferably")
	flags.StringVar(&delimiter, "delimiter", ",", "Delimiter in the input file")
	flags.StringVar(&outputFilename, "output_filename", "",
		"Name desired for the output file (extension '.xlsx' will be added automatically)")
	flags.BoolVar(&hasIndex, "it_has_index", false,
		"Whether or not the input file has an index (if the rows are named)")
	flags.BoolVar(&hasHeader, "it_has_header", false,
		"Whether or not the input file has headers (if the columns are named)")
	flags.StringVar(&encoding, "encoding", "UTF-8", "Character encoding of the input file")
	flags.StringVar(&sheetName, "sheet_name", "Sheet1", "Name of the worksheet in the output file")

	rootCmd.MarkFlagRequired("input_file")
	rootCmd.MarkFlagRequired("output_filename")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert builds the run parameters and executes the conversion.
func runConvert(cmd *cobra.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	params, err := buildParams(cmd, settings)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, settings)
	if err != nil {
		return err
	}

	if _, err := converter.New(params, logger).Run(); err != nil {
		return err
	}

	return nil
}

// buildParams merges the settings file with the flags the user set.
func buildParams(cmd *cobra.Command, settings *config.Settings) (config.Params, error) {
	params, err := config.NewParams(settings)
	if err != nil {
		return config.Params{}, err
	}

	flags := cmd.Flags()

	if flags.Changed("delimiter") {
		r, err := config.ResolveDelimiter(delimiter)
		if err != nil {
			return config.Params{}, fmt.Errorf("invalid --delimiter: %w", err)
		}
		params.Delimiter = r
	}
	if flags.Changed("encoding") {
		params.Encoding = encoding
	}
	if flags.Changed("sheet_name") {
		params.SheetName = sheetName
	}

	params.InputFile = inputFile
	params.OutputPrefix = outputFilename
	params.HasHeader = hasHeader
	params.HasIndex = hasIndex

	return params, nil
}

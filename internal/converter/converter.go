// =============================================================================
// CSV to XLSX Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single file.
//
// CONVERSION PIPELINE:
//   1. Validate the run parameters
//   2. Load the delimited file into a table      (csvparser.Load)
//   3. Coerce numeric-looking cells to numbers   (CoerceNumeric)
//   4. Write the table to "<prefix>.xlsx"        (xlsxwriter.Write)
//
// The run is synchronous. Errors from loading (*csvparser.ParseError) and
// writing (*xlsxwriter.WriteError) are returned unchanged so the caller can
// tell them apart with errors.As.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/xlsxwriter"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a successful conversion.
type Result struct {
	// InputFile is the delimited file that was read.
	InputFile string

	// OutputFile is the workbook that was written.
	OutputFile string

	// Table is the table as written, after coercion.
	Table *table.Table

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// Rows is the number of data rows, header excluded.
	Rows int

	// Columns is the number of data columns, index excluded.
	Columns int

	// NumericCells is the number of cells coerced to numbers.
	NumericCells int

	// OutputBytes is the size of the written workbook.
	OutputBytes int64

	// ProcessingTime is the time taken by the whole pipeline.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts one delimited file to one workbook.
type Converter struct {
	params config.Params
	logger zerolog.Logger
}

// New creates a Converter for the given parameters.
func New(params config.Params, logger zerolog.Logger) *Converter {
	return &Converter{
		params: params,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - The result with the output path and statistics.
//   - An error if the parameters are invalid, or the *csvparser.ParseError
//     or *xlsxwriter.WriteError that stopped the run.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()
	p := c.params

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	log := c.logger.With().Str("input", p.InputFile).Logger()

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	log.Debug().
		Str("delimiter", string(p.Delimiter)).
		Str("encoding", p.Encoding).
		Bool("header", p.HasHeader).
		Bool("index", p.HasIndex).
		Msg("Loading input")

	tbl, err := csvparser.Load(p.InputFile, csvparser.Options{
		Delimiter: p.Delimiter,
		Encoding:  p.Encoding,
		HasHeader: p.HasHeader,
		HasIndex:  p.HasIndex,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("rows", tbl.Len()).Int("columns", tbl.Width()).Msg("Parsed input")

	// =========================================================================
	// STEP 2: COERCE
	// =========================================================================

	coerced, numeric := CoerceNumeric(tbl)

	log.Debug().Int("numeric_cells", numeric).Msg("Applied numeric coercion")

	// =========================================================================
	// STEP 3: WRITE
	// =========================================================================

	outputPath, err := xlsxwriter.Write(coerced, p.OutputPrefix, xlsxwriter.Options{
		HasHeader:  p.HasHeader,
		HasIndex:   p.HasIndex,
		SheetName:  p.SheetName,
		BoldLabels: p.BoldLabels,
	})
	if err != nil {
		return nil, err
	}

	size, err := utils.GetFileSize(outputPath)
	if err != nil {
		log.Warn().Err(err).Str("output", outputPath).Msg("Could not stat output file")
	}

	result := &Result{
		InputFile:  p.InputFile,
		OutputFile: outputPath,
		Table:      coerced,
		Stats: ProcessingStats{
			Rows:           coerced.Len(),
			Columns:        coerced.Width(),
			NumericCells:   numeric,
			OutputBytes:    size,
			ProcessingTime: time.Since(startTime),
		},
	}

	log.Info().
		Str("output", outputPath).
		Int("rows", result.Stats.Rows).
		Int("columns", result.Stats.Columns).
		Int("numeric_cells", numeric).
		Int64("bytes", size).
		Dur("elapsed", result.Stats.ProcessingTime).
		Msg("Conversion complete")

	return result, nil
}

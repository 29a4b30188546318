// =============================================================================
// CSV to XLSX Converter - XLSX Writer Module
// =============================================================================
//
// This module serializes a table to a single-sheet xlsx workbook.
//
// SHEET LAYOUT:
//
//   header + index           header only           index only
//   +-----+----+----+        +----+----+           +----+----+----+
//   | idx | h0 | h1 |        | h0 | h1 |           | i0 | d  | d  |
//   +-----+----+----+        +----+----+           | i1 | d  | d  |
//   | i0  | d  | d  |        | d  | d  |           +----+----+----+
//   | i1  | d  | d  |        | d  | d  |
//   +-----+----+----+        +----+----+
//
// Labels are written as text and (optionally) styled bold with a thin
// border. Numeric cells are written as numbers, text cells as strings,
// blank cells are left out.
//
// The output file is always "<prefix>.xlsx" and is replaced atomically.
//
// =============================================================================

package xlsxwriter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/validation"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/pkg/utils"
)

// DefaultSheetName is the name of the worksheet when none is configured.
const DefaultSheetName = "Sheet1"

// ErrMissingLabels is returned when header or index output is requested
// for a table that was loaded without them.
var ErrMissingLabels = errors.New("table has no labels to emit")

// =============================================================================
// ERRORS
// =============================================================================

// WriteError reports a failure to produce the output workbook: an invalid
// or oversized table, or a destination that cannot be written.
type WriteError struct {
	// Path is the output file.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls the workbook layout.
type Options struct {
	// HasHeader re-emits the header row. The table must carry a header.
	HasHeader bool

	// HasIndex re-emits the index column. The table must carry an index.
	HasIndex bool

	// SheetName names the worksheet. Default: "Sheet1"
	SheetName string

	// BoldLabels styles header and index cells bold with a thin border.
	BoldLabels bool
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write serializes the table to "<prefix>.xlsx".
//
// PARAMETERS:
//   - tbl: The table to write. Cells are written with their current type;
//     coercion is expected to have happened already.
//   - prefix: The output base name. ".xlsx" is appended verbatim.
//   - opts: Layout options.
//
// RETURNS:
//   - The path of the written file.
//   - A *WriteError if the table is invalid, too large, or the file cannot
//     be written. Nothing is created at the destination in that case.
func Write(tbl *table.Table, prefix string, opts Options) (string, error) {
	path := utils.OutputFileName(prefix)

	f, err := Build(tbl, opts)
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	err = utils.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	return path, nil
}

// Build lays the table out in a new in-memory workbook. The caller owns
// the returned file and must close it.
func Build(tbl *table.Table, opts Options) (*excelize.File, error) {
	if err := checkTable(tbl, opts); err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	sheet, err := prepareSheet(f, opts.SheetName)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeTable(f, sheet, tbl, opts); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     "csv2xlsx",
		Description: "Converted from delimited text",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	return f, nil
}

// checkTable rejects tables that cannot be written as requested.
func checkTable(tbl *table.Table, opts Options) error {
	if opts.HasHeader && !tbl.HasHeader() {
		return fmt.Errorf("%w: header requested", ErrMissingLabels)
	}
	if opts.HasIndex && !tbl.HasIndex() {
		return fmt.Errorf("%w: index requested", ErrMissingLabels)
	}

	if errs := validation.CheckShape(tbl); len(errs) > 0 {
		return fmt.Errorf("invalid table: %w\n%s", errs[0], strings.TrimSpace(validation.FormatErrors(errs)))
	}

	return validation.CheckLimits(emitted(tbl, opts))
}

// emitted returns a view of the table with only the labels that will
// actually be written, for limit checks.
func emitted(tbl *table.Table, opts Options) *table.Table {
	view := *tbl
	if !opts.HasHeader {
		view.Header = nil
	}
	if !opts.HasIndex {
		view.Index = nil
	}
	return &view
}

// prepareSheet renames the default worksheet when needed.
func prepareSheet(f *excelize.File, name string) (string, error) {
	if name == "" || name == DefaultSheetName {
		return DefaultSheetName, nil
	}

	if err := f.SetSheetName(DefaultSheetName, name); err != nil {
		return "", fmt.Errorf("invalid sheet name %q: %w", name, err)
	}

	return name, nil
}

// writeTable writes labels and data cells.
func writeTable(f *excelize.File, sheet string, tbl *table.Table, opts Options) error {
	rowOffset, colOffset := 0, 0
	if opts.HasHeader {
		rowOffset = 1
	}
	if opts.HasIndex {
		colOffset = 1
	}

	if opts.HasHeader {
		if opts.HasIndex && tbl.IndexName != "" {
			if err := f.SetCellStr(sheet, "A1", tbl.IndexName); err != nil {
				return err
			}
		}
		for j, label := range tbl.Header {
			if err := setText(f, sheet, colOffset+j+1, 1, label); err != nil {
				return err
			}
		}
	}

	for i, row := range tbl.Rows {
		excelRow := rowOffset + i + 1

		if opts.HasIndex {
			if err := setText(f, sheet, 1, excelRow, tbl.Index[i]); err != nil {
				return err
			}
		}

		for j, cell := range row {
			if err := setCell(f, sheet, colOffset+j+1, excelRow, cell); err != nil {
				return err
			}
		}
	}

	if opts.BoldLabels {
		return styleLabels(f, sheet, tbl, opts)
	}

	return nil
}

// setCell writes one data cell according to its kind.
func setCell(f *excelize.File, sheet string, col, row int, cell table.Cell) error {
	if v, ok := cell.Float(); ok {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellFloat(sheet, name, v, -1, 64)
	}
	return setText(f, sheet, col, row, cell.Raw())
}

// setText writes a string cell, skipping blanks.
func setText(f *excelize.File, sheet string, col, row int, s string) error {
	if s == "" {
		return nil
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStr(sheet, name, s)
}

// styleLabels applies the label style to the header row and index column.
func styleLabels(f *excelize.File, sheet string, tbl *table.Table, opts Options) error {
	if !opts.HasHeader && !opts.HasIndex {
		return nil
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	indexStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("failed to create index style: %w", err)
	}

	rowOffset, colOffset := 0, 0
	if opts.HasHeader {
		rowOffset = 1
	}
	if opts.HasIndex {
		colOffset = 1
	}

	if opts.HasHeader {
		lastCol := colOffset + len(tbl.Header)
		if lastCol > 0 {
			if err := styleRange(f, sheet, 1, 1, lastCol, 1, headerStyle); err != nil {
				return err
			}
		}
	}

	if opts.HasIndex && len(tbl.Index) > 0 {
		if err := styleRange(f, sheet, 1, rowOffset+1, 1, rowOffset+len(tbl.Index), indexStyle); err != nil {
			return err
		}
	}

	return nil
}

func styleRange(f *excelize.File, sheet string, col1, row1, col2, row2, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

// =============================================================================
// CSV to XLSX Converter - XLSX Parser
// =============================================================================
//
// This module reads a worksheet back into a table.Table. It is the inverse
// of the xlsx writer and backs the 'inspect' command and the round-trip
// tests.
//
// CELL TYPES:
//   - Shared, inline and formula strings  -> text cells
//   - Numeric (or untyped) cells          -> numeric cells
//   - Missing cells                       -> blank text cells
//
// LIMITATIONS:
//   Trailing columns and rows that are blank everywhere are not stored in
//   the workbook and therefore cannot be recovered.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
)

// Options tells the parser how the sheet is laid out.
type Options struct {
	// HasHeader reads the first row as column labels.
	HasHeader bool

	// HasIndex reads the first column as row labels.
	HasIndex bool

	// SheetName selects the worksheet. Default: the first sheet.
	SheetName string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first sheet of a workbook with no header and no index.
func Parse(path string) (*table.Table, error) {
	return ParseWithOptions(path, Options{})
}

// ParseWithOptions reads a worksheet into a table.
//
// PARAMETERS:
//   - path: The workbook to read.
//   - opts: Sheet selection and header/index layout.
//
// RETURNS:
//   - The table, with numeric cells restored as numbers.
//   - An error if the workbook cannot be opened or the sheet read.
func ParseWithOptions(path string, opts Options) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return ReadSheet(f, opts)
}

// ReadSheet reads a worksheet of an open workbook into a table.
func ReadSheet(f *excelize.File, opts Options) (*table.Table, error) {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	tbl := &table.Table{}
	start := 0
	firstCol := 0
	if opts.HasIndex {
		firstCol = 1
		width = max(width, 1)
	}

	if opts.HasHeader {
		header := padRow(firstRow(rows), width)
		start = 1
		if opts.HasIndex {
			tbl.IndexName = header[0]
		}
		tbl.Header = append([]string{}, header[firstCol:]...)
	}

	if opts.HasIndex {
		tbl.Index = make([]string, 0, len(rows))
	}

	tbl.Rows = make([][]table.Cell, 0, len(rows))
	for i := start; i < len(rows); i++ {
		values := padRow(rows[i], width)

		if opts.HasIndex {
			tbl.Index = append(tbl.Index, values[0])
		}

		cells := make([]table.Cell, 0, width-firstCol)
		for j := firstCol; j < width; j++ {
			cell, err := readCell(f, sheet, j+1, i+1, values[j])
			if err != nil {
				return nil, fmt.Errorf("error reading row %d: %w", i+1, err)
			}
			cells = append(cells, cell)
		}
		tbl.Rows = append(tbl.Rows, cells)
	}

	return tbl, nil
}

// readCell turns a raw value into a typed cell using the stored cell type.
func readCell(f *excelize.File, sheet string, col, row int, raw string) (table.Cell, error) {
	if raw == "" {
		return table.Text(""), nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return table.Cell{}, err
	}

	cellType, err := f.GetCellType(sheet, name)
	if err != nil {
		return table.Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return table.Text(raw), nil
	}

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return table.Number(v), nil
	}

	return table.Text(raw), nil
}

// =============================================================================
// HELPERS
// =============================================================================

func firstRow(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// padRow extends a row with blanks up to width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// =============================================================================
// CSV to XLSX Converter - Validation Module
// =============================================================================
//
// This module checks that a table can be written as a single worksheet:
//   - Shape: every row has the table width, labels match the data
//   - Limits: rows, columns and text length fit the xlsx format
//
// Cell contents are not validated against any schema. Mixed types within a
// column are allowed.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
)

// ErrLimitExceeded is wrapped by every CheckLimits error.
var ErrLimitExceeded = errors.New("table exceeds spreadsheet limits")

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single structural problem in a table.
type ValidationError struct {
	// Rule is the check that failed: "row_width", "header_width" or "index_length".
	Rule string

	// Row is the 0-based data row, or -1 when the error is not tied to a row.
	Row int

	// Expected is the count the rule required.
	Expected int

	// Actual is the count found.
	Actual int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("[%s] row %d: expected %d, got %d", e.Rule, e.Row, e.Expected, e.Actual)
	}
	return fmt.Sprintf("[%s] expected %d, got %d", e.Rule, e.Expected, e.Actual)
}

// =============================================================================
// SHAPE VALIDATION
// =============================================================================

// CheckShape returns every structural problem in the table. An empty result
// means all rows share the table width and the labels line up with the data.
func CheckShape(tbl *table.Table) []*ValidationError {
	var errs []*ValidationError

	width := tbl.Width()

	for i, row := range tbl.Rows {
		if len(row) != width {
			errs = append(errs, &ValidationError{
				Rule:     "row_width",
				Row:      i,
				Expected: width,
				Actual:   len(row),
			})
		}
	}

	if tbl.HasHeader() && len(tbl.Rows) > 0 && len(tbl.Rows[0]) != len(tbl.Header) {
		errs = append(errs, &ValidationError{
			Rule:     "header_width",
			Row:      -1,
			Expected: len(tbl.Rows[0]),
			Actual:   len(tbl.Header),
		})
	}

	if tbl.HasIndex() && len(tbl.Index) != len(tbl.Rows) {
		errs = append(errs, &ValidationError{
			Rule:     "index_length",
			Row:      -1,
			Expected: len(tbl.Rows),
			Actual:   len(tbl.Index),
		})
	}

	return errs
}

// =============================================================================
// LIMIT VALIDATION
// =============================================================================

// CheckLimits verifies that the table, labels included, fits in one
// worksheet. The returned error wraps ErrLimitExceeded.
func CheckLimits(tbl *table.Table) error {
	rows := tbl.Len()
	if tbl.HasHeader() {
		rows++
	}
	if rows > excelize.TotalRows {
		return fmt.Errorf("%w: %d rows, maximum is %d", ErrLimitExceeded, rows, excelize.TotalRows)
	}

	cols := tbl.Width()
	if tbl.HasIndex() {
		cols++
	}
	if cols > excelize.MaxColumns {
		return fmt.Errorf("%w: %d columns, maximum is %d", ErrLimitExceeded, cols, excelize.MaxColumns)
	}

	for _, label := range tbl.Header {
		if err := checkText(label, -1); err != nil {
			return err
		}
	}
	for i, label := range tbl.Index {
		if err := checkText(label, i); err != nil {
			return err
		}
	}
	for i, row := range tbl.Rows {
		for _, cell := range row {
			if cell.IsNumber() {
				continue
			}
			if err := checkText(cell.Raw(), i); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkText enforces the per-cell character limit.
func checkText(s string, row int) error {
	if len(s) <= excelize.TotalCellChars {
		return nil
	}
	if n := utf8.RuneCountInString(s); n > excelize.TotalCellChars {
		if row < 0 {
			return fmt.Errorf("%w: header cell has %d characters, maximum is %d",
				ErrLimitExceeded, n, excelize.TotalCellChars)
		}
		return fmt.Errorf("%w: row %d has a cell with %d characters, maximum is %d",
			ErrLimitExceeded, row, n, excelize.TotalCellChars)
	}
	return nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errs []*ValidationError) string {
	if len(errs) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n", len(errs)))

	for i, err := range errs {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// =============================================================================
// CSV to XLSX Converter - Numeric Coercion
// =============================================================================
//
// This module turns text cells that hold numbers into numeric cells, so the
// spreadsheet stores them as numbers rather than as text that merely looks
// numeric.
//
// RULES:
//   - Each cell is handled on its own; columns may mix numbers and text
//   - Surrounding whitespace is ignored for the attempt (" 3.14 " -> 3.14)
//   - Anything that does not parse stays exactly as it was
//   - NaN and infinities stay text: xlsx cannot store them
//   - Hexadecimal floats ("0x1p3") stay text
//   - Header and index labels are never touched
//
// =============================================================================

package converter

import (
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
)

// CoerceCell converts a text cell to a number when its text parses as a
// finite float. It is total: every other cell is returned unchanged.
func CoerceCell(cell table.Cell) table.Cell {
	if cell.IsNumber() {
		return cell
	}

	s := strings.TrimSpace(cell.Raw())
	if s == "" || isHexLiteral(s) {
		return cell
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return cell
	}

	return table.Number(v)
}

// isHexLiteral reports whether s uses hexadecimal float syntax ("0x1p3"),
// which strconv accepts but is not a decimal number.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// CoerceNumeric returns a copy of the table with CoerceCell applied to
// every data cell, together with the number of cells that became numeric.
// The input table is not modified.
func CoerceNumeric(tbl *table.Table) (*table.Table, int) {
	out := tbl.Clone()
	converted := 0

	for i, row := range out.Rows {
		for j, cell := range row {
			coerced := CoerceCell(cell)
			if coerced.IsNumber() && !cell.IsNumber() {
				converted++
			}
			out.Rows[i][j] = coerced
		}
	}

	return out, converted
}

// =============================================================================
// CSV to XLSX Converter - Table Model
// =============================================================================
//
// This package contains the in-memory table shared by the parser, the
// converter and both spreadsheet modules. Keeping it in its own package
// avoids import cycles between them.
//
// LAYOUT:
//   +-----------+----------+----------+
//   | IndexName | Header 0 | Header 1 |   <- only when a header is present
//   +-----------+----------+----------+
//   | Index 0   | Rows[0]  | Rows[0]  |
//   | Index 1   | Rows[1]  | Rows[1]  |
//   +-----------+----------+----------+
//     ^ only when an index is present
//
// =============================================================================

package table

import (
	"strconv"
)

// =============================================================================
// CELL
// =============================================================================

// Kind tells which variant a Cell holds.
type Kind int

const (
	// KindText is a cell holding a string.
	KindText Kind = iota

	// KindNumber is a cell holding a float64.
	KindNumber
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	default:
		return "text"
	}
}

// Cell is a single table value: either a number or a piece of text.
// The zero value is the blank text cell.
type Cell struct {
	kind Kind
	num  float64
	text string
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: KindNumber, num: v}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Kind returns the variant held by the cell.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool {
	return c.kind == KindNumber
}

// IsBlank reports whether the cell is the empty text cell.
func (c Cell) IsBlank() bool {
	return c.kind == KindText && c.text == ""
}

// Float returns the numeric value and true, or 0 and false for text cells.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// Raw returns the text of a text cell, or "" for numeric cells.
func (c Cell) Raw() string {
	if c.kind != KindText {
		return ""
	}
	return c.text
}

// String renders the cell for display. Numbers use the shortest
// representation that round-trips ("3.14", "1", "1e+21").
func (c Cell) String() string {
	if c.kind == KindNumber {
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	}
	return c.text
}

// Equal reports whether two cells hold the same variant and value.
func (c Cell) Equal(other Cell) bool {
	if c.kind != other.kind {
		return false
	}
	if c.kind == KindNumber {
		return c.num == other.num
	}
	return c.text == other.text
}

// =============================================================================
// TABLE
// =============================================================================

// Table is an ordered sequence of rows of cells, with optional column
// labels (Header) and optional row labels (Index).
//
// A nil Header means the table has no header row. A nil Index means the
// table has no index column. When both are present, IndexName holds the
// label of the index column.
type Table struct {
	// Header holds one label per data column.
	Header []string

	// IndexName is the label of the index column. Only meaningful when
	// both Header and Index are present.
	IndexName string

	// Index holds one label per data row.
	Index []string

	// Rows holds the data cells, row-major.
	Rows [][]Cell
}

// HasHeader reports whether the table carries column labels.
func (t *Table) HasHeader() bool {
	return t.Header != nil
}

// HasIndex reports whether the table carries row labels.
func (t *Table) HasIndex() bool {
	return t.Index != nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the number of data columns. The header wins when present
// so that a header-only table still reports its columns.
func (t *Table) Width() int {
	if t.Header != nil {
		return len(t.Header)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{IndexName: t.IndexName}

	if t.Header != nil {
		out.Header = append([]string{}, t.Header...)
	}
	if t.Index != nil {
		out.Index = append([]string{}, t.Index...)
	}

	out.Rows = make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}

	return out
}

// Equal reports whether two tables have the same labels and cells.
func (t *Table) Equal(other *Table) bool {
	if t.HasHeader() != other.HasHeader() || t.HasIndex() != other.HasIndex() {
		return false
	}
	if !equalStrings(t.Header, other.Header) || !equalStrings(t.Index, other.Index) {
		return false
	}
	if t.HasHeader() && t.HasIndex() && t.IndexName != other.IndexName {
		return false
	}
	if len(t.Rows) != len(other.Rows) {
		return false
	}
	for i := range t.Rows {
		if len(t.Rows[i]) != len(other.Rows[i]) {
			return false
		}
		for j := range t.Rows[i] {
			if !t.Rows[i][j].Equal(other.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// Records flattens the table back to string records, labels included,
// in the same layout the spreadsheet uses.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)

	if t.HasHeader() {
		record := make([]string, 0, len(t.Header)+1)
		if t.HasIndex() {
			record = append(record, t.IndexName)
		}
		records = append(records, append(record, t.Header...))
	}

	for i, row := range t.Rows {
		record := make([]string, 0, len(row)+1)
		if t.HasIndex() {
			record = append(record, t.Index[i])
		}
		for _, cell := range row {
			record = append(record, cell.String())
		}
		records = append(records, record)
	}

	return records
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

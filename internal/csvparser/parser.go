// =============================================================================
// CSV to XLSX Converter - CSV Parser Module
// =============================================================================
//
// This module reads a delimited text file (CSV, TSV, pipe-separated, ...)
// into a table.Table. It handles:
//   - Any single-character delimiter
//   - An optional header row (column labels)
//   - An optional index column (row labels)
//   - Non UTF-8 input encodings and byte order marks
//   - Quoted fields, including embedded delimiters and newlines
//
// Every record must have the same number of fields. A ragged file is a
// ParseError, never silently padded.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned when the input holds no records at all.
	ErrEmptyInput = errors.New("input file is empty")

	// ErrRaggedRow is returned when a record's field count differs from
	// the first record's.
	ErrRaggedRow = errors.New("inconsistent number of fields")
)

// ParseError reports a failure to turn the input file into a table:
// missing or unreadable file, unknown encoding, malformed quoting or
// ragged rows.
type ParseError struct {
	// Path is the input file.
	Path string

	// Line is the 1-based line of the offending record, 0 when the error
	// is not tied to a line.
	Line int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how the input file is read.
type Options struct {
	// Delimiter separates fields. Default: ','
	Delimiter rune

	// Encoding names the input character encoding. Default: UTF-8
	Encoding string

	// HasHeader consumes the first record as column labels.
	HasHeader bool

	// HasIndex consumes the first field of every record as the row label.
	HasIndex bool
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Load reads a delimited file and returns it as a table of text cells.
//
// PARAMETERS:
//   - path: The path to the delimited file.
//   - opts: Delimiter, encoding and header/index flags.
//
// RETURNS:
//   - The parsed table. All cells are text; numeric coercion is a separate step.
//   - A *ParseError if the file cannot be opened, decoded or parsed.
func Load(path string, opts Options) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	tbl, err := Read(file, opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	return tbl, nil
}

// Read parses delimited text from r. Load is the file-based wrapper.
func Read(r io.Reader, opts Options) (*table.Table, error) {
	decoder, err := newDecoder(opts.Encoding)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	reader := csv.NewReader(transform.NewReader(bufio.NewReader(r), decoder))
	configureReader(reader, opts)

	records, err := readRecords(reader)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	return buildTable(records, opts), nil
}

// configureReader applies the options to the CSV reader.
func configureReader(reader *csv.Reader, opts Options) {
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ','
	}

	// Field counts are checked by readRecords so the error can carry both counts.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Field values are kept exactly as written.
	reader.TrimLeadingSpace = false
}

// newDecoder returns a transformer decoding the named encoding to UTF-8.
// A byte order mark, when present, overrides the named encoding and is
// stripped. UTF-8 input is validated rather than repaired: an invalid byte
// sequence fails with encoding.ErrInvalidUTF8.
func newDecoder(name string) (transform.Transformer, error) {
	if name == "" {
		name = "utf-8"
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}

	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return transform.Chain(unicode.BOMOverride(transform.Nop), encoding.UTF8Validator), nil
	}

	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// readRecords reads every record and enforces a constant field count.
func readRecords(reader *csv.Reader) ([][]string, error) {
	var records [][]string
	width := -1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.StartLine, Err: csvErr.Err}
			}
			return nil, &ParseError{Err: err}
		}

		line, _ := reader.FieldPos(0)

		if width == -1 {
			width = len(record)
		} else if len(record) != width {
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("%w: expected %d, got %d", ErrRaggedRow, width, len(record)),
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// buildTable splits the records into labels and data cells.
func buildTable(records [][]string, opts Options) *table.Table {
	tbl := &table.Table{}

	if opts.HasHeader {
		header := cleanHeaders(records[0], opts.HasIndex)
		records = records[1:]

		if opts.HasIndex {
			tbl.IndexName = header[0]
			header = header[1:]
		}
		tbl.Header = header
	}

	if opts.HasIndex {
		tbl.Index = make([]string, 0, len(records))
	}

	tbl.Rows = make([][]table.Cell, 0, len(records))
	for _, record := range records {
		if opts.HasIndex {
			tbl.Index = append(tbl.Index, record[0])
			record = record[1:]
		}

		row := make([]table.Cell, len(record))
		for i, field := range record {
			row[i] = table.Text(field)
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl
}

// cleanHeaders names empty column labels "Unnamed: <position>".
// The index label is left as is: an unnamed index is simply blank.
func cleanHeaders(headers []string, hasIndex bool) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		if header == "" && !(hasIndex && i == 0) {
			header = fmt.Sprintf("Unnamed: %d", i)
		}
		cleaned[i] = header
	}

	return cleaned
}

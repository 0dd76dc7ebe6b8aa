// =============================================================================
// Asset Import - Shared Types
// =============================================================================
//
// This package contains the spreadsheet-shaped types shared by the import
// sources (xlsxparser, csvparser), the validators and the importer. Keeping
// them here avoids import cycles between those packages.
//
// CELL MODEL:
//   A spreadsheet cell is one of four variants:
//     - Empty  : no value (blank cell, missing trailing column, null)
//     - Text   : a string value
//     - Number : a numeric value (Excel stores dates and long digit strings
//                such as phone numbers as numbers too)
//     - Date   : a cell the workbook formats as a date
//
//   Consumers switch on Cell.Kind instead of relying on implicit coercion.
//
// =============================================================================

package types

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// CELL
// =============================================================================

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// DateLayout is the canonical rendering of date cells.
const DateLayout = "2006-01-02"

// Cell is a single spreadsheet value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{Kind: CellEmpty} }

// Text returns a text cell. An empty string yields an Empty cell so that
// blank CSV fields and blank workbook cells look the same downstream.
func Text(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{Kind: CellText, Text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// IsEmpty reports whether the cell carries no value. Text consisting only of
// whitespace counts as empty.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// String renders the cell the way an operator would read it in the sheet.
// Numbers never use exponent notation, so 9012345678 stays "9012345678".
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Date.Format(DateLayout)
	default:
		return ""
	}
}

// =============================================================================
// ROW AND SHEET
// =============================================================================

// Row is one data row, positioned by the sheet's header labels.
type Row []Cell

// TextRow builds a row of text cells. Empty strings become Empty cells.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// Get returns the cell at index i, or an Empty cell when the row is shorter.
func (r Row) Get(i int) Cell {
	if i < 0 || i >= len(r) {
		return Empty()
	}
	return r[i]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Sheet is the tabular data an import source hands to the importer: the
// header labels plus the data rows below them.
type Sheet struct {
	// SourceFile is the path the sheet was read from.
	SourceFile string

	// SheetName is the workbook sheet name (empty for CSV input).
	SheetName string

	// Headers are the ordered column labels.
	Headers []string

	// Rows are the data rows. Rows[i] is data row index i; blank rows are
	// kept so that spreadsheet row numbers stay aligned.
	Rows []Row

	// DataStartRow is the zero-based sheet row where data begins. It equals
	// the number of rows above the data (header and hint rows).
	DataStartRow int
}

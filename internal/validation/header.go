// =============================================================================
// Asset Import - Header Index
// =============================================================================
//
// Each import template has a fixed list of column labels. The Header type
// maps those labels to column positions once per import so that row
// validators can address cells by Field instead of scanning the header for
// every row.
//
// ROW NUMBERING:
//   Validators report rows the way the operator sees them in the sheet:
//
//     RowNumber = rowIndex + DataStartRow + 1
//
//   rowIndex is zero-based over data rows only. DataStartRow is the number of
//   sheet rows above the data: 2 for the office template (header + hint row),
//   1 for the device templates (header only).
//
// =============================================================================

package validation

import (
	"strings"

	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
)

// Default sheet rows above the data for each template family.
const (
	OfficeDataStartRow = 2
	DeviceDataStartRow = 1
)

// Field describes one template column.
type Field struct {
	// Key is the canonical field name used in records and reports.
	Key string

	// Label is the column title in the template, e.g. "事業所コード(必須)".
	Label string

	// Aliases are other accepted titles for the same column.
	Aliases []string

	// Name is the short name used in uniqueness messages. Defaults to Label.
	Name string

	// Required marks columns that must be present in the header.
	Required bool
}

// ShortName returns the name used in "already exists" style messages.
func (f Field) ShortName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Label
}

// Labels returns the template labels of fields, in order.
func Labels(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

// Header is an immutable label index for one import.
type Header struct {
	labels       []string
	index        map[string]int
	dataStartRow int
}

// NewHeader indexes labels. Labels are trimmed and half-width normalized; if
// a label repeats, the last column wins.
func NewHeader(labels []string, dataStartRow int) *Header {
	h := &Header{
		labels:       make([]string, len(labels)),
		index:        make(map[string]int, len(labels)),
		dataStartRow: dataStartRow,
	}
	for i, l := range labels {
		l = normalize.Clean(l)
		h.labels[i] = l
		if l != "" {
			h.index[l] = i
		}
	}
	return h
}

// Len returns the number of columns.
func (h *Header) Len() int { return len(h.labels) }

// Labels returns the normalized header labels.
func (h *Header) Labels() []string { return h.labels }

// DataStartRow returns the number of sheet rows above the data.
func (h *Header) DataStartRow() int { return h.dataStartRow }

// RowNumber converts a zero-based data row index to the sheet row number.
func (h *Header) RowNumber(rowIndex int) int {
	return rowIndex + h.dataStartRow + 1
}

// Lookup finds the column for f. The returned label is the one actually
// present in the header, so messages echo what the operator typed.
func (h *Header) Lookup(f Field) (int, string, bool) {
	for _, l := range append([]string{f.Label}, f.Aliases...) {
		if i, ok := h.index[normalize.Clean(l)]; ok {
			return i, h.labels[i], true
		}
	}
	return -1, f.Label, false
}

// Missing returns the labels of required fields that have no column.
func (h *Header) Missing(fields []Field) []string {
	var missing []string
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if _, _, ok := h.Lookup(f); !ok {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// =============================================================================
// ROW CHECK
// =============================================================================

// rowCheck accumulates the messages for one row. Every check appends and
// carries on; nothing short-circuits the row.
type rowCheck struct {
	row    types.Row
	header *Header
	number int
	errors []string
}

func newRowCheck(row types.Row, header *Header, rowIndex int) *rowCheck {
	return &rowCheck{row: row, header: header, number: header.RowNumber(rowIndex)}
}

// cell returns the raw cell for f and the label to report it under.
func (c *rowCheck) cell(f Field) (types.Cell, string) {
	i, label, ok := c.header.Lookup(f)
	if !ok {
		return types.Empty(), label
	}
	return c.row.Get(i), label
}

// value returns the half-width, trimmed text of f.
func (c *rowCheck) value(f Field) (string, string) {
	cell, label := c.cell(f)
	return normalize.Clean(cell.String()), label
}

// raw returns the trimmed text of f without width normalization.
func (c *rowCheck) raw(f Field) (string, string) {
	cell, label := c.cell(f)
	return strings.TrimSpace(cell.String()), label
}

func (c *rowCheck) add(msg string) {
	c.errors = append(c.errors, msg)
}

func (c *rowCheck) failed() bool { return len(c.errors) > 0 }

// required appends an empty-field message when v is empty.
func (c *rowCheck) required(v, label string) bool {
	if v == "" {
		c.add(emptyMessage(c.number, label))
		return false
	}
	return true
}

// shape appends a format message when v is non-empty and fails pred.
func (c *rowCheck) shape(v, label string, pred func(string) bool, reason string) bool {
	if v == "" || pred(v) {
		return true
	}
	c.add(formatMessage(c.number, label, v, reason))
	return false
}

// unique checks key against persisted keys first, then keys accepted earlier
// in the batch. At most one of the two messages is produced.
func (c *rowCheck) unique(f Field, display, key string, existing, processed KeySet) {
	switch {
	case existing.Has(key):
		c.add(existsMessage(c.number, f.ShortName(), display))
	case processed.Has(key):
		c.add(duplicateMessage(c.number, f.ShortName(), display))
	}
}

// enum checks a non-empty value against allowed.
func (c *rowCheck) enum(f Field, allowed []string) {
	v, label := c.value(f)
	if v == "" || IsEnumMember(v, allowed) {
		return
	}
	c.add(formatMessage(c.number, label, v, enumReason(allowed)))
}

// reference checks an optional code column: digits and hyphens, then
// membership in set when the caller supplied one.
func (c *rowCheck) reference(f Field, set KeySet) {
	v, label := c.value(f)
	if !c.shape(v, label, IsDigitsAndHyphensOnly, reasonDigitsAndHyphens) || v == "" {
		return
	}
	if set != nil && !set.Has(v) {
		c.add(notFoundMessage(c.number, f.ShortName(), v))
	}
}

// date checks shape, then range when the value is a concrete date.
func (c *rowCheck) date(f Field) {
	cell, label := c.cell(f)
	if !IsValidDateShape(cell) {
		c.add(formatMessage(c.number, label, strings.TrimSpace(cell.String()), reasonDateShape))
		return
	}
	if t, ok := ParseDateCell(cell); ok && !IsWithinDateRange(t) {
		c.add(formatMessage(c.number, label, strings.TrimSpace(cell.String()), dateRangeReason()))
	}
}

// ascii checks an optional field that must stay half-width.
func (c *rowCheck) ascii(f Field) {
	v, label := c.raw(f)
	c.shape(v, label, IsASCIIOnly, reasonASCII)
}

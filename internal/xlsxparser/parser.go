// =============================================================================
// Asset Import - XLSX Import Source
// =============================================================================
//
// This module reads an import workbook and hands the importer a types.Sheet:
// the header labels plus typed data cells.
//
// SHEET LAYOUT:
//   The office template carries an input hint row under the header, the
//   device templates do not:
//
//   | Row | Office template            | Device templates         |
//   |-----|----------------------------|--------------------------|
//   |  1  | header labels              | header labels            |
//   |  2  | input hints (skipped)      | first data row           |
//   |  3  | first data row             | ...                      |
//
//   HeaderRow and DataStartRow are zero-based and come from the template
//   configuration.
//
// CELL TYPING:
//   Cells are read with their raw stored value and typed as follows:
//     - shared/inline string, formula string  -> Text
//     - numeric value with a date number format -> Date
//     - other numeric value                     -> Number
//     - blank                                   -> Empty
//   Typing matters because Excel drops leading zeros of numeric phone numbers
//   and stores dates as serial numbers.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/asset-import/internal/types"
)

// ErrSheetNotFound is returned when the configured sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls where the parser looks for the header and the data.
type Options struct {
	// Sheet is the sheet to read. Empty means the first sheet.
	Sheet string

	// HeaderRow is the zero-based row holding the column labels.
	// Default: 0 (Row 1)
	HeaderRow int

	// DataStartRow is the zero-based row where data begins.
	// Default: 1 (Row 2)
	DataStartRow int
}

// DefaultOptions returns the layout of the device templates.
func DefaultOptions() Options {
	return Options{
		HeaderRow:    0, // Row 1
		DataStartRow: 1, // Row 2
	}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads an import workbook.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - opts: Sheet and row layout.
//
// RETURNS:
//   - The sheet with header labels and typed data rows. Blank rows inside the
//     data are kept so that row numbers stay aligned with the workbook.
//   - An error if the file cannot be opened or the sheet is missing.
func Parse(path string, opts Options) (*types.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := ParseFile(f, opts)
	if err != nil {
		return nil, err
	}
	sheet.SourceFile = path
	return sheet, nil
}

// ParseFile reads an already opened workbook.
func ParseFile(f *excelize.File, opts Options) (*types.Sheet, error) {
	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	if opts.DataStartRow <= opts.HeaderRow {
		return nil, fmt.Errorf("data start row %d must come after header row %d", opts.DataStartRow, opts.HeaderRow)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	sheet := &types.Sheet{
		SheetName:    sheetName,
		DataStartRow: opts.DataStartRow,
	}

	if opts.HeaderRow < len(rows) {
		for _, label := range rows[opts.HeaderRow] {
			sheet.Headers = append(sheet.Headers, strings.TrimSpace(label))
		}
	}

	r := &cellReader{file: f, sheet: sheetName, dateStyles: make(map[int]bool)}
	r.date1904 = r.uses1904()

	for i := opts.DataStartRow; i < len(rows); i++ {
		row := make(types.Row, len(rows[i]))
		for j, raw := range rows[i] {
			cell, err := r.read(j+1, i+1, raw)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell at row %d column %d: %w", i+1, j+1, err)
			}
			row[j] = cell
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// =============================================================================
// CELL TYPING
// =============================================================================

// cellReader types raw cell values. Style lookups are cached per style index.
type cellReader struct {
	file       *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (r *cellReader) uses1904() bool {
	props, err := r.file.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// read types one cell. col and row are 1-based.
func (r *cellReader) read(col, row int, raw string) (types.Cell, error) {
	if strings.TrimSpace(raw) == "" {
		return types.Empty(), nil
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return types.Empty(), err
	}

	cellType, err := r.file.GetCellType(r.sheet, ref)
	if err != nil {
		return types.Empty(), err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		return types.Text(raw), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return types.Date(t), nil
		}
		return types.Text(raw), nil
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return types.Text(raw), nil
	}

	isDate, err := r.isDateStyled(ref)
	if err != nil {
		return types.Empty(), err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(num, r.date1904)
		if err == nil {
			return types.Date(t), nil
		}
	}
	return types.Number(num), nil
}

func (r *cellReader) isDateStyled(ref string) (bool, error) {
	styleID, err := r.file.GetCellStyle(r.sheet, ref)
	if err != nil {
		return false, err
	}
	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate, nil
	}

	style, err := r.file.GetStyle(styleID)
	if err != nil {
		return false, err
	}

	isDate := isDateNumFmt(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	r.dateStyles[styleID] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a built-in number format renders a date.
// 14-17 and 22 are the international date formats, 27-36 and 50-58 the
// East Asian ones.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains a year,
// month or day token. Bracketed sections ([Red], [$-411], [DBNum1]), quoted
// literals and escaped characters are not tokens.
func isDateFormatCode(code string) bool {
	var (
		inBracket bool
		inQuote   bool
		skipNext  bool
	)
	for _, ch := range strings.ToLower(code) {
		switch {
		case skipNext:
			skipNext = false
		case inBracket:
			inBracket = ch != ']'
		case inQuote:
			inQuote = ch != '"'
		case ch == '[':
			inBracket = true
		case ch == '"':
			inQuote = true
		case ch == '\\', ch == '_', ch == '*':
			skipNext = true
		case strings.ContainsRune("ymd年月日", ch):
			return true
		}
	}
	return false
}

// =============================================================================
// Asset Import - CSV Import Source
// =============================================================================
//
// This module reads import data exported as CSV instead of .xlsx. Operators
// save these files from Excel, so two things have to be handled:
//   - Encoding: UTF-8 (with or without BOM) or Shift_JIS / CP932
//   - Delimiter: comma by default, tab or semicolon on request
//
// CSV carries no cell types, so every non-blank field becomes a Text cell and
// every blank field an Empty cell. The header and data rows follow the same
// zero-based layout as the xlsx source.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/asset-import/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// OPTIONS
// =============================================================================

// Options contains settings for parsing an import CSV.
type Options struct {
	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "\\t", "semicolon", "pipe".
	// Default: ","
	Delimiter string

	// Encoding of the file: "UTF-8" or "Shift_JIS" (aliases "SJIS", "CP932",
	// "Windows-31J").
	// Default: "UTF-8"
	Encoding string

	// HeaderRow is the zero-based row holding the column labels.
	HeaderRow int

	// DataStartRow is the zero-based row where data begins.
	DataStartRow int
}

// DefaultOptions returns UTF-8, comma separated, header on row 1, data from
// row 2.
func DefaultOptions() Options {
	return Options{Delimiter: ",", Encoding: "UTF-8", HeaderRow: 0, DataStartRow: 1}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV import file.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - opts: Encoding, delimiter and row layout.
//
// RETURNS:
//   - The sheet with header labels and text cells.
//   - An error if the file cannot be read or decoded.
func Parse(filePath string, opts Options) (*types.Sheet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	sheet, err := ParseReader(file, opts)
	if err != nil {
		return nil, err
	}
	sheet.SourceFile = filePath
	return sheet, nil
}

// ParseReader reads CSV data from r.
func ParseReader(r io.Reader, opts Options) (*types.Sheet, error) {
	if opts.DataStartRow <= opts.HeaderRow {
		return nil, fmt.Errorf("data start row %d must come after header row %d", opts.DataStartRow, opts.HeaderRow)
	}

	decoded, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, opts.Delimiter)

	allRows, err := readAll(csvReader)
	if err != nil {
		return nil, err
	}
	if len(allRows) <= opts.HeaderRow {
		return nil, fmt.Errorf("CSV file has no header row")
	}

	sheet := &types.Sheet{DataStartRow: opts.DataStartRow}
	for _, label := range allRows[opts.HeaderRow] {
		sheet.Headers = append(sheet.Headers, strings.TrimSpace(label))
	}

	for i := opts.DataStartRow; i < len(allRows); i++ {
		sheet.Rows = append(sheet.Rows, toRow(allRows[i]))
	}

	return sheet, nil
}

// decode wraps r with the decoder for encoding and drops a UTF-8 BOM.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(encoding), "-", "_")) {
	case "", "UTF_8", "UTF8":
		br := bufio.NewReader(r)
		if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
		}
		return br, nil
	case "SHIFT_JIS", "SJIS", "CP932", "WINDOWS_31J", "MS932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}

// configureReader sets the delimiter and relaxes the reader: rows may be
// ragged (the importer reports that) and stray quotes are tolerated.
func configureReader(reader *csv.Reader, delimiter string) {
	switch delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if r := []rune(delimiter); len(r) > 0 {
			reader.Comma = r[0]
		} else {
			reader.Comma = ','
		}
	}

	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}

// readAll reads every record. encoding/csv drops empty lines, which would
// shift every later row number, so each skipped line is put back as an empty
// record.
func readAll(reader *csv.Reader) ([][]string, error) {
	var (
		rows     [][]string
		nextLine = 1
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)
		for ; nextLine < line; nextLine++ {
			rows = append(rows, nil)
		}

		rows = append(rows, record)
		nextLine = line + 1
		for _, field := range record {
			nextLine += strings.Count(field, "\n")
		}
	}
}

func toRow(record []string) types.Row {
	row := make(types.Row, len(record))
	for i, v := range record {
		if strings.TrimSpace(v) == "" {
			row[i] = types.Empty()
			continue
		}
		row[i] = types.Text(v)
	}
	return row
}

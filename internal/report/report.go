// =============================================================================
// Asset Import - Report Writer Module
// =============================================================================
//
// This module writes the per-batch report handed back to the operator, and the
// blank import workbooks operators fill in.
//
// REPORT LAYOUT (xlsx):
//
//   エラー一覧                 取込データ
//   +------+--------------+    +-------------+-------------+-----+
//   | 行   | エラー内容    |    | office_code | office_name | ... |
//   +------+--------------+    +-------------+-------------+-----+
//   | 4    | 4行目: ...    |    | 001         | 本社         | ... |
//   +------+--------------+    +-------------+-------------+-----+
//
//   One line per message: a row with three problems gets three lines.
//   取込データ lists the normalized records that were committed. It only has
//   a header line when the batch was not committed.
//
// REPORT LAYOUT (csv):
//   <name>.csv       the error list
//   <name>_data.csv  the committed records
//   Both are UTF-8 with a BOM so that Excel opens them without mojibake.
//
// =============================================================================

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/asset-import/internal/importer"
)

// Sheet names used in the xlsx report.
const (
	ErrorSheet = "エラー一覧"
	DataSheet  = "取込データ"
)

// Report formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var errorHeader = []string{"行", "エラー内容"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Write writes the report for result in the given format. path is the report
// path without extension. It returns the files written.
func Write(path, format string, result *importer.Result) ([]string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(path+".csv", result)
	case FormatXLSX, "":
		file := path + ".xlsx"
		return []string{file}, WriteXLSX(file, result)
	default:
		return nil, fmt.Errorf("unsupported report format: %q", format)
	}
}

// =============================================================================
// XLSX
// =============================================================================

// WriteXLSX writes the two-sheet workbook report.
func WriteXLSX(path string, result *importer.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it instead of leaving it empty.
	if err := f.SetSheetName(f.GetSheetName(0), ErrorSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", ErrorSheet, err)
	}
	if _, err := f.NewSheet(DataSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", DataSheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, ErrorSheet, errorHeader, errorLines(result), headerStyle); err != nil {
		return err
	}
	if err := writeSheet(f, DataSheet, importer.Columns(result.Entity), dataLines(result), headerStyle); err != nil {
		return err
	}
	f.SetColWidth(ErrorSheet, "B", "B", 80)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, lines [][]string, headerStyle int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}
	for i, line := range lines {
		if err := setRow(f, sheet, i+2, line); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes the non-empty values of one line. Empty values leave the
// cell blank.
func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
		}
	}
	return nil
}

// =============================================================================
// CSV
// =============================================================================

// WriteCSV writes the error list to path and the records next to it with a
// "_data" suffix.
func WriteCSV(path string, result *importer.Result) ([]string, error) {
	dataPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_data.csv"

	if err := writeCSVFile(path, errorHeader, errorLines(result)); err != nil {
		return nil, err
	}
	if err := writeCSVFile(dataPath, importer.Columns(result.Entity), dataLines(result)); err != nil {
		return []string{path}, err
	}
	return []string{path, dataPath}, nil
}

func writeCSVFile(path string, header []string, lines [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := w.WriteAll(lines); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return file.Close()
}

// =============================================================================
// LINES
// =============================================================================

func errorLines(result *importer.Result) [][]string {
	var lines [][]string
	for _, e := range result.Errors {
		for _, msg := range e.Messages {
			lines = append(lines, []string{fmt.Sprint(e.Row), msg})
		}
	}
	return lines
}

func dataLines(result *importer.Result) [][]string {
	lines := make([][]string, 0, len(result.Records))
	for _, r := range result.Records {
		lines = append(lines, r.Values())
	}
	return lines
}

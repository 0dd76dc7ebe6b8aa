package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/asset-import/internal/types"
)

// writeWorkbook builds a phone-style workbook: header on row 1, data below,
// one blank row in the middle, a date-formatted serial and a numeric phone.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"管理番号(必須)", "電話番号(必須)", "貸与日", "備考"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"M001", 9012345678, 45000, "memo"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"M002", "090-1111-2222", "2024/04/01"}))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", dateStyle))

	path := filepath.Join(t.TempDir(), "phones.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse(t *testing.T) {
	path := writeWorkbook(t)

	sheet, err := Parse(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, path, sheet.SourceFile)
	assert.Equal(t, "Sheet1", sheet.SheetName)
	assert.Equal(t, []string{"管理番号(必須)", "電話番号(必須)", "貸与日", "備考"}, sheet.Headers)
	assert.Equal(t, 1, sheet.DataStartRow)
	require.Len(t, sheet.Rows, 3)

	first := sheet.Rows[0]
	assert.Equal(t, types.CellText, first[0].Kind)
	assert.Equal(t, "M001", first[0].Text)

	assert.Equal(t, types.CellNumber, first[1].Kind)
	assert.Equal(t, "9012345678", first[1].String())

	assert.Equal(t, types.CellDate, first[2].Kind)
	assert.Equal(t, "2023-03-15", first[2].String())

	assert.True(t, sheet.Rows[1].IsBlank())

	third := sheet.Rows[2]
	assert.Equal(t, types.CellText, third[1].Kind)
	assert.Equal(t, "090-1111-2222", third[1].Text)
	assert.Equal(t, types.CellText, third[2].Kind)
}

func TestParseOfficeLayoutSkipsHintRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"事業所コード(必須)", "事業所名(必須)"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"半角数字とハイフン", "必須"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"001", "本社"}))
	path := filepath.Join(t.TempDir(), "offices.xlsx")
	require.NoError(t, f.SaveAs(path))

	sheet, err := Parse(path, Options{HeaderRow: 0, DataStartRow: 2})
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "001", sheet.Rows[0][0].String())
	assert.Equal(t, 2, sheet.DataStartRow)
}

func TestParseMissingSheet(t *testing.T) {
	path := writeWorkbook(t)

	_, err := Parse(path, Options{Sheet: "Nope", DataStartRow: 1})
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.Error(t, err)
}

func TestIsDateFormatCode(t *testing.T) {
	assert.True(t, isDateFormatCode("yyyy/m/d"))
	assert.True(t, isDateFormatCode("[$-411]ge.m.d"))
	assert.True(t, isDateFormatCode("m月d日"))
	assert.False(t, isDateFormatCode("#,##0"))
	assert.False(t, isDateFormatCode("0.00"))
	assert.False(t, isDateFormatCode("#,##0;[Red]-#,##0"))
	assert.False(t, isDateFormatCode("[DBNum1]General"))
	assert.False(t, isDateFormatCode(`0"days"`))
	assert.False(t, isDateFormatCode(`0\d`))
}

func TestParseRedNegativeNumberStaysNumeric(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"月額料金"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 3000))

	code := "#,##0;[Red]-#,##0"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &code})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", style))

	sheet, err := ParseFile(f, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, types.CellNumber, sheet.Rows[0][0].Kind)
	assert.Equal(t, "3000", sheet.Rows[0][0].String())
}

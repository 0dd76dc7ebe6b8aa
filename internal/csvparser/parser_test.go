package csvparser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/asset-import/internal/types"
)

func TestParseReaderUTF8WithBOM(t *testing.T) {
	data := "\xEF\xBB\xBF端末コード(必須),型番,状態\nT001,iPad,使用中\n,,\nT002,,予備\n"

	sheet, err := ParseReader(strings.NewReader(data), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"端末コード(必須)", "型番", "状態"}, sheet.Headers)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "T001", sheet.Rows[0][0].Text)
	assert.True(t, sheet.Rows[1].IsBlank())
	assert.Equal(t, types.CellEmpty, sheet.Rows[2][1].Kind)
}

func TestParseReaderKeepsEmptyLines(t *testing.T) {
	data := "端末コード(必須),備考\nT001,\"two\nlines\"\n\nT002,x\n"

	sheet, err := ParseReader(strings.NewReader(data), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "two\nlines", sheet.Rows[0][1].Text)
	assert.True(t, sheet.Rows[1].IsBlank())
	assert.Equal(t, "T002", sheet.Rows[2][0].Text)
}

func TestParseReaderShiftJIS(t *testing.T) {
	utf8 := "管理番号(必須),電話番号(必須)\nM001,090-1234-5678\n"
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
	_, err := w.Write([]byte(utf8))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	opts := DefaultOptions()
	opts.Encoding = "Shift_JIS"
	sheet, err := ParseReader(&buf, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"管理番号(必須)", "電話番号(必須)"}, sheet.Headers)
	assert.Equal(t, "090-1234-5678", sheet.Rows[0][1].Text)
}

func TestParseReaderTabAndHintRow(t *testing.T) {
	data := "事業所コード(必須)\t事業所名(必須)\n半角数字\t必須\n001\t本社\n"

	sheet, err := ParseReader(strings.NewReader(data), Options{Delimiter: "tab", HeaderRow: 0, DataStartRow: 2})
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "本社", sheet.Rows[0][1].Text)
	assert.Equal(t, 2, sheet.DataStartRow)
}

func TestParseReaderKeepsRaggedRows(t *testing.T) {
	data := "a,b\n1,2,3\n"

	sheet, err := ParseReader(strings.NewReader(data), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, sheet.Rows[0], 3)
}

func TestParseReaderErrors(t *testing.T) {
	_, err := ParseReader(strings.NewReader("a\n"), Options{Encoding: "EBCDIC", DataStartRow: 1})
	assert.ErrorContains(t, err, "unsupported encoding")

	_, err = ParseReader(strings.NewReader(""), DefaultOptions())
	assert.ErrorContains(t, err, "no header row")

	_, err = ParseReader(strings.NewReader("a\n"), Options{HeaderRow: 1, DataStartRow: 1})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablets.csv")
	require.NoError(t, os.WriteFile(path, []byte("端末コード(必須)\nT001\n"), 0o644))

	sheet, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, path, sheet.SourceFile)
	assert.Len(t, sheet.Rows, 1)
}

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/report"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	doc := "input_dir: " + filepath.Join(dir, "input") + "\n" +
		"output_dir: " + filepath.Join(dir, "output") + "\n" +
		"input_archive_dir: " + filepath.Join(dir, "archive") + "\n" +
		"configs_dir: " + filepath.Join(dir, "configs") + "\n" +
		"output_name_format: \"{entity}_{original}\"\n" +
		"report_format: csv\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func writePhoneWorkbook(t *testing.T, path string, rows ...[]interface{}) {
	t.Helper()
	require.NoError(t, report.WriteTemplate(path, config.EntityPhone))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("携帯電話", cell, &row))
	}
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "input"), 0o755))

	writePhoneWorkbook(t, filepath.Join(dir, "input", "phones.xlsx"),
		[]interface{}{"M001", "090-1234-5678", "docomo"},
		[]interface{}{"M002", "090-1234-5678", "au"},
	)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgPath, "process"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "phones.xlsx: accepted 1, rejected 1")

	raw, err := os.ReadFile(filepath.Join(dir, "output", "phone_phones.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "3,3行目: 電話番号「090-1234-5678」がファイル内で重複しています")
	assert.Contains(t, string(raw), "3,3行目: キャリア「au」は「KDDI/SoftBank/docomo/楽天モバイル/その他」のいずれかを入力してください")

	// skip_invalid commits the accepted row, so the input is archived.
	assert.FileExists(t, filepath.Join(dir, "archive", "phones.xlsx"))
	assert.NoFileExists(t, filepath.Join(dir, "input", "phones.xlsx"))
}

func TestSelectTemplate(t *testing.T) {
	templates := config.DefaultTemplates()

	tmpl, err := selectTemplate(templates, "/in/phone_list.xlsx", "")
	require.NoError(t, err)
	assert.Equal(t, config.EntityPhone, tmpl.Entity)

	_, err = selectTemplate(templates, "/in/phone_list.xlsx", config.EntityTablet)
	assert.ErrorIs(t, err, errSkipFile)

	tmpl, err = selectTemplate(templates, "/in/devices.csv", config.EntityTablet)
	require.NoError(t, err)
	assert.Equal(t, config.EntityTablet, tmpl.Entity)

	_, err = selectTemplate(templates, "/in/devices.csv", "")
	assert.ErrorIs(t, err, errNoTemplate)
}

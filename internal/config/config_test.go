package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMainConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadMainConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "xlsx", cfg.ReportFormat)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, "file", cfg.Lookup.Driver)
	assert.DirExists(t, filepath.Join(dir, "input"))
	assert.DirExists(t, filepath.Join(dir, "input_archive"))
}

func TestLoadMainConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `
input_dir: ` + filepath.Join(dir, "in") + `
output_dir: ` + filepath.Join(dir, "out") + `
input_archive_dir: ` + filepath.Join(dir, "archive") + `
configs_dir: ` + filepath.Join(dir, "configs") + `
report_format: csv
log_format: json
max_concurrency: 2
lookup:
  driver: postgres
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.ReportFormat)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, "DATABASE_URL", cfg.Lookup.URLEnv)
	assert.DirExists(t, filepath.Join(dir, "out"))
}

func TestLoadMainConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("report_format: pdf\n"), 0o644))
	_, err := LoadMainConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("input_dir: [\n"), 0o644))
	_, err = LoadMainConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadTemplateConfigs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_office.yaml"), []byte(`
name: 事業所
entity: office
file_matching_patterns: ["事業所*.xlsx"]
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_phone.yml"), []byte(`
entity: phone
file_matching_patterns: ["*.csv"]
csv_settings:
  encoding: Shift_JIS
`), 0o644))

	templates, err := LoadTemplateConfigs(dir)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	office := templates[0]
	assert.Equal(t, "事業所", office.Name)
	assert.Equal(t, 2, office.DataStartRow)
	assert.Equal(t, CommitAllOrNothing, office.CommitMode)

	phone := templates[1]
	assert.Equal(t, "b_phone.yml", phone.Name)
	assert.Equal(t, 1, phone.DataStartRow)
	assert.Equal(t, CommitSkipInvalid, phone.CommitMode)
	assert.Equal(t, "Shift_JIS", phone.CSVSettings.Encoding)
	assert.Equal(t, ",", phone.CSVSettings.Delimiter)

	found, ok := FindTemplate(templates, "/in/事業所一覧.xlsx")
	require.True(t, ok)
	assert.Equal(t, EntityOffice, found.Entity)

	_, ok = FindTemplate(templates, "routers.xlsx")
	assert.False(t, ok)
}

func TestLoadTemplateConfigsRejectsBadTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("entity: laptop\n"), 0o644))

	_, err := LoadTemplateConfigs(dir)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadTemplateConfigsFallsBackToDefaults(t *testing.T) {
	templates, err := LoadTemplateConfigs(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, templates, len(Entities))

	router, ok := FindTemplate(templates, "router_2024.xlsx")
	require.True(t, ok)
	assert.Equal(t, EntityRouter, router.Entity)
}

func TestDefaultTemplate(t *testing.T) {
	office, err := DefaultTemplate(EntityOffice)
	require.NoError(t, err)
	assert.Equal(t, 2, office.DataStartRow)

	_, err = DefaultTemplate("laptop")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateTemplateLayout(t *testing.T) {
	cfg := &TemplateConfig{Name: "x", Entity: EntityTablet, HeaderRow: 3, DataStartRow: 2, CommitMode: CommitSkipInvalid}
	assert.ErrorIs(t, ValidateTemplate(cfg), ErrInvalidConfig)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ASSET_IMPORT_TEST_URL=postgres://x\n"), 0o644))
	t.Setenv("ASSET_IMPORT_TEST_URL", "")
	os.Unsetenv("ASSET_IMPORT_TEST_URL")

	LoadEnv(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "postgres://x", LookupConfig{URLEnv: "ASSET_IMPORT_TEST_URL"}.URL())
}

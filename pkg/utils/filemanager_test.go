package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *FileManager {
	t.Helper()
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "input"), filepath.Join(dir, "output"), filepath.Join(dir, "archive"))
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newManager(t)
	for _, name := range []string{"b_phones.xlsx", "a_offices.CSV", "~$b_phones.xlsx", "notes.txt"} {
		touch(t, filepath.Join(fm.InputDir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "dir.xlsx"), 0o755))

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(fm.InputDir, "a_offices.CSV"),
		filepath.Join(fm.InputDir, "b_phones.xlsx"),
	}, files)
}

func TestArchiveInputFile(t *testing.T) {
	fm := newManager(t)
	src := filepath.Join(fm.InputDir, "phones.xlsx")
	touch(t, src)

	archived, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "phones.xlsx"), archived)
	assert.False(t, FileExists(src))
	assert.True(t, FileExists(archived))

	// A second file of the same name keeps the first archive intact.
	touch(t, src)
	second, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.NotEqual(t, archived, second)
	assert.True(t, strings.HasPrefix(filepath.Base(second), "phones_"))
	assert.True(t, FileExists(archived))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{entity}_{original}_{date}", map[string]string{
		"entity":   "phone",
		"original": "携帯一覧",
	})
	assert.Equal(t, "phone_携帯一覧_"+time.Now().Format("20060102"), name)

	withID := GenerateOutputFileName("{uuid}", nil)
	assert.Len(t, withID, 36)
}

func TestWriteSummaryLog(t *testing.T) {
	fm := newManager(t)

	summary := ProcessingSummary{StartTime: time.Now(), TotalFiles: 2, DryRun: true}
	summary.Add(ProcessedFileInfo{InputFile: "phones.xlsx", Entity: "phone", Rows: 3, Accepted: 2, Rejected: 1, Committed: true})
	summary.Fail("offices.xlsx", errors.New("missing required columns: 住所(必須)"))
	summary.EndTime = time.Now()

	assert.Equal(t, 1, summary.CommittedFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 2, summary.AcceptedRows)

	path, err := WriteSummaryLog(summary, fm.OutputDir)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "Mode:           dry run")
	assert.Contains(t, text, "Rows:         3 (accepted 2, rejected 1)")
	assert.Contains(t, text, "Error: missing required columns: 住所(必須)")
}

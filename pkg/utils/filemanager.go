// =============================================================================
// Asset Import - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the importer:
//   - Import file discovery (.xlsx and .csv)
//   - Input file archival after a committed batch
//   - Report file naming
//   - Processing summary log
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to input_archive once their batch is committed
//   - Files whose batch was not committed stay in the input directory so the
//     operator can fix and resubmit them
//   - Nothing is archived on a dry run
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// importExtensions are the file types the importer can read.
var importExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the importer.
type FileManager struct {
	// InputDir is the directory where import files are placed.
	InputDir string

	// OutputDir is the directory where reports are written.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2024/01/15/phones.xlsx
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the .xlsx and .csv files in the input directory,
// sorted by name. Excel lock files ("~$name.xlsx") are skipped.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if importExtensions[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(fm.InputDir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory. An archived
// file of the same name is never overwritten; the new one gets a timestamp
// suffix.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	archivePath := fm.getArchivePath(filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if FileExists(archivePath) {
		ext := filepath.Ext(archivePath)
		archivePath = fmt.Sprintf("%s_%s%s",
			strings.TrimSuffix(archivePath, ext), time.Now().Format("20060102_150405"), ext)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

func (fm *FileManager) getArchivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			fm.InputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.InputArchiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands a report name format. The caller adds the
// extension that matches the report format.
//
// Placeholders:
//
//	{uuid}      - A random UUID
//	{timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - Current date (YYYYMMDD)
//	{time}      - Current time (HHMMSS)
//	{entity}    - office, phone, router or tablet
//	{original}  - Input file name without extension
//
// EXAMPLE:
//
//	format: "{entity}_{original}_{timestamp}"
//	params: {"entity": "phone", "original": "携帯一覧"}
//	output: "phone_携帯一覧_20240115_143022"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	StartTime time.Time
	EndTime   time.Time
	DryRun    bool

	TotalFiles     int
	CommittedFiles int

	// RejectedFiles were read but not committed (all_or_nothing with errors).
	RejectedFiles int

	// FailedFiles could not be imported at all.
	FailedFiles int

	TotalRows    int
	AcceptedRows int
	RejectedRows int

	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo describes a file whose rows were validated.
type ProcessedFileInfo struct {
	InputFile   string
	Entity      string
	BatchID     string
	Reports     []string
	ArchivePath string
	Committed   bool
	Rows        int
	Accepted    int
	Rejected    int
	ProcessTime time.Duration
}

// FailedFileInfo describes a file that could not be imported.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// Add records one processed file.
func (s *ProcessingSummary) Add(info ProcessedFileInfo) {
	s.ProcessedFiles = append(s.ProcessedFiles, info)
	if info.Committed {
		s.CommittedFiles++
	} else {
		s.RejectedFiles++
	}
	s.TotalRows += info.Rows
	s.AcceptedRows += info.Accepted
	s.RejectedRows += info.Rejected
}

// Fail records one file that could not be imported.
func (s *ProcessingSummary) Fail(file string, err error) {
	s.FailedFiles++
	s.FailedFilesList = append(s.FailedFilesList, FailedFileInfo{InputFile: file, ErrorMessage: err.Error()})
}

// WriteSummaryLog writes a processing summary to outputDir and returns its
// path.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	mode := "import"
	if summary.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(writer, "Asset Import - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Mode:           %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:     %d\n"+
		"  Committed:       %d\n"+
		"  Not Committed:   %d\n"+
		"  Failed:          %d\n"+
		"  Total Rows:      %d\n"+
		"  Accepted Rows:   %d\n"+
		"  Rejected Rows:   %d\n\n",
		mode,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		summary.TotalFiles,
		summary.CommittedFiles,
		summary.RejectedFiles,
		summary.FailedFiles,
		summary.TotalRows,
		summary.AcceptedRows,
		summary.RejectedRows)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Processed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(writer, "  Entity:       %s\n", pf.Entity)
			fmt.Fprintf(writer, "  Batch:        %s\n", pf.BatchID)
			fmt.Fprintf(writer, "  Committed:    %t\n", pf.Committed)
			fmt.Fprintf(writer, "  Rows:         %d (accepted %d, rejected %d)\n", pf.Rows, pf.Accepted, pf.Rejected)
			for _, r := range pf.Reports {
				fmt.Fprintf(writer, "  Report:       %s\n", r)
			}
			if pf.ArchivePath != "" {
				fmt.Fprintf(writer, "  Archived:     %s\n", pf.ArchivePath)
			}
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// Asset Import - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command of the importer.
//
// COMMAND USAGE:
//   asset-import process [flags]
//
// FLAGS:
//   --dry-run : Validate and report, but never archive input files
//   --single  : Process only a single file (specify with --file)
//   --file    : Path to a specific file to process (used with --single)
//   --entity  : Process only files of one entity (office|phone|router|tablet)
//
// PROCESSING PIPELINE:
//   1. Load template configurations
//   2. Load the lookup snapshot (persisted keys and reference sets)
//   3. Discover import files in the input directory
//   4. For each file (concurrently, at most max_concurrency at a time):
//      a. Match the file to a template
//      b. Read the sheet (xlsx or csv)
//      c. Validate every row as one batch
//      d. Write the report
//      e. Archive the input file if the batch was committed
//   5. Print and write the processing summary
//
//   Rows inside a file are always validated in order; only whole files run
//   in parallel. The lookup snapshot is shared and read-only.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/importer"
	"github.com/ginjaninja78/asset-import/internal/logging"
	"github.com/ginjaninja78/asset-import/internal/lookup"
	"github.com/ginjaninja78/asset-import/internal/report"
	"github.com/ginjaninja78/asset-import/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dryRun     bool
	singleFile bool
	filePath   string
	entityName string
)

// errNoTemplate is recorded for files no template matches.
var errNoTemplate = errors.New("no matching template configuration found")

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Validate import files and write error reports",
	Long: `The process command scans the input directory for .xlsx and .csv import
files, matches each one to a template configuration and validates every row.

For every file a report is written to the output directory listing each
problem with its spreadsheet row number, together with the normalized rows
that were accepted.

Commit modes:
  all_or_nothing (office default) : one bad row rejects the whole file
  skip_invalid   (device default) : bad rows are skipped and reported

A committed file is moved to the input archive. A file that was not committed
stays in the input directory so it can be fixed and resubmitted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without archiving input files")
	processCmd.Flags().BoolVar(&singleFile, "single", false, "Process only a single file (use with --file)")
	processCmd.Flags().StringVar(&filePath, "file", "", "Path to a specific file to process (used with --single)")
	processCmd.Flags().StringVar(&entityName, "entity", "", "Process only files of one entity (office, phone, router, tablet)")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	log := logging.FromContext(ctx)

	summary := utils.ProcessingSummary{StartTime: time.Now(), DryRun: dryRun}

	// =========================================================================
	// STEP 1: LOAD TEMPLATES
	// =========================================================================

	templates, err := config.LoadTemplateConfigs(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load template configs: %w", err)
	}

	entity := config.Entity(entityName)
	if entity != "" && !entity.Valid() {
		return fmt.Errorf("%w: unknown entity %q", config.ErrInvalidConfig, entityName)
	}

	log.Info("templates loaded", "count", len(templates))

	// =========================================================================
	// STEP 2: LOAD LOOKUP SNAPSHOT
	// =========================================================================

	snapshot, err := loadSnapshot(ctx, mainConfig.Lookup)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: DISCOVER INPUT FILES
	// =========================================================================

	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	var inputFiles []string
	if singleFile {
		if filePath == "" {
			return errors.New("--single requires --file")
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No import files found in the input directory.")
		return nil
	}

	fmt.Fprintf(out, "Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 4: PROCESS FILES CONCURRENTLY
	// =========================================================================

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mainConfig.MaxConcurrency)

	for _, file := range inputFiles {
		g.Go(func() error {
			tmpl, err := selectTemplate(templates, file, entity)
			if errors.Is(err, errSkipFile) {
				return nil
			}

			var info utils.ProcessedFileInfo
			if err == nil {
				info, err = processFile(gctx, fm, tmpl, snapshot, file)
			}

			mu.Lock()
			defer mu.Unlock()
			summary.TotalFiles++
			if err != nil {
				summary.Fail(file, err)
				fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(file), err)
				return nil
			}
			summary.Add(info)
			mark := "✓"
			if !info.Committed {
				mark = "!"
			}
			fmt.Fprintf(out, "  %s %s: accepted %d, rejected %d -> %s\n",
				mark, filepath.Base(file), info.Accepted, info.Rejected, strings.Join(info.Reports, ", "))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 5: SUMMARY
	// =========================================================================

	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Committed:       %d\n", summary.CommittedFiles)
	fmt.Fprintf(out, "Not committed:   %d\n", summary.RejectedFiles)
	fmt.Fprintf(out, "Failed:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	summaryPath, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
	if err != nil {
		return err
	}
	log.Info("summary written", "path", summaryPath)

	return ctx.Err()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// errSkipFile marks files filtered out by --entity.
var errSkipFile = errors.New("file skipped")

// selectTemplate finds the template for file. With --entity, files of other
// entities are skipped, and a file no pattern matches falls back to the
// built-in template of that entity.
func selectTemplate(templates []*config.TemplateConfig, file string, entity config.Entity) (*config.TemplateConfig, error) {
	tmpl, ok := config.FindTemplate(templates, file)
	switch {
	case ok && (entity == "" || tmpl.Entity == entity):
		return tmpl, nil
	case ok:
		return nil, errSkipFile
	case entity != "":
		return config.DefaultTemplate(entity)
	default:
		return nil, errNoTemplate
	}
}

// loadSnapshot opens the configured lookup source and loads it once.
func loadSnapshot(ctx context.Context, cfg config.LookupConfig) (*lookup.Snapshot, error) {
	src, closeSource, err := lookup.Open(lookup.Options{
		Driver:    cfg.Driver,
		File:      cfg.File,
		URL:       cfg.URL(),
		KeyPrefix: cfg.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup source: %w", err)
	}
	defer closeSource()

	snapshot, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lookup snapshot: %w", err)
	}
	return snapshot, nil
}

// processFile runs one file through read, validate, report and archive.
func processFile(ctx context.Context, fm *utils.FileManager, tmpl *config.TemplateConfig, snapshot *lookup.Snapshot, file string) (utils.ProcessedFileInfo, error) {
	info := utils.ProcessedFileInfo{InputFile: file, Entity: string(tmpl.Entity)}

	sheet, err := importer.ReadSheet(file, tmpl)
	if err != nil {
		return info, err
	}

	result, err := importer.New(tmpl, snapshot).Run(ctx, sheet)
	if err != nil {
		return info, err
	}

	info.BatchID = result.BatchID
	info.Committed = result.Committed
	info.Rows = result.Stats.RowsRead
	info.Accepted = result.Stats.Accepted
	info.Rejected = result.Stats.Rejected
	info.ProcessTime = result.Stats.ProcessingTime

	original := filepath.Base(file)
	name := utils.GenerateOutputFileName(mainConfig.OutputNameFormat, map[string]string{
		"entity":   string(tmpl.Entity),
		"original": strings.TrimSuffix(original, filepath.Ext(original)),
	})
	info.Reports, err = report.Write(filepath.Join(fm.OutputDir, name), mainConfig.ReportFormat, result)
	if err != nil {
		return info, fmt.Errorf("failed to write report: %w", err)
	}

	if result.Committed && !dryRun {
		info.ArchivePath, err = fm.ArchiveInputFile(file)
		if err != nil {
			return info, err
		}
	}

	return info, nil
}

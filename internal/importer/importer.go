// =============================================================================
// Asset Import - Import Orchestration
// =============================================================================
//
// This module drives one import batch: it walks the rows of a parsed sheet,
// calls the row validator for the template's entity, and decides what gets
// committed.
//
// IMPORT PIPELINE:
//   1. Index the header once and check that required columns exist
//   2. For each data row, in order:
//      a. stop if the context is cancelled
//      b. skip blank rows (their position still counts)
//      c. abort the batch on a ragged row (more cells than header labels)
//      d. validate the row
//      e. on success, add the row's keys to the processed sets and keep the
//         record; on failure, keep the messages
//   3. Apply the commit mode:
//      - all_or_nothing : any rejected row means no records at all
//      - skip_invalid   : accepted rows are kept, rejected rows are counted
//
// ORDERING:
//   Rows are validated strictly one after another. A key is only added to the
//   processed sets after its row passed, and before the next row is checked,
//   which is what makes in-file duplicate detection correct. Different files
//   may run concurrently; each batch owns its sets.
//
// =============================================================================

package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/logging"
	"github.com/ginjaninja78/asset-import/internal/lookup"
	"github.com/ginjaninja78/asset-import/internal/types"
	"github.com/ginjaninja78/asset-import/internal/validation"
)

var (
	// ErrMissingColumns is returned when a required column is absent.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrRaggedRow is returned when a row has more cells than the header.
	ErrRaggedRow = errors.New("row has more cells than header")
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// RowError holds the messages for one rejected row.
type RowError struct {
	// Row is the sheet row number shown to the operator.
	Row int

	// Messages are the validator messages, each already prefixed "N行目: ".
	Messages []string
}

// Result represents the outcome of one import batch.
type Result struct {
	BatchID    string
	Entity     config.Entity
	Template   string
	SourceFile string
	CommitMode config.CommitMode

	// Committed is true when the records may be handed to persistence.
	Committed bool

	// Stats contains processing statistics.
	Stats Stats

	// Errors lists every rejected row in sheet order.
	Errors []RowError

	// Records holds the accepted rows. Empty when the batch was not
	// committed.
	Records []Record
}

// Stats contains statistics about one batch.
type Stats struct {
	// RowsRead counts data rows, blank ones included.
	RowsRead int

	Accepted int
	Rejected int
	Blank    int

	ProcessingTime time.Duration
}

// Messages returns every error message of the batch in row order.
func (r *Result) Messages() []string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.Messages...)
	}
	return out
}

// =============================================================================
// IMPORTER STRUCTURE
// =============================================================================

// Importer runs import batches for one template.
type Importer struct {
	template *config.TemplateConfig
	snapshot *lookup.Snapshot
}

// New creates an Importer. A nil snapshot means nothing is persisted yet and
// no reference checks run.
func New(template *config.TemplateConfig, snapshot *lookup.Snapshot) *Importer {
	if snapshot == nil {
		snapshot = &lookup.Snapshot{}
	}
	return &Importer{template: template, snapshot: snapshot}
}

// Run validates every row of sheet as one batch.
//
// RETURNS:
//   - The batch result. On a structural error the rows validated so far are
//     still reported and the batch is not committed.
//   - An error for structural problems: missing columns, a ragged row, or a
//     cancelled context.
func (im *Importer) Run(ctx context.Context, sheet *types.Sheet) (*Result, error) {
	start := time.Now()

	result := &Result{
		BatchID:    uuid.NewString(),
		Entity:     im.template.Entity,
		Template:   im.template.Name,
		SourceFile: sheet.SourceFile,
		CommitMode: im.template.CommitMode,
	}

	ctx = logging.WithBatchID(ctx, result.BatchID)
	log := logging.WithFields(ctx, "entity", result.Entity, "file", sheet.SourceFile)
	log.Info("import started", "rows", len(sheet.Rows), "commit_mode", result.CommitMode)

	handler, err := newBatch(im.template.Entity, im.snapshot)
	if err != nil {
		return result, err
	}

	header := validation.NewHeader(sheet.Headers, sheet.DataStartRow)
	if missing := header.Missing(handler.fields()); len(missing) > 0 {
		return result, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for i, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("import cancelled at row %d: %w", header.RowNumber(i), err)
		}

		result.Stats.RowsRead++

		if row.IsBlank() {
			result.Stats.Blank++
			continue
		}

		if len(row) > header.Len() {
			return result, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrRaggedRow, header.RowNumber(i), len(row), header.Len())
		}

		messages, record := handler.handle(row, header, i)
		if len(messages) > 0 {
			result.Stats.Rejected++
			result.Errors = append(result.Errors, RowError{Row: header.RowNumber(i), Messages: messages})
			log.Debug("row rejected", "row", header.RowNumber(i), "errors", len(messages))
			continue
		}

		result.Stats.Accepted++
		result.Records = append(result.Records, record)
	}

	switch result.CommitMode {
	case config.CommitAllOrNothing:
		result.Committed = result.Stats.Rejected == 0
	default:
		result.Committed = true
	}
	if !result.Committed {
		result.Records = nil
	}

	result.Stats.ProcessingTime = time.Since(start)
	log.Info("import finished",
		"accepted", result.Stats.Accepted,
		"rejected", result.Stats.Rejected,
		"blank", result.Stats.Blank,
		"committed", result.Committed,
	)

	return result, nil
}

package importer

import (
	"fmt"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/lookup"
	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
	"github.com/ginjaninja78/asset-import/internal/validation"
)

// batch validates the rows of one entity and owns the processed sets.
type batch interface {
	fields() []validation.Field

	// handle validates one row. On success it records the row's keys as
	// processed and returns the record; otherwise it returns the messages.
	handle(row types.Row, header *validation.Header, index int) ([]string, Record)
}

func newBatch(entity config.Entity, snap *lookup.Snapshot) (batch, error) {
	refs := validation.ReferenceSets{
		EmployeeCodes: snap.EmployeeCodes,
		OfficeCodes:   snap.OfficeCodes,
	}

	switch entity {
	case config.EntityOffice:
		sets := validation.OfficeSets{
			ExistingCodes:  snap.OfficeCodes,
			ProcessedCodes: validation.NewKeySet(),
		}
		if snap.OfficeNames != nil {
			sets.ExistingNames = snap.OfficeNames
			sets.ProcessedNames = validation.NewKeySet()
		}
		return &officeBatch{sets: sets}, nil

	case config.EntityPhone:
		return &phoneBatch{sets: validation.PhoneSets{
			ExistingPhoneNumbers:       snap.PhoneNumbers,
			ProcessedPhoneNumbers:      validation.NewKeySet(),
			ExistingManagementNumbers:  snap.ManagementNumbers,
			ProcessedManagementNumbers: validation.NewKeySet(),
			ReferenceSets:              refs,
		}}, nil

	case config.EntityRouter:
		return &routerBatch{sets: validation.RouterSets{
			ExistingTerminalCodes:  snap.RouterTerminalCodes,
			ProcessedTerminalCodes: validation.NewKeySet(),
			ExistingSIMNumbers:     snap.SIMNumbers,
			ProcessedSIMNumbers:    validation.NewKeySet(),
			ReferenceSets:          refs,
		}}, nil

	case config.EntityTablet:
		return &tabletBatch{sets: validation.TabletSets{
			ExistingTerminalCodes:  snap.TabletTerminalCodes,
			ProcessedTerminalCodes: validation.NewKeySet(),
			ReferenceSets:          refs,
		}}, nil

	default:
		return nil, fmt.Errorf("unsupported entity: %q", entity)
	}
}

// =============================================================================
// OFFICE
// =============================================================================

type officeBatch struct {
	sets validation.OfficeSets
}

func (b *officeBatch) fields() []validation.Field { return validation.OfficeFields }

func (b *officeBatch) handle(row types.Row, header *validation.Header, index int) ([]string, Record) {
	out := validation.ValidateOfficeRow(row, header, index, b.sets)
	if !out.Valid() {
		return out.Errors, nil
	}

	b.sets.ProcessedCodes.Add(out.Record.OfficeCode)
	if b.sets.ProcessedNames != nil {
		b.sets.ProcessedNames.Add(out.Record.OfficeName)
	}
	return nil, out.Record
}

// =============================================================================
// DEVICES
// =============================================================================

type phoneBatch struct {
	sets validation.PhoneSets
}

func (b *phoneBatch) fields() []validation.Field { return validation.PhoneFields }

func (b *phoneBatch) handle(row types.Row, header *validation.Header, index int) ([]string, Record) {
	out := validation.ValidatePhoneRow(row, header, index, b.sets)
	if !out.IsValid {
		return out.Errors, nil
	}

	b.sets.ProcessedManagementNumbers.Add(out.ManagementNumber)
	b.sets.ProcessedPhoneNumbers.Add(normalize.NormalizePhoneDigits(out.NormalizedPhone))
	return nil, phoneRecord(rowReader{row, header}, out)
}

type routerBatch struct {
	sets validation.RouterSets
}

func (b *routerBatch) fields() []validation.Field { return validation.RouterFields }

func (b *routerBatch) handle(row types.Row, header *validation.Header, index int) ([]string, Record) {
	out := validation.ValidateRouterRow(row, header, index, b.sets)
	if !out.IsValid {
		return out.Errors, nil
	}

	b.sets.ProcessedTerminalCodes.Add(out.ManagementNumber)
	if out.NormalizedPhone != "" {
		b.sets.ProcessedSIMNumbers.Add(normalize.NormalizePhoneDigits(out.NormalizedPhone))
	}
	return nil, routerRecord(rowReader{row, header}, out)
}

type tabletBatch struct {
	sets validation.TabletSets
}

func (b *tabletBatch) fields() []validation.Field { return validation.TabletFields }

func (b *tabletBatch) handle(row types.Row, header *validation.Header, index int) ([]string, Record) {
	out := validation.ValidateTabletRow(row, header, index, b.sets)
	if !out.IsValid {
		return out.Errors, nil
	}

	b.sets.ProcessedTerminalCodes.Add(out.ManagementNumber)
	return nil, tabletRecord(rowReader{row, header}, out)
}

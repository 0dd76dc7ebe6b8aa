package validation

import "github.com/ginjaninja78/asset-import/internal/types"

// TabletFields lists the tablet template columns in sheet order.
var TabletFields = []Field{TerminalCode, ModelNumber, Status, EmployeeCode, OfficeCodeRef, Notes}

// TabletSets carries the uniqueness and reference sets for one tablet import.
type TabletSets struct {
	ExistingTerminalCodes  KeySet
	ProcessedTerminalCodes KeySet
	ReferenceSets
}

// ValidateTabletRow validates one tablet row.
func ValidateTabletRow(row types.Row, header *Header, rowIndex int, sets TabletSets) DeviceOutcome {
	c := newRowCheck(row, header, rowIndex)

	key := c.identifier(TerminalCode, sets.ExistingTerminalCodes, sets.ProcessedTerminalCodes)
	c.ascii(ModelNumber)
	c.references(sets.ReferenceSets)

	return c.deviceOutcome("", key)
}

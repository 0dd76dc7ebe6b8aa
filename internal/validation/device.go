// =============================================================================
// Asset Import - Device Row Validators (shared)
// =============================================================================
//
// Phone, router and tablet rows share a result type and a handful of columns
// (status, employee and office references, notes). Unlike the office
// validator these validators do not build a persistence record; the importer
// assembles device records from accepted rows.
//
// =============================================================================

package validation

import (
	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
)

// DeviceStatuses are the accepted values of the 状態 column.
var DeviceStatuses = []string{"使用中", "予備", "空き", "故障", "修理中", "廃棄"}

// Columns shared by every device template.
var (
	Status        = Field{Key: "status", Label: "状態"}
	EmployeeCode  = Field{Key: "employee_code", Label: "社員コード"}
	OfficeCodeRef = Field{Key: "office_code", Label: "事業所コード"}
	ContractYears = Field{Key: "contract_years", Label: "契約年数"}
	TerminalCode  = Field{Key: "terminal_code", Label: "端末コード(必須)", Aliases: []string{"端末コード"}, Name: "端末コード", Required: true}
	ModelNumber   = Field{Key: "model_number", Label: "型番"}
)

// ReferenceSets are the optional foreign-key sets. A nil set skips its check.
type ReferenceSets struct {
	EmployeeCodes KeySet
	OfficeCodes   KeySet
}

// DeviceOutcome is the result of validating one device row.
type DeviceOutcome struct {
	IsValid bool
	Errors  []string

	// NormalizedPhone is the formatted phone number (phones) or SIM number
	// (routers). Empty when the column is empty or malformed.
	NormalizedPhone string

	// ManagementNumber is the row's unique key: the management number for
	// phones, the terminal code for routers and tablets.
	ManagementNumber string
}

func (c *rowCheck) deviceOutcome(phone, key string) DeviceOutcome {
	errs := c.errors
	if errs == nil {
		errs = []string{}
	}
	return DeviceOutcome{
		IsValid:          len(errs) == 0,
		Errors:           errs,
		NormalizedPhone:  phone,
		ManagementNumber: key,
	}
}

// identifier checks a required ASCII-only key column and its uniqueness.
// Full-width input is rejected, never converted. It returns the key when the
// value is usable.
func (c *rowCheck) identifier(f Field, existing, processed KeySet) string {
	v, label := c.raw(f)
	if !c.required(v, label) || !c.shape(v, label, IsASCIIOnly, reasonASCII) {
		return ""
	}
	c.unique(f, v, v, existing, processed)
	return v
}

// references runs the shared status and foreign-key checks.
func (c *rowCheck) references(refs ReferenceSets) {
	c.enum(Status, DeviceStatuses)
	c.reference(EmployeeCode, refs.EmployeeCodes)
	c.reference(OfficeCodeRef, refs.OfficeCodes)
}

// phoneText returns the half-width text of a phone-like cell. Numeric cells
// lose their leading zero in spreadsheets, so 9 or 10 digit numbers get it
// back before any shape check.
func (c *rowCheck) phoneText(f Field) (string, string) {
	cell, label := c.cell(f)
	v := normalize.Clean(cell.String())
	if cell.Kind == types.CellNumber && (len(v) == 9 || len(v) == 10) && IsDigitsOnly(v) && v[0] != '0' {
		v = "0" + v
	}
	return v, label
}

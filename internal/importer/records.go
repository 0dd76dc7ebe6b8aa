package importer

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
	"github.com/ginjaninja78/asset-import/internal/validation"
)

// Record is one accepted row in its persistence shape.
type Record interface {
	// Key is the row's unique key (office code, management number or
	// terminal code).
	Key() string

	// Values lists the record in Columns order.
	Values() []string
}

// Columns returns the record column names for entity.
func Columns(entity config.Entity) []string {
	switch entity {
	case config.EntityOffice:
		return append(keys(validation.OfficeFields), "classification")
	case config.EntityPhone:
		return keys(validation.PhoneFields)
	case config.EntityRouter:
		return keys(validation.RouterFields)
	case config.EntityTablet:
		return keys(validation.TabletFields)
	default:
		return nil
	}
}

func keys(fields []validation.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

// =============================================================================
// DEVICE RECORDS
// =============================================================================

// PhoneRecord is a normalized mobile phone row.
type PhoneRecord struct {
	ManagementNumber     string `yaml:"management_number"`
	PhoneNumber          string `yaml:"phone_number"`
	Carrier              string `yaml:"carrier"`
	Model                string `yaml:"model"`
	Status               string `yaml:"status"`
	EmployeeCode         string `yaml:"employee_code"`
	OfficeCode           string `yaml:"office_code"`
	LendDate             string `yaml:"lend_date"`
	ReturnDate           string `yaml:"return_date"`
	ContractYears        string `yaml:"contract_years"`
	SmartAddressID       string `yaml:"smart_address_id"`
	SmartAddressPassword string `yaml:"smart_address_password"`
	Notes                string `yaml:"notes"`
}

func (r PhoneRecord) Key() string { return r.ManagementNumber }

func (r PhoneRecord) Values() []string {
	return []string{
		r.ManagementNumber, r.PhoneNumber, r.Carrier, r.Model, r.Status,
		r.EmployeeCode, r.OfficeCode, r.LendDate, r.ReturnDate, r.ContractYears,
		r.SmartAddressID, r.SmartAddressPassword, r.Notes,
	}
}

// RouterRecord is a normalized mobile router row.
type RouterRecord struct {
	TerminalCode  string `yaml:"terminal_code"`
	SIMNumber     string `yaml:"sim_number"`
	ModelNumber   string `yaml:"model_number"`
	Carrier       string `yaml:"carrier"`
	Status        string `yaml:"status"`
	EmployeeCode  string `yaml:"employee_code"`
	OfficeCode    string `yaml:"office_code"`
	IPAddress     string `yaml:"ip_address"`
	SubnetMask    string `yaml:"subnet_mask"`
	StartIP       string `yaml:"start_ip"`
	EndIP         string `yaml:"end_ip"`
	MonthlyFee    string `yaml:"monthly_fee"`
	DevicePrice   string `yaml:"device_price"`
	ContractYears string `yaml:"contract_years"`
	Notes         string `yaml:"notes"`
}

func (r RouterRecord) Key() string { return r.TerminalCode }

func (r RouterRecord) Values() []string {
	return []string{
		r.TerminalCode, r.SIMNumber, r.ModelNumber, r.Carrier, r.Status,
		r.EmployeeCode, r.OfficeCode, r.IPAddress, r.SubnetMask, r.StartIP,
		r.EndIP, r.MonthlyFee, r.DevicePrice, r.ContractYears, r.Notes,
	}
}

// TabletRecord is a normalized tablet row.
type TabletRecord struct {
	TerminalCode string `yaml:"terminal_code"`
	ModelNumber  string `yaml:"model_number"`
	Status       string `yaml:"status"`
	EmployeeCode string `yaml:"employee_code"`
	OfficeCode   string `yaml:"office_code"`
	Notes        string `yaml:"notes"`
}

func (r TabletRecord) Key() string { return r.TerminalCode }

func (r TabletRecord) Values() []string {
	return []string{r.TerminalCode, r.ModelNumber, r.Status, r.EmployeeCode, r.OfficeCode, r.Notes}
}

// =============================================================================
// CELL ACCESS
// =============================================================================

// rowReader reads an accepted row through the header.
type rowReader struct {
	row    types.Row
	header *validation.Header
}

func (r rowReader) cell(f validation.Field) types.Cell {
	i, _, ok := r.header.Lookup(f)
	if !ok {
		return types.Empty()
	}
	return r.row.Get(i)
}

// text returns the half-width, trimmed value.
func (r rowReader) text(f validation.Field) string {
	return normalize.Clean(r.cell(f).String())
}

// raw returns the trimmed value as typed.
func (r rowReader) raw(f validation.Field) string {
	return strings.TrimSpace(r.cell(f).String())
}

// date returns the cell as YYYY-MM-DD. Numeric cells are Excel serials.
func (r rowReader) date(f validation.Field) string {
	c := r.cell(f)
	switch c.Kind {
	case types.CellNumber:
		t, err := excelize.ExcelDateToTime(c.Number, false)
		if err != nil {
			return c.String()
		}
		return t.Format(types.DateLayout)
	case types.CellDate, types.CellText:
		if t, ok := validation.ParseDateCell(c); ok {
			return t.Format(types.DateLayout)
		}
		return r.text(f)
	default:
		return ""
	}
}

func (r rowReader) contractYears() string {
	return normalize.NormalizeContractYear(r.text(validation.ContractYears))
}

func phoneRecord(r rowReader, out validation.DeviceOutcome) PhoneRecord {
	return PhoneRecord{
		ManagementNumber:     out.ManagementNumber,
		PhoneNumber:          out.NormalizedPhone,
		Carrier:              r.text(validation.Carrier),
		Model:                r.text(validation.PhoneModel),
		Status:               r.text(validation.Status),
		EmployeeCode:         r.text(validation.EmployeeCode),
		OfficeCode:           r.text(validation.OfficeCodeRef),
		LendDate:             r.date(validation.LendDate),
		ReturnDate:           r.date(validation.ReturnDate),
		ContractYears:        r.contractYears(),
		SmartAddressID:       r.raw(validation.SmartAddressID),
		SmartAddressPassword: r.raw(validation.SmartAddressPassword),
		Notes:                r.raw(validation.Notes),
	}
}

func routerRecord(r rowReader, out validation.DeviceOutcome) RouterRecord {
	return RouterRecord{
		TerminalCode:  out.ManagementNumber,
		SIMNumber:     out.NormalizedPhone,
		ModelNumber:   r.raw(validation.ModelNumber),
		Carrier:       r.text(validation.RouterCarrier),
		Status:        r.text(validation.Status),
		EmployeeCode:  r.text(validation.EmployeeCode),
		OfficeCode:    r.text(validation.OfficeCodeRef),
		IPAddress:     r.text(validation.IPAddress),
		SubnetMask:    r.text(validation.SubnetMask),
		StartIP:       r.text(validation.StartIP),
		EndIP:         r.text(validation.EndIP),
		MonthlyFee:    r.text(validation.MonthlyFee),
		DevicePrice:   r.text(validation.DevicePrice),
		ContractYears: r.contractYears(),
		Notes:         r.raw(validation.Notes),
	}
}

func tabletRecord(r rowReader, out validation.DeviceOutcome) TabletRecord {
	return TabletRecord{
		TerminalCode: out.ManagementNumber,
		ModelNumber:  r.raw(validation.ModelNumber),
		Status:       r.text(validation.Status),
		EmployeeCode: r.text(validation.EmployeeCode),
		OfficeCode:   r.text(validation.OfficeCodeRef),
		Notes:        r.raw(validation.Notes),
	}
}

// =============================================================================
// Asset Import - Office/Address Row Validator
// =============================================================================
//
// ValidateOfficeRow checks one row of the office template and, when the row is
// clean, builds the OfficeRecord handed to persistence.
//
// CHECK ORDER (all checks run, every failure is reported):
//   1. 事業所コード    required, digits/hyphens, existing, in-file duplicate
//   2. 事業所名        required (uniqueness only when name sets are given)
//   3. code columns    digits/hyphens when present
//   4. 〒 / ラベル〒    7-digit or 3-4 grouped when present
//   5. 住所            required
//   6. TEL / FAX       flexible grouped phone when present
//
// The 〒(必須) column is only format checked. An empty value passes.
//
// =============================================================================

package validation

import (
	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
)

// =============================================================================
// TEMPLATE COLUMNS
// =============================================================================

var (
	OfficeCode           = Field{Key: "office_code", Label: "事業所コード(必須)", Aliases: []string{"事業所コード"}, Name: "事業所コード", Required: true}
	OfficeName           = Field{Key: "office_name", Label: "事業所名(必須)", Aliases: []string{"事業所名"}, Name: "事業所名", Required: true}
	AreaCode             = Field{Key: "area_code", Label: "エリアコード"}
	SequenceNumber       = Field{Key: "sequence_number", Label: "連番"}
	ZipCode              = Field{Key: "zip_code", Label: "〒(必須)", Aliases: []string{"〒", "郵便番号"}, Name: "〒", Required: true}
	Address              = Field{Key: "address", Label: "住所(必須)", Aliases: []string{"住所"}, Name: "住所", Required: true}
	Tel                  = Field{Key: "tel", Label: "TEL", Aliases: []string{"電話"}}
	Fax                  = Field{Key: "fax", Label: "FAX"}
	Division             = Field{Key: "division", Label: "事業部"}
	AccountingCode       = Field{Key: "accounting_code", Label: "経理コード"}
	AreaCodeConfirmation = Field{Key: "area_code_confirmation", Label: "エリアコード確認"}
	MainPerson           = Field{Key: "main_person", Label: "主担当"}
	BranchNumber         = Field{Key: "branch_number", Label: "枝番"}
	SpecialNote          = Field{Key: "special_note", Label: "特記事項"}
	Notes                = Field{Key: "notes", Label: "備考"}
	LabelName            = Field{Key: "label_name", Label: "ラベル宛名"}
	LabelZipCode         = Field{Key: "label_zip_code", Label: "ラベル〒"}
	LabelAddress         = Field{Key: "label_address", Label: "ラベル住所"}
	LabelAttention       = Field{Key: "label_attention", Label: "ラベル注意書き"}
)

// OfficeFields lists the office template columns in sheet order.
var OfficeFields = []Field{
	OfficeCode, OfficeName, AreaCode, SequenceNumber, ZipCode, Address,
	Tel, Fax, Division, AccountingCode, AreaCodeConfirmation, MainPerson,
	BranchNumber, SpecialNote, Notes, LabelName, LabelZipCode, LabelAddress,
	LabelAttention,
}

// officeCodeColumns are the optional columns limited to digits and hyphens.
var officeCodeColumns = []Field{AreaCode, SequenceNumber, AccountingCode, AreaCodeConfirmation, BranchNumber}

// =============================================================================
// TYPES
// =============================================================================

// OfficeSets carries the uniqueness sets for one office import. Name sets are
// optional; when both are nil office names are not checked for uniqueness.
type OfficeSets struct {
	ExistingCodes  KeySet
	ProcessedCodes KeySet
	ExistingNames  KeySet
	ProcessedNames KeySet
}

// OfficeRecord is a normalized office row ready for persistence.
type OfficeRecord struct {
	OfficeCode           string `yaml:"office_code"`
	OfficeName           string `yaml:"office_name"`
	AreaCode             string `yaml:"area_code"`
	SequenceNumber       string `yaml:"sequence_number"`
	ZipCode              string `yaml:"zip_code"`
	Address              string `yaml:"address"`
	Tel                  string `yaml:"tel"`
	Fax                  string `yaml:"fax"`
	Division             string `yaml:"division"`
	AccountingCode       string `yaml:"accounting_code"`
	AreaCodeConfirmation string `yaml:"area_code_confirmation"`
	MainPerson           string `yaml:"main_person"`
	BranchNumber         string `yaml:"branch_number"`
	SpecialNote          string `yaml:"special_note"`
	Notes                string `yaml:"notes"`
	LabelName            string `yaml:"label_name"`
	LabelZipCode         string `yaml:"label_zip_code"`
	LabelAddress         string `yaml:"label_address"`
	LabelAttention       string `yaml:"label_attention"`

	// Classification is reserved and always empty on import.
	Classification string `yaml:"classification"`
}

// OfficeOutcome is the result of validating one office row. Record is set
// if and only if Errors is empty.
type OfficeOutcome struct {
	Errors []string
	Record *OfficeRecord
}

// Valid reports whether the row produced a record.
func (o OfficeOutcome) Valid() bool { return len(o.Errors) == 0 }

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidateOfficeRow validates one office row. rowIndex is zero-based over the
// data rows. The sets are only read; adding the accepted code to
// ProcessedCodes is the caller's job.
func ValidateOfficeRow(row types.Row, header *Header, rowIndex int, sets OfficeSets) OfficeOutcome {
	c := newRowCheck(row, header, rowIndex)

	code, codeLabel := c.value(OfficeCode)
	if c.required(code, codeLabel) &&
		c.shape(code, codeLabel, IsDigitsAndHyphensOnly, reasonDigitsAndHyphens) {
		c.unique(OfficeCode, code, code, sets.ExistingCodes, sets.ProcessedCodes)
	}

	name, nameLabel := c.value(OfficeName)
	if c.required(name, nameLabel) && (sets.ExistingNames != nil || sets.ProcessedNames != nil) {
		c.unique(OfficeName, name, name, sets.ExistingNames, sets.ProcessedNames)
	}

	for _, f := range officeCodeColumns {
		v, label := c.value(f)
		c.shape(v, label, IsDigitsAndHyphensOnly, reasonDigitsAndHyphens)
	}

	zip, zipLabel := c.value(ZipCode)
	c.shape(zip, zipLabel, IsSevenDigitOrGroupedZip, reasonZip)
	labelZip, labelZipLabel := c.value(LabelZipCode)
	c.shape(labelZip, labelZipLabel, IsSevenDigitOrGroupedZip, reasonZip)

	address, addressLabel := c.value(Address)
	c.required(address, addressLabel)

	tel, telLabel := c.value(Tel)
	c.shape(tel, telLabel, IsGroupedPhoneFlexible, reasonPhone)
	fax, faxLabel := c.value(Fax)
	c.shape(fax, faxLabel, IsGroupedPhoneFlexible, reasonPhone)

	if c.failed() {
		return OfficeOutcome{Errors: c.errors}
	}

	text := func(f Field) string {
		v, _ := c.value(f)
		return v
	}

	return OfficeOutcome{
		Errors: []string{},
		Record: &OfficeRecord{
			OfficeCode:           code,
			OfficeName:           name,
			AreaCode:             text(AreaCode),
			SequenceNumber:       text(SequenceNumber),
			ZipCode:              normalize.FormatZipCode(zip),
			Address:              address,
			Tel:                  tel,
			Fax:                  fax,
			Division:             text(Division),
			AccountingCode:       text(AccountingCode),
			AreaCodeConfirmation: text(AreaCodeConfirmation),
			MainPerson:           text(MainPerson),
			BranchNumber:         text(BranchNumber),
			SpecialNote:          text(SpecialNote),
			Notes:                text(Notes),
			LabelName:            text(LabelName),
			LabelZipCode:         normalize.FormatZipCode(labelZip),
			LabelAddress:         text(LabelAddress),
			LabelAttention:       text(LabelAttention),
		},
	}
}

// Values returns the record in OfficeFields order followed by Classification.
func (r OfficeRecord) Values() []string {
	return []string{
		r.OfficeCode, r.OfficeName, r.AreaCode, r.SequenceNumber, r.ZipCode,
		r.Address, r.Tel, r.Fax, r.Division, r.AccountingCode,
		r.AreaCodeConfirmation, r.MainPerson, r.BranchNumber, r.SpecialNote,
		r.Notes, r.LabelName, r.LabelZipCode, r.LabelAddress, r.LabelAttention,
		r.Classification,
	}
}

// Key returns the office code.
func (r OfficeRecord) Key() string { return r.OfficeCode }

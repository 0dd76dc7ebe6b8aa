package validation

import (
	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
)

// PhoneCarriers are the accepted values of the phone キャリア column.
var PhoneCarriers = []string{"KDDI", "SoftBank", "docomo", "楽天モバイル", "その他"}

// Phone template columns.
var (
	ManagementNumber     = Field{Key: "management_number", Label: "管理番号(必須)", Aliases: []string{"管理番号"}, Name: "管理番号", Required: true}
	PhoneNumber          = Field{Key: "phone_number", Label: "電話番号(必須)", Aliases: []string{"電話番号"}, Name: "電話番号", Required: true}
	Carrier              = Field{Key: "carrier", Label: "キャリア"}
	PhoneModel           = Field{Key: "model", Label: "機種"}
	LendDate             = Field{Key: "lend_date", Label: "貸与日"}
	ReturnDate           = Field{Key: "return_date", Label: "返却日"}
	SmartAddressID       = Field{Key: "smart_address_id", Label: "SMARTアドレスID"}
	SmartAddressPassword = Field{Key: "smart_address_password", Label: "SMARTアドレスパスワード"}
)

// PhoneFields lists the phone template columns in sheet order.
var PhoneFields = []Field{
	ManagementNumber, PhoneNumber, Carrier, PhoneModel, Status, EmployeeCode,
	OfficeCodeRef, LendDate, ReturnDate, ContractYears, SmartAddressID,
	SmartAddressPassword, Notes,
}

// PhoneSets carries the uniqueness and reference sets for one phone import.
// Phone numbers are keyed by their digits.
type PhoneSets struct {
	ExistingPhoneNumbers       KeySet
	ProcessedPhoneNumbers      KeySet
	ExistingManagementNumbers  KeySet
	ProcessedManagementNumbers KeySet
	ReferenceSets
}

// ValidatePhoneRow validates one mobile phone row.
func ValidatePhoneRow(row types.Row, header *Header, rowIndex int, sets PhoneSets) DeviceOutcome {
	c := newRowCheck(row, header, rowIndex)

	key := c.identifier(ManagementNumber, sets.ExistingManagementNumbers, sets.ProcessedManagementNumbers)

	var formatted string
	phone, phoneLabel := c.phoneText(PhoneNumber)
	if c.required(phone, phoneLabel) {
		formatted = normalize.FormatPhoneNumber(phone)
		c.shape(phone, phoneLabel, IsElevenDigitOrGroupedPhone, reasonPhone)
		if digits := normalize.NormalizePhoneDigits(formatted); digits != "" {
			c.unique(PhoneNumber, phone, digits, sets.ExistingPhoneNumbers, sets.ProcessedPhoneNumbers)
		}
	}

	c.enum(Carrier, PhoneCarriers)
	c.references(sets.ReferenceSets)
	c.date(LendDate)
	c.date(ReturnDate)
	c.ascii(SmartAddressID)
	c.ascii(SmartAddressPassword)

	return c.deviceOutcome(formatted, key)
}

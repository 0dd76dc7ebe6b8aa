package validation

import (
	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/types"
)

// RouterCarriers are the accepted values of the router 通信キャリア column.
var RouterCarriers = []string{"docomo", "au", "SoftBank", "楽天モバイル", "UQ WiMAX", "その他"}

// Router template columns.
var (
	SIMNumber     = Field{Key: "sim_number", Label: "SIM番号", Name: "SIM番号"}
	RouterCarrier = Field{Key: "carrier", Label: "通信キャリア"}
	IPAddress     = Field{Key: "ip_address", Label: "IPアドレス"}
	SubnetMask    = Field{Key: "subnet_mask", Label: "サブネットマスク"}
	StartIP       = Field{Key: "start_ip", Label: "開始IP"}
	EndIP         = Field{Key: "end_ip", Label: "終了IP"}
	MonthlyFee    = Field{Key: "monthly_fee", Label: "月額料金"}
	DevicePrice   = Field{Key: "device_price", Label: "端末代金"}
)

// RouterFields lists the router template columns in sheet order.
var RouterFields = []Field{
	TerminalCode, SIMNumber, ModelNumber, RouterCarrier, Status, EmployeeCode,
	OfficeCodeRef, IPAddress, SubnetMask, StartIP, EndIP, MonthlyFee,
	DevicePrice, ContractYears, Notes,
}

var (
	routerIPColumns   = []Field{IPAddress, SubnetMask, StartIP, EndIP}
	routerCostColumns = []Field{MonthlyFee, DevicePrice}
)

// RouterSets carries the uniqueness and reference sets for one router import.
// SIM numbers are keyed by their digits.
type RouterSets struct {
	ExistingTerminalCodes  KeySet
	ProcessedTerminalCodes KeySet
	ExistingSIMNumbers     KeySet
	ProcessedSIMNumbers    KeySet
	ReferenceSets
}

// ValidateRouterRow validates one mobile router row. The SIM number is
// optional, but once present it must have a valid shape and be unique.
func ValidateRouterRow(row types.Row, header *Header, rowIndex int, sets RouterSets) DeviceOutcome {
	c := newRowCheck(row, header, rowIndex)

	key := c.identifier(TerminalCode, sets.ExistingTerminalCodes, sets.ProcessedTerminalCodes)

	var formatted string
	sim, simLabel := c.phoneText(SIMNumber)
	if sim != "" {
		formatted = normalize.FormatPhoneNumber(sim)
		c.shape(sim, simLabel, IsSIMNumberShape, reasonSIM)
		if digits := normalize.NormalizePhoneDigits(sim); digits != "" {
			c.unique(SIMNumber, sim, digits, sets.ExistingSIMNumbers, sets.ProcessedSIMNumbers)
		}
	}

	c.ascii(ModelNumber)
	c.enum(RouterCarrier, RouterCarriers)
	c.references(sets.ReferenceSets)

	for _, f := range routerIPColumns {
		v, label := c.value(f)
		c.shape(v, label, IsIPv4Shape, reasonIPv4)
	}
	for _, f := range routerCostColumns {
		v, label := c.value(f)
		c.shape(v, label, IsDigitsOnly, reasonDigits)
	}

	return c.deviceOutcome(formatted, key)
}

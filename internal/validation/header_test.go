package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderRowNumber(t *testing.T) {
	office := NewHeader(Labels(OfficeFields), OfficeDataStartRow)
	device := NewHeader(Labels(PhoneFields), DeviceDataStartRow)

	assert.Equal(t, 3, office.RowNumber(0))
	assert.Equal(t, 2, device.RowNumber(0))
	assert.Equal(t, 12, office.RowNumber(9))
}

func TestHeaderLookup(t *testing.T) {
	h := NewHeader([]string{" 事業所コード ", "ＴＥＬ", "住所(必須)"}, OfficeDataStartRow)

	i, label, ok := h.Lookup(OfficeCode)
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, "事業所コード", label)

	i, label, ok = h.Lookup(Tel)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "TEL", label)

	_, label, ok = h.Lookup(Fax)
	assert.False(t, ok)
	assert.Equal(t, "FAX", label)
}

func TestHeaderDuplicateLabelLastWins(t *testing.T) {
	h := NewHeader([]string{"備考", "TEL", "備考"}, DeviceDataStartRow)

	i, _, ok := h.Lookup(Notes)
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestHeaderMissing(t *testing.T) {
	h := NewHeader([]string{"事業所コード(必須)", "事業所名(必須)", "TEL"}, OfficeDataStartRow)

	assert.Equal(t, []string{"〒(必須)", "住所(必須)"}, h.Missing(OfficeFields))
	assert.Empty(t, NewHeader(Labels(OfficeFields), OfficeDataStartRow).Missing(OfficeFields))
}

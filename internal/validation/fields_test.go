package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/asset-import/internal/types"
)

// freezeNow pins the clock used for the date range window.
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestShapePredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(string) bool
		in   string
		want bool
	}{
		{"digits hyphens ok", IsDigitsAndHyphensOnly, "001-2", true},
		{"digits hyphens letter", IsDigitsAndHyphensOnly, "A01", false},
		{"digits hyphens empty", IsDigitsAndHyphensOnly, "", false},
		{"digits only ok", IsDigitsOnly, "3000", true},
		{"digits only comma", IsDigitsOnly, "3,000", false},
		{"digits only decimal", IsDigitsOnly, "30.5", false},
		{"phone 11 digits", IsElevenDigitOrGroupedPhone, "09012345678", true},
		{"phone grouped", IsElevenDigitOrGroupedPhone, "090-1234-5678", true},
		{"phone 2-4-4", IsElevenDigitOrGroupedPhone, "03-1234-5678", false},
		{"flexible 2-4-4", IsGroupedPhoneFlexible, "03-1234-5678", true},
		{"flexible 4-2-4", IsGroupedPhoneFlexible, "0120-12-3456", true},
		{"flexible short tail", IsGroupedPhoneFlexible, "03-1234-567", false},
		{"flexible 11 digits", IsGroupedPhoneFlexible, "09012345678", true},
		{"sim 14 digits", IsSIMNumberShape, "89811234567890", true},
		{"sim 13 digits", IsSIMNumberShape, "8981123456789", false},
		{"zip 7 digits", IsSevenDigitOrGroupedZip, "1234567", true},
		{"zip grouped", IsSevenDigitOrGroupedZip, "123-4567", true},
		{"zip bad grouping", IsSevenDigitOrGroupedZip, "123-456-7", false},
		{"ipv4", IsIPv4Shape, "192.168.0.1", true},
		{"ipv4 octet not range checked", IsIPv4Shape, "999.999.999.999", true},
		{"ipv4 three groups", IsIPv4Shape, "192.168.0", false},
		{"ascii", IsASCIIOnly, "user01!@#", true},
		{"ascii full width", IsASCIIOnly, "ｕｓｅｒ", false},
		{"ascii kana", IsASCIIOnly, "テスト", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.in))
		})
	}
}

func TestIsEnumMember(t *testing.T) {
	assert.True(t, IsEnumMember("docomo", PhoneCarriers))
	assert.False(t, IsEnumMember("DOCOMO", PhoneCarriers))
	assert.False(t, IsEnumMember("", PhoneCarriers))
}

func TestIsValidDateShape(t *testing.T) {
	tests := []struct {
		name string
		cell types.Cell
		want bool
	}{
		{"empty", types.Empty(), true},
		{"blank text", types.Text("  "), true},
		{"serial", types.Number(45000), true},
		{"date cell", types.Date(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)), true},
		{"hyphen", types.Text("2024-04-01"), true},
		{"slash short", types.Text("2024/4/1"), true},
		{"dotted", types.Text("2024.04.01"), false},
		{"two digit year", types.Text("24-04-01"), false},
		{"month 13", types.Text("2024-13-01"), false},
		{"feb 30", types.Text("2024/02/30"), false},
		{"leap day", types.Text("2024-02-29"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidDateShape(tt.cell))
		})
	}
}

func TestIsWithinDateRange(t *testing.T) {
	freezeNow(t, time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local))

	assert.True(t, IsWithinDateRange(time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, IsWithinDateRange(time.Date(1999, 12, 31, 0, 0, 0, 0, time.Local)))
	assert.True(t, IsWithinDateRange(time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, IsWithinDateRange(time.Date(2030, 1, 2, 0, 0, 0, 0, time.Local)))
}

func TestParseDateCell(t *testing.T) {
	d, ok := ParseDateCell(types.Text("2024/4/1"))
	assert.True(t, ok)
	assert.Equal(t, "2024-04-01", d.Format(types.DateLayout))

	_, ok = ParseDateCell(types.Number(45000))
	assert.False(t, ok)

	_, ok = ParseDateCell(types.Empty())
	assert.False(t, ok)
}

func TestKeySet(t *testing.T) {
	var nilSet KeySet
	assert.False(t, nilSet.Has("x"))
	assert.Equal(t, 0, nilSet.Len())

	s := NewKeySet("a")
	s.Add("b")
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
	assert.Equal(t, 2, s.Len())
}

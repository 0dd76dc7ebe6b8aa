package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHalfWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"digits", "０１２３４５６７８９", "0123456789"},
		{"letters", "ＡＢＣｘｙｚ", "ABCxyz"},
		{"mixed", "Ａ０１-２", "A01-2"},
		{"ascii unchanged", "abc-123", "abc-123"},
		{"kana unchanged", "事業所コード", "事業所コード"},
		{"full-width hyphen unchanged", "１２３－４５６７", "123－4567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHalfWidth(tt.in))
		})
	}
}

func TestToHalfWidthIsIdempotent(t *testing.T) {
	inputs := []string{"０３－１２３４", "ＡＢＣ", "東京都", "abc", "", "ｱｲｳ"}
	for _, in := range inputs {
		once := ToHalfWidth(in)
		assert.Equal(t, once, ToHalfWidth(once), "input %q", in)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "001", Clean("  ００１ "))
	assert.Equal(t, "", Clean("   "))
}

func TestNormalizePhoneDigits(t *testing.T) {
	assert.Equal(t, "09012345678", NormalizePhoneDigits("090-1234-5678"))
	assert.Equal(t, "0312345678", NormalizePhoneDigits("(03) 1234 5678"))
	assert.Equal(t, "", NormalizePhoneDigits("abc"))
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"11 digits", "09012345678", "090-1234-5678"},
		{"11 digits grouped", "090-1234-5678", "090-1234-5678"},
		{"10 digits tokyo", "0312345678", "03-1234-5678"},
		{"10 digits osaka", "0612345678", "06-1234-5678"},
		{"10 digits other", "0451234567", "045-123-4567"},
		{"dropped zero 10 digits", "9012345678", "090-1234-5678"},
		{"dropped zero 9 digits", "312345678", "03-1234-5678"},
		{"14 digits", "89811234567890", "89811234567890"},
		{"full width", "０９０１２３４５６７８", "090-1234-5678"},
		{"short", "12-34", "1234"},
		{"no digits", "なし", "なし"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.in))
		})
	}
}

func TestFormatPhoneNumberIsIdempotent(t *testing.T) {
	inputs := []string{"09012345678", "0312345678", "0451234567", "9012345678", "89811234567890"}
	for _, in := range inputs {
		once := FormatPhoneNumber(in)
		assert.Equal(t, once, FormatPhoneNumber(once), "input %q", in)
	}
}

func TestFormatZipCode(t *testing.T) {
	assert.Equal(t, "123-4567", FormatZipCode("1234567"))
	assert.Equal(t, "123-4567", FormatZipCode("123-4567"))
	assert.Equal(t, "123-4567", FormatZipCode("１２３４５６７"))
	assert.Equal(t, "123-456", FormatZipCode("123-456"))
	assert.Equal(t, "", FormatZipCode(""))
}

func TestNormalizeContractYear(t *testing.T) {
	assert.Equal(t, "2", NormalizeContractYear("2年"))
	assert.Equal(t, "3", NormalizeContractYear(" ３ 年 "))
	assert.Equal(t, "5", NormalizeContractYear("5"))
	assert.Equal(t, "", NormalizeContractYear(""))
}

func TestStripHyphens(t *testing.T) {
	assert.Equal(t, "1234567", StripHyphens("123-4567"))
	assert.Equal(t, "1234567", StripHyphens("123－4567"))
}

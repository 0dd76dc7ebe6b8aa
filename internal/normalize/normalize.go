// =============================================================================
// Asset Import - Field Normalizers
// =============================================================================
//
// Pure string transforms applied to cell values before they are validated or
// stored:
//   - ToHalfWidth            : full-width digits/letters to ASCII
//   - NormalizePhoneDigits   : keep digits only
//   - FormatPhoneNumber      : canonical hyphen grouping for phone/SIM numbers
//   - FormatZipCode          : canonical 3-4 grouping for postal codes
//   - NormalizeContractYear  : strip the 年 unit marker
//
// None of these functions fail. Inputs they cannot improve are returned as
// they came in so the validators can report the original text.
//
// =============================================================================

package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// =============================================================================
// WIDTH NORMALIZATION
// =============================================================================

// fullWidthAlnum covers the full-width digits and Latin letters
// (U+FF10-FF19, U+FF21-FF3A, U+FF41-FF5A).
var fullWidthAlnum = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xFF10, Hi: 0xFF19, Stride: 1},
		{Lo: 0xFF21, Hi: 0xFF3A, Stride: 1},
		{Lo: 0xFF41, Hi: 0xFF5A, Stride: 1},
	},
}

// ToHalfWidth maps full-width digits and Latin letters to their ASCII
// equivalents. Everything else, including full-width punctuation and kana,
// passes through unchanged. The result is stable: ToHalfWidth(ToHalfWidth(s))
// equals ToHalfWidth(s).
//
// A transformer carries state, so a fresh one is built for every call.
func ToHalfWidth(s string) string {
	if s == "" {
		return s
	}
	t := runes.If(runes.In(fullWidthAlnum), width.Narrow, nil)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Clean half-width-normalizes and trims a value. This is the form every field
// validator expects.
func Clean(s string) string {
	return strings.TrimSpace(ToHalfWidth(s))
}

// =============================================================================
// PHONE NUMBERS
// =============================================================================

// NormalizePhoneDigits strips every non-digit character.
func NormalizePhoneDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhoneNumber returns the canonical hyphenated form of a phone number.
//
// RULES:
//   - 9 or 10 digits without a leading 0 get a 0 prepended (spreadsheets drop
//     the leading zero of numeric cells)
//   - 14 digits       : returned as digits (SIM numbers)
//   - 11 digits       : 3-4-4
//   - 10 digits 03/06 : 2-4-4
//   - 10 digits       : 3-3-4
//   - anything else   : the digits, or the original input when it had none
func FormatPhoneNumber(s string) string {
	digits := NormalizePhoneDigits(ToHalfWidth(s))

	if (len(digits) == 9 || len(digits) == 10) && digits[0] != '0' {
		digits = "0" + digits
	}

	switch {
	case len(digits) == 14:
		return digits
	case len(digits) == 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case len(digits) == 10 && (strings.HasPrefix(digits, "03") || strings.HasPrefix(digits, "06")):
		return digits[:2] + "-" + digits[2:6] + "-" + digits[6:]
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case digits == "":
		return s
	default:
		return digits
	}
}

// =============================================================================
// ZIP CODES
// =============================================================================

// FormatZipCode groups a 7-digit postal code as 3-4. Any other input,
// including the empty string, is returned unchanged.
func FormatZipCode(s string) string {
	digits := NormalizePhoneDigits(ToHalfWidth(s))
	if len(digits) != 7 {
		return s
	}
	return digits[:3] + "-" + digits[3:]
}

// =============================================================================
// CONTRACT YEARS
// =============================================================================

// NormalizeContractYear removes the 年 unit marker and surrounding
// whitespace: "2年" becomes "2", " ３ 年 " becomes "3".
func NormalizeContractYear(s string) string {
	s = strings.ReplaceAll(ToHalfWidth(s), "年", "")
	return strings.TrimSpace(s)
}

// StripHyphens removes ASCII hyphens and the common full-width and
// long-vowel look-alikes operators type in place of them.
func StripHyphens(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '－', 'ー', '‐', '−':
			return -1
		}
		return r
	}, s)
}

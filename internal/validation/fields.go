// =============================================================================
// Asset Import - Field Validators
// =============================================================================
//
// Pure predicates, one per field class. Every predicate expects a value that
// has already been half-width-normalized and trimmed (normalize.Clean), except
// IsASCIIOnly which is deliberately given the raw text so that full-width
// input is rejected rather than silently converted.
//
// =============================================================================

package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/asset-import/internal/types"
)

var (
	digitsAndHyphensPattern = regexp.MustCompile(`^[0-9-]+$`)
	digitsOnlyPattern       = regexp.MustCompile(`^[0-9]+$`)
	phonePattern            = regexp.MustCompile(`^(\d{11}|\d{3}-\d{4}-\d{4})$`)
	flexiblePhonePattern    = regexp.MustCompile(`^(\d{11}|\d{2,4}-\d{2,4}-\d{4})$`)
	simPattern              = regexp.MustCompile(`^(\d{11}|\d{3}-\d{4}-\d{4}|\d{14})$`)
	zipPattern              = regexp.MustCompile(`^(\d{7}|\d{3}-\d{4})$`)
	ipv4Pattern             = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	dateHyphenPattern       = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dateSlashPattern        = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
)

// =============================================================================
// SHAPE CHECKS
// =============================================================================

// IsDigitsAndHyphensOnly is used for codes: office, area, branch, accounting,
// sequence, employee.
func IsDigitsAndHyphensOnly(v string) bool { return digitsAndHyphensPattern.MatchString(v) }

// IsDigitsOnly is used for cost fields (no sign, no decimal point).
func IsDigitsOnly(v string) bool { return digitsOnlyPattern.MatchString(v) }

// IsElevenDigitOrGroupedPhone matches "09012345678" or "090-1234-5678".
func IsElevenDigitOrGroupedPhone(v string) bool { return phonePattern.MatchString(v) }

// IsGroupedPhoneFlexible matches 11 plain digits or three hyphen-separated
// blocks where the first two hold 2-4 digits and the subscriber block holds
// exactly 4 ("03-1234-5678", "0120-12-3456").
func IsGroupedPhoneFlexible(v string) bool { return flexiblePhonePattern.MatchString(v) }

// IsSIMNumberShape matches the phone shapes plus the bare 14-digit form.
func IsSIMNumberShape(v string) bool { return simPattern.MatchString(v) }

// IsSevenDigitOrGroupedZip matches "1234567" or "123-4567".
func IsSevenDigitOrGroupedZip(v string) bool { return zipPattern.MatchString(v) }

// IsIPv4Shape checks for four dot-separated groups of 1-3 digits. Octet
// values are not range checked.
func IsIPv4Shape(v string) bool { return ipv4Pattern.MatchString(v) }

// IsEnumMember reports whether v is one of allowed.
func IsEnumMember(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// IsASCIIOnly fails on any rune outside printable ASCII (0x20-0x7E).
func IsASCIIOnly(v string) bool {
	for _, r := range v {
		if r < 0x20 || r > 0x7E {
			return false
		}
	}
	return true
}

// =============================================================================
// DATES
// =============================================================================

// MinDate is the earliest accepted lend/return date.
var MinDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)

// now is replaced in tests.
var now = time.Now

// MaxDate is the last accepted date: today plus five years, end of day.
func MaxDate() time.Time {
	n := now()
	return time.Date(n.Year()+5, n.Month(), n.Day(), 23, 59, 59, int(time.Second-1), time.Local)
}

// IsValidDateShape accepts empty cells, numeric cells (spreadsheet date
// serials) and date cells. Text must read YYYY-MM-DD or YYYY/MM/DD with one
// or two digit month and day, and must name a real calendar day.
func IsValidDateShape(c types.Cell) bool {
	switch c.Kind {
	case types.CellEmpty, types.CellNumber, types.CellDate:
		return true
	}
	v := strings.TrimSpace(c.Text)
	if v == "" {
		return true
	}
	_, ok := parseDateText(v)
	return ok
}

// ParseDateCell returns the concrete date held by a text or date cell.
// Numeric cells and empty cells report false.
func ParseDateCell(c types.Cell) (time.Time, bool) {
	switch c.Kind {
	case types.CellDate:
		return time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), 0, 0, 0, 0, time.Local), true
	case types.CellText:
		return parseDateText(strings.TrimSpace(c.Text))
	default:
		return time.Time{}, false
	}
}

// IsWithinDateRange reports whether date lies in [MinDate, MaxDate()].
func IsWithinDateRange(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	return !day.Before(MinDate) && !day.After(MaxDate())
}

func parseDateText(v string) (time.Time, bool) {
	m := dateHyphenPattern.FindStringSubmatch(v)
	if m == nil {
		m = dateSlashPattern.FindStringSubmatch(v)
	}
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

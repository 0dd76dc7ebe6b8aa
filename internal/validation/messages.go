package validation

import (
	"fmt"
	"strings"
)

// Operator-facing reasons. The presentation layer and existing fixtures
// match on this wording, so it must not drift.
const (
	reasonDigitsAndHyphens = "半角数字とハイフンのみ入力可能です"
	reasonDigits           = "半角数字のみ入力可能です"
	reasonPhone            = "「xxxxxxxxxxx(11桁)」または「xxx-xxxx-xxxx」の形式のみ入力可能です"
	reasonSIM              = "「xxxxxxxxxxx(11桁)」、「xxx-xxxx-xxxx」または「xxxxxxxxxxxxxx(14桁)」の形式のみ入力可能です"
	reasonZip              = "「xxxxxxx(7桁)」または「xxx-xxxx」の形式のみ入力可能です"
	reasonASCII            = "半角英数字・記号のみ入力可能です"
	reasonIPv4             = "「xxx.xxx.xxx.xxx」の形式のみ入力可能です"
	reasonDateShape        = "「YYYY-MM-DD」または「YYYY/MM/DD」の形式で入力してください"
)

// dateDisplayLayout renders dates inside messages.
const dateDisplayLayout = "2006/01/02"

func emptyMessage(row int, label string) string {
	return fmt.Sprintf("%d行目: %sが空です", row, label)
}

func formatMessage(row int, label, value, reason string) string {
	return fmt.Sprintf("%d行目: %s「%s」は%s", row, label, value, reason)
}

func existsMessage(row int, name, value string) string {
	return fmt.Sprintf("%d行目: %s「%s」は既に存在します", row, name, value)
}

func duplicateMessage(row int, name, value string) string {
	return fmt.Sprintf("%d行目: %s「%s」がファイル内で重複しています", row, name, value)
}

func notFoundMessage(row int, name, value string) string {
	return fmt.Sprintf("%d行目: %s「%s」は存在しません", row, name, value)
}

func enumReason(allowed []string) string {
	return fmt.Sprintf("「%s」のいずれかを入力してください", strings.Join(allowed, "/"))
}

func dateRangeReason() string {
	return fmt.Sprintf("%sから%sまでの日付を入力してください",
		MinDate.Format(dateDisplayLayout), MaxDate().Format(dateDisplayLayout))
}

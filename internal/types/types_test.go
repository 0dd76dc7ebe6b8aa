package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"empty", Empty(), ""},
		{"text", Text("本社"), "本社"},
		{"large number has no exponent", Number(9012345678), "9012345678"},
		{"fraction", Number(1.5), "1.5"},
		{"date", Date(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)), "2024-04-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.String())
		})
	}
}

func TestRowHelpers(t *testing.T) {
	row := TextRow("A", "", " ")

	assert.Equal(t, CellEmpty, row[1].Kind)
	assert.True(t, row[2].IsEmpty())
	assert.Equal(t, "A", row.Get(0).String())
	assert.True(t, row.Get(10).IsEmpty())
	assert.False(t, row.IsBlank())
	assert.True(t, TextRow("", " ").IsBlank())
	assert.True(t, Row(nil).IsBlank())
}

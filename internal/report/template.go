package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/validation"
)

// templateSheets names the input sheet of each blank workbook.
var templateSheets = map[config.Entity]string{
	config.EntityOffice: "事業所",
	config.EntityPhone:  "携帯電話",
	config.EntityRouter: "モバイルルーター",
	config.EntityTablet: "タブレット",
}

// officeHints is the input-hint row under the office header. Data starts on
// the row below it.
var officeHints = map[string]string{
	validation.OfficeCode.Key:           "半角数字・ハイフン",
	validation.OfficeName.Key:           "重複不可",
	validation.AreaCode.Key:             "半角数字・ハイフン",
	validation.SequenceNumber.Key:       "半角数字・ハイフン",
	validation.ZipCode.Key:              "1234567 または 123-4567",
	validation.Tel.Key:                  "03-1234-5678 など",
	validation.Fax.Key:                  "03-1234-5678 など",
	validation.AccountingCode.Key:       "半角数字・ハイフン",
	validation.AreaCodeConfirmation.Key: "半角数字・ハイフン",
	validation.BranchNumber.Key:         "半角数字・ハイフン",
	validation.LabelZipCode.Key:         "1234567 または 123-4567",
}

// TemplateFields returns the columns of the blank workbook for entity.
func TemplateFields(entity config.Entity) ([]validation.Field, error) {
	switch entity {
	case config.EntityOffice:
		return validation.OfficeFields, nil
	case config.EntityPhone:
		return validation.PhoneFields, nil
	case config.EntityRouter:
		return validation.RouterFields, nil
	case config.EntityTablet:
		return validation.TabletFields, nil
	default:
		return nil, fmt.Errorf("unsupported entity: %q", entity)
	}
}

// WriteTemplate writes a blank import workbook for entity to path.
func WriteTemplate(path string, entity config.Entity) error {
	fields, err := TemplateFields(entity)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := templateSheets[entity]
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, sheet, validation.Labels(fields), nil, headerStyle); err != nil {
		return err
	}

	if entity == config.EntityOffice {
		hints := make([]string, len(fields))
		for i, field := range fields {
			hints[i] = officeHints[field.Key]
		}
		if err := setRow(f, sheet, 2, hints); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(fields))
	if err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", last, 18)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template %s: %w", path, err)
	}
	return nil
}

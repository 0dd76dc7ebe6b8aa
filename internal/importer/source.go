package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/csvparser"
	"github.com/ginjaninja78/asset-import/internal/types"
	"github.com/ginjaninja78/asset-import/internal/xlsxparser"
)

// ReadSheet reads an import file with the layout of tmpl. The reader is
// chosen by file extension.
func ReadSheet(path string, tmpl *config.TemplateConfig) (*types.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsxparser.Parse(path, xlsxparser.Options{
			Sheet:        tmpl.Sheet,
			HeaderRow:    tmpl.HeaderRow,
			DataStartRow: tmpl.DataStartRow,
		})
	case ".csv":
		return csvparser.Parse(path, csvparser.Options{
			Delimiter:    tmpl.CSVSettings.Delimiter,
			Encoding:     tmpl.CSVSettings.Encoding,
			HeaderRow:    tmpl.HeaderRow,
			DataStartRow: tmpl.DataStartRow,
		})
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

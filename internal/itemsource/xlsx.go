// =============================================================================
// UPD XML Generator - XLSX Item Source
// =============================================================================
//
// Reads the goods/services table from an XLSX workbook. The header row is the
// first row of the selected sheet; by default the workbook's first sheet is
// used, which matches how accounting systems export a single table.
//
// =============================================================================

package itemsource

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/glavbuh/updgen/internal/upd"
)

// LoadXLSX reads line items from an XLSX workbook. An empty sheetName selects
// the workbook's first sheet.
func LoadXLSX(path, sheetName string) ([]upd.Item, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open items workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("items workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}

	return rowsToItems(rows[0], rows[1:]), nil
}

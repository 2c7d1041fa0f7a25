// =============================================================================
// UPD XML Generator - Line Item Sources
// =============================================================================
//
// Line items can be supplied out-of-band instead of inline YAML: accounting
// departments usually export the goods/services table as CSV or XLSX. Both
// loaders share one header convention - the column names are the same Russian
// keys the YAML table uses - and one post-processing step that fills missing
// cost columns from quantity and price.
//
// SUPPORTED COLUMNS:
//   НомСтр, Товар, ОКЕИ, НаимЕдИзм, Кол, Цена, СтоимостьБезНДС, НДС,
//   Стоимость, ПрТовРаб, ИД
//
// Unknown columns are ignored so exports with extra bookkeeping columns load
// without preprocessing.
//
// =============================================================================

package itemsource

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/glavbuh/updgen/internal/upd"
)

// Load reads line items from a file, selecting the parser by extension.
// Supported extensions: .csv, .xlsx.
func Load(path string) ([]upd.Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, DefaultCSVSettings())
	case ".xlsx":
		return LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("unsupported items file type: %s", filepath.Ext(path))
	}
}

// setColumn assigns one cell value to the item field named by the header.
// Unknown headers are skipped.
func setColumn(item *upd.Item, header, value string) {
	switch strings.TrimSpace(header) {
	case "НомСтр":
		item.LineNumber = value
	case "Товар":
		item.Name = value
	case "ОКЕИ":
		item.UnitCode = value
	case "НаимЕдИзм":
		item.UnitName = value
	case "Кол":
		item.Quantity = value
	case "Цена":
		item.Price = value
	case "СтоимостьБезНДС":
		item.CostWithoutVAT = value
	case "НДС":
		item.VATRate = value
	case "Стоимость":
		item.CostWithVAT = value
	case "ПрТовРаб":
		item.ProductTypeCode = value
	case "ИД":
		item.ItemID = value
	}
}

// fillCosts computes missing cost columns. СтоимостьБезНДС defaults to
// Кол x Цена when both parse as decimals; Стоимость defaults to
// СтоимостьБезНДС, which is exact under the non-taxable regime the format
// supports. Values the export already carries are never recomputed.
func fillCosts(item *upd.Item) {
	if item.CostWithoutVAT == "" && item.Quantity != "" && item.Price != "" {
		qty, errQ := decimal.NewFromString(item.Quantity)
		price, errP := decimal.NewFromString(item.Price)
		if errQ == nil && errP == nil {
			item.CostWithoutVAT = qty.Mul(price).StringFixed(2)
		}
	}
	if item.CostWithVAT == "" && item.CostWithoutVAT != "" {
		item.CostWithVAT = item.CostWithoutVAT
	}
}

// rowsToItems converts header + data rows into items, numbering unnumbered
// lines sequentially.
func rowsToItems(headers []string, rows [][]string) []upd.Item {
	items := make([]upd.Item, 0, len(rows))

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		var item upd.Item
		for col, header := range headers {
			if col < len(row) {
				setColumn(&item, header, strings.TrimSpace(row[col]))
			}
		}

		if item.LineNumber == "" {
			item.LineNumber = fmt.Sprintf("%d", i+1)
		}
		fillCosts(&item)

		items = append(items, item)
	}

	return items
}

// isRowEmpty reports whether every cell in the row is blank.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

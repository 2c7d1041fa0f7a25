package itemsource

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeXLSX creates a workbook with the given rows on the default sheet and
// returns its path.
func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "items.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSXReadsItems(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"НомСтр", "Товар", "ОКЕИ", "Кол", "Цена", "СтоимостьБезНДС", "НДС", "Стоимость"},
		{"1", "Консультационные услуги", "796", "1", "100000.00", "100000.00", "0", "100000.00"},
	})

	items, err := LoadXLSX(path, "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "1", items[0].LineNumber)
	assert.Equal(t, "Консультационные услуги", items[0].Name)
	assert.Equal(t, "100000.00", items[0].CostWithVAT)
	assert.Equal(t, "0", items[0].VATRate)
}

func TestLoadXLSXComputesMissingCosts(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"Товар", "Кол", "Цена"},
		{"Услуга", "2", "750.25"},
	})

	items, err := LoadXLSX(path, "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "1500.50", items[0].CostWithoutVAT)
	assert.Equal(t, "1500.50", items[0].CostWithVAT)
}

func TestLoadXLSXExplicitSheetName(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Таблица")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Таблица", "A1", &[]interface{}{"Товар"}))
	require.NoError(t, f.SetSheetRow("Таблица", "A2", &[]interface{}{"Услуга"}))

	path := filepath.Join(t.TempDir(), "items.xlsx")
	require.NoError(t, f.SaveAs(path))

	items, err := LoadXLSX(path, "Таблица")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Услуга", items[0].Name)
}

func TestLoadXLSXFailsOnMissingSheet(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{{"Товар"}})

	_, err := LoadXLSX(path, "Нет такого листа")
	require.Error(t, err)
}

func TestLoadXLSXFailsOnMissingFile(t *testing.T) {
	_, err := LoadXLSX(filepath.Join(t.TempDir(), "absent.xlsx"), "")
	require.Error(t, err)
}

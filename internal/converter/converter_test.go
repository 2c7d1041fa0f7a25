package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sampleConfig = `
upd_head:
  guid_doc: "6b9d0c43-8c7f-4f5a-9c2e-3d1b5a7e9f01"
  upd_number: "1"
  upd_date_yyyymmdd: "20260106"
  upd_date_russian: "06.01.2026"
  СтоимВсего: "100000.00"
  СтоимБезНДСВсего: "100000.00"
  СумНал: "00.00"
upd_buyer:
  guid: "7723432423_772301001"
  НаимОрг: "ООО Ромашка"
  ИНН: "7723432423"
  КПП: "772301001"
  Город: "Москва"
upd_seller:
  guid: "798374534985_0"
  НаимОрг: "Иванов Иван Иванович"
  ИНН: "798374534985"
  АдрТекст: "г. Москва, ул. Тверская, д. 1"
  Фамилия: "Иванов"
  Имя: "Иван"
  Отчество: "Иванович"
upd_table:
  - НомСтр: "1"
    Товар: "Консультационные услуги"
    ОКЕИ: "796"
    Кол: "1"
    Цена: "100000.00"
    СтоимостьБезНДС: "100000.00"
    НДС: "0"
    Стоимость: "100000.00"
upd_docs:
  - РеквНаимДок: "Договор"
    РеквНомерДок: "123"
    РеквДатаДок: "01.01.2026"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunGeneratesDocument(t *testing.T) {
	outputDir := t.TempDir()
	configPath := writeConfig(t, sampleConfig)

	result := New(configPath, Options{OutputDir: outputDir}).Run()
	require.NoError(t, result.Error)
	require.True(t, result.Success)

	assert.Equal(t, configPath, result.ConfigPath)
	assert.Equal(t, 1, result.Stats.Items)
	assert.Equal(t, 1, result.Stats.BasisDocuments)
	assert.Zero(t, result.Stats.Warnings)

	assert.Equal(t, outputDir, filepath.Dir(result.OutputFile))
	assert.Equal(t,
		"ON_NSCHFDOPPR_7723432423_772301001_798374534985_0_20260106_"+
			"6b9d0c43-8c7f-4f5a-9c2e-3d1b5a7e9f01_0_0_0_0_0_00.xml",
		filepath.Base(result.OutputFile))

	raw, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)

	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	require.NoError(t, err)
	content := string(decoded)

	assert.True(t, strings.HasPrefix(content, `<?xml version="1.0" encoding="windows-1251"?>`))
	assert.Contains(t, content, `<Файл`)
	assert.Contains(t, content, `ВерсФорм="5.03"`)
	assert.Contains(t, content, `НомерДок="1"`)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	outputDir := t.TempDir()
	configPath := writeConfig(t, sampleConfig)

	result := New(configPath, Options{OutputDir: outputDir, DryRun: true}).Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Empty(t, result.OutputFile)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunReportsMissingConfig(t *testing.T) {
	result := New(filepath.Join(t.TempDir(), "absent.yaml"), Options{OutputDir: t.TempDir()}).Run()
	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "failed to load configuration")
}

func TestRunReportsBuilderValidationErrors(t *testing.T) {
	badConfig := strings.Replace(sampleConfig, `upd_date_russian: "06.01.2026"`,
		`upd_date_russian: "07.01.2026"`, 1)

	result := New(writeConfig(t, badConfig), Options{OutputDir: t.TempDir()}).Run()
	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "different calendar days")
}

func TestRunExternalItemsReplaceInlineTable(t *testing.T) {
	outputDir := t.TempDir()

	itemsPath := filepath.Join(t.TempDir(), "items.csv")
	itemsCSV := "Товар,Кол,Цена,НДС\nУслуга А,1,100.00,0\nУслуга Б,2,200.00,0\n"
	require.NoError(t, os.WriteFile(itemsPath, []byte(itemsCSV), 0644))

	result := New(writeConfig(t, sampleConfig), Options{
		OutputDir: outputDir,
		ItemsFile: itemsPath,
	}).Run()
	require.NoError(t, result.Error)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.Items)

	raw, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	require.NoError(t, err)

	content := string(decoded)
	assert.Contains(t, content, `НаимТов="Услуга А"`)
	assert.Contains(t, content, `НаимТов="Услуга Б"`)
	assert.NotContains(t, content, "Консультационные услуги")
	assert.Contains(t, content, `КолНеттоВс="2"`)
}

func TestRunCountsAdvisoryWarnings(t *testing.T) {
	noTable := strings.Replace(sampleConfig, "upd_table:", "unused_table:", 1)

	result := New(writeConfig(t, noTable), Options{OutputDir: t.TempDir()}).Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Stats.Warnings)
	assert.Zero(t, result.Stats.Items)
}

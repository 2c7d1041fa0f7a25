package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes YAML content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

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
  БанкРекв: "40802810000000000001"
  НаимБанк: "АО Банк"
  БИК: "044525225"
  КорСчет: "30101810400000000225"
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

func TestLoadParsesAllSections(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "6b9d0c43-8c7f-4f5a-9c2e-3d1b5a7e9f01", doc.Head.DocGUID)
	assert.Equal(t, "20260106", doc.Head.DateYYYYMMDD)
	assert.Equal(t, "06.01.2026", doc.Head.DateRussian)
	assert.Equal(t, "100000.00", doc.Head.TotalWithVAT)

	assert.Equal(t, "ООО Ромашка", doc.Buyer.Name)
	assert.Equal(t, "7723432423", doc.Buyer.INN)
	assert.Equal(t, "Москва", doc.Buyer.City)

	assert.Equal(t, "798374534985", doc.Seller.INN)
	assert.Equal(t, "г. Москва, ул. Тверская, д. 1", doc.Seller.AddressText)
	assert.Equal(t, "40802810000000000001", doc.Seller.BankAccount)
	assert.Equal(t, "Иванов", doc.Seller.Surname)

	require.Len(t, doc.Table, 1)
	assert.Equal(t, "Консультационные услуги", doc.Table[0].Name)
	assert.Equal(t, "0", doc.Table[0].VATRate)

	require.Len(t, doc.Docs, 1)
	assert.Equal(t, "Договор", doc.Docs[0].Name)
}

func TestLoadAutofillsMissingDocumentGUID(t *testing.T) {
	config := `
upd_head:
  upd_number: "1"
upd_buyer:
  ИНН: "7723432423"
upd_seller:
  ИНН: "798374534985"
`
	doc, err := Load(writeConfig(t, config))
	require.NoError(t, err)

	_, err = uuid.Parse(doc.Head.DocGUID)
	assert.NoError(t, err, "autofilled guid_doc must be a well-formed UUID")
}

func TestLoadRejectsMalformedDocumentGUID(t *testing.T) {
	config := `
upd_head:
  guid_doc: "not-a-uuid"
`
	_, err := Load(writeConfig(t, config))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guid_doc")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "upd_head: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

// =============================================================================
// ADVISORY VALIDATION
// =============================================================================

func TestValidateCleanConfigHasNoWarnings(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Empty(t, doc.Validate())
}

func TestValidateWarnsOnEmptyTable(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	doc.Table = nil

	warnings := doc.Validate()
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "upd_table is empty")
}

func TestValidateWarnsOnMissingSignerName(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	doc.Seller.Surname = ""
	doc.Seller.GivenName = ""

	warnings := doc.Validate()
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "signer")
}

func TestValidateWarnsOnTotalsMismatch(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	doc.Head.TotalWithVAT = "99999.00"

	warnings := doc.Validate()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "does not match")
}

func TestValidateSkipsTotalsCheckOnUnparseableFigures(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	doc.Head.TotalWithVAT = "сто тысяч"

	assert.Empty(t, doc.Validate())
}

// =============================================================================
// CONVERSION TO BUILDER RECORDS
// =============================================================================

func TestConversionToBuilderRecords(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	head := doc.Header()
	assert.Equal(t, "20260106", head.DateYYYYMMDD)
	assert.Equal(t, "6b9d0c43-8c7f-4f5a-9c2e-3d1b5a7e9f01", head.DocGUID)

	buyer := doc.BuyerParty()
	assert.Equal(t, "7723432423", buyer.INN)
	assert.True(t, buyer.IsLegalEntity())
	assert.Equal(t, "Москва", buyer.Address.City)

	seller := doc.SellerParty()
	assert.True(t, seller.IsIndividualEntrepreneur())
	assert.Equal(t, "г. Москва, ул. Тверская, д. 1", seller.Address.Text)
	assert.Equal(t, "40802810000000000001", seller.Bank.AccountNumber)
	assert.Equal(t, "Иванов", seller.Signer.Surname)

	items := doc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Консультационные услуги", items[0].Name)

	docs := doc.BasisDocuments()
	require.Len(t, docs, 1)
	assert.Equal(t, "Договор", docs[0].Name)
	assert.Equal(t, "123", docs[0].Number)
}

func TestBasisDocumentAliasKeysLoad(t *testing.T) {
	config := `
upd_docs:
  - НаимДок: "Счет"
    НомОсн: "77"
    ДатаОсн: "05.01.2026"
`
	doc, err := Load(writeConfig(t, config))
	require.NoError(t, err)

	docs := doc.BasisDocuments()
	require.Len(t, docs, 1)
	assert.Equal(t, "Счет", docs[0].NameAlt2)
	assert.Equal(t, "77", docs[0].NumberAlt)
	assert.Equal(t, "05.01.2026", docs[0].DateAlt)
}

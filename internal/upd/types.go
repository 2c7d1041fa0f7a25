// =============================================================================
// UPD XML Generator - Document Records
// =============================================================================
//
// This file defines the five structured inputs the builder accepts (header,
// buyer, seller, line items, basis documents) and enumerates every default
// value in one place. All monetary and quantity fields are decimal strings
// that pass through to the XML verbatim - the builder never reformats them.
//
// =============================================================================

package upd

import "strings"

// =============================================================================
// DEFAULTS
// =============================================================================
// Every optional field with a default is listed here, once, instead of being
// defaulted ad hoc at each rendering site.

const (
	// Header defaults.
	DefaultInfoTime         = "12.00.01"
	DefaultOperationContent = "Услуги оказаны в полном объеме"
	DefaultSignerPosition   = "Операционный директор"
	DefaultExchangeRate     = "1.00"
	DefaultInvoiceKind      = "Реализация"

	// Free-text address defaults.
	DefaultCountryCode = "643"
	DefaultCountryName = "РОССИЯ"

	// Line item defaults.
	DefaultLineNumber      = "1"
	DefaultUnitName        = "шт"
	DefaultQuantity        = "1"
	DefaultPrice           = "0.00"
	DefaultCost            = "0.00"
	DefaultProductTypeCode = "3"
)

// =============================================================================
// HEADER
// =============================================================================

// Header holds transaction-level identifiers and totals.
//
// The two date fields carry the same calendar date in two mandated textual
// forms; the builder verifies they agree. Totals are decimal strings rendered
// verbatim into the totals block.
type Header struct {
	// DateYYYYMMDD is the document date in strict "YYYYMMDD" form.
	DateYYYYMMDD string

	// DateRussian is the same date in strict "DD.MM.YYYY" form.
	DateRussian string

	// Number is the document number (НомерДок).
	Number string

	// DocGUID is the document's unique identifier, used in the file name.
	DocGUID string

	// TotalWithVAT is the total cost including VAT (СтоимВсего).
	TotalWithVAT string

	// TotalWithoutVAT is the total cost excluding VAT (СтоимБезНДСВсего).
	TotalWithoutVAT string

	// TotalVAT is the total VAT amount (СумНал). Accepted for completeness;
	// the totals block renders the fixed non-taxable marker regardless.
	TotalVAT string

	// InfoTime is the information time attribute (ВремИнфПр).
	// Default: "12.00.01".
	InfoTime string

	// OperationContent describes the operation (СодОпер).
	// Default: "Услуги оказаны в полном объеме".
	OperationContent string

	// SignerPosition is the signer's position title (Должность).
	// Default: "Операционный директор".
	SignerPosition string

	// ExchangeRate is the currency exchange rate (КурсВал). Default: "1.00".
	ExchangeRate string

	// InvoiceKind (ВидСчета) is accepted with its documented default but is
	// not rendered into the XML, matching the reference format.
	InvoiceKind string
}

// withDefaults returns a copy of the header with unset optionals defaulted.
func (h Header) withDefaults() Header {
	if h.InfoTime == "" {
		h.InfoTime = DefaultInfoTime
	}
	if h.OperationContent == "" {
		h.OperationContent = DefaultOperationContent
	}
	if h.SignerPosition == "" {
		h.SignerPosition = DefaultSignerPosition
	}
	if h.ExchangeRate == "" {
		h.ExchangeRate = DefaultExchangeRate
	}
	if h.InvoiceKind == "" {
		h.InvoiceKind = DefaultInvoiceKind
	}
	return h
}

// =============================================================================
// PARTY (BUYER / SELLER)
// =============================================================================

// Party describes one side of the transaction.
//
// The tax identifier length is the sole discriminant between the two identity
// shapes: 10 digits renders СвЮЛУч (legal entity), 12 digits renders СвИП
// (individual entrepreneur). Any other length is rejected at construction.
type Party struct {
	// GUID identifies the party in the output file name
	// (conventionally "ИНН_КПП").
	GUID string

	// Name is the organization name, or the full personal name for an
	// individual entrepreneur (split into surname/given/patronymic tokens).
	Name string

	// INN is the tax identifier: 10 digits for a legal entity, 12 for an
	// individual entrepreneur. No checksum validation is performed.
	INN string

	// KPP is the tax registration code. Rendered even when empty for legal
	// entities, as the format requires the attribute.
	KPP string

	// OKPO is optional; the attribute is omitted when empty.
	OKPO string

	Address Address

	// Bank details are rendered for sellers only.
	Bank BankDetails

	// Signer carries the seller's signer name parts.
	Signer PersonName
}

// IsLegalEntity reports whether the party renders the legal-entity shape.
func (p Party) IsLegalEntity() bool { return len(p.INN) == 10 }

// IsIndividualEntrepreneur reports whether the party renders the СвИП shape.
func (p Party) IsIndividualEntrepreneur() bool { return len(p.INN) == 12 }

// NameParts splits the display name into surname, given name and patronymic.
// Missing tokens come back as empty strings; extra tokens are ignored.
func (p Party) NameParts() PersonName {
	parts := strings.Fields(p.Name)
	var n PersonName
	if len(parts) > 0 {
		n.Surname = parts[0]
	}
	if len(parts) > 1 {
		n.GivenName = parts[1]
	}
	if len(parts) > 2 {
		n.Patronymic = parts[2]
	}
	return n
}

// Address is either structured (Russian) or free-text. A non-empty Text
// selects the free-text shape (АдрИнф); otherwise the structured shape (АдрРФ)
// is rendered with only the supplied fields.
type Address struct {
	// Structured form. Absent fields are omitted from the output, not
	// emitted empty.
	PostalCode string // Индекс
	RegionCode string // КодРегион
	RegionName string // НаимРегион
	District   string // Район
	City       string // Город
	Street     string // Улица
	Building   string // Дом
	Block      string // Корпус
	Apartment  string // Кварт

	// Free-text form.
	CountryCode string // КодСтр, default "643"
	CountryName string // НаимСтран, default "РОССИЯ"
	Text        string // АдрТекст; non-empty selects this form
}

// BankDetails holds the seller's bank block. The block is rendered when the
// account number is present; the nested СвБанк element is rendered when any
// of the bank-identity fields is present.
type BankDetails struct {
	AccountNumber string // НомерСчета
	BankName      string // НаимБанк
	BIK           string // БИК
	CorrAccount   string // КорСчет
}

func (b BankDetails) hasBankIdentity() bool {
	return b.BankName != "" || b.BIK != "" || b.CorrAccount != ""
}

// PersonName holds the three-part Russian personal name.
type PersonName struct {
	Surname    string // Фамилия
	GivenName  string // Имя
	Patronymic string // Отчество
}

// =============================================================================
// LINE ITEM
// =============================================================================

// Item is one row of the goods/services table. All values are strings and
// pass through verbatim; defaults are applied once at construction.
type Item struct {
	LineNumber     string // НомСтр, default "1"
	Name           string // НаимТов
	UnitCode       string // ОКЕИ_Тов
	UnitName       string // НаимЕдИзм, default "шт"
	Quantity       string // КолТов, default "1"
	Price          string // ЦенаТов, default "0.00"
	CostWithoutVAT string // СтТовБезНДС, default "0.00"

	// VATRate is the raw tax-rate value. The sentinels "0", "0.00", "00.00"
	// and the empty string (after trimming) render the fixed "без НДС"
	// marker; anything else passes through unchanged.
	VATRate string

	CostWithVAT string // СтТовУчНал, default "0.00"

	// ProductTypeCode fills ДопСведТов/ПрТовРаб. Default "3" (service).
	ProductTypeCode string

	// ItemID, when present, adds an ИнфПолФХЖ2 identification sub-block.
	ItemID string
}

// nonTaxableSentinels are the raw VAT-rate values that mean "non-taxable".
var nonTaxableSentinels = map[string]struct{}{
	"": {}, "0": {}, "0.00": {}, "00.00": {},
}

// taxRate resolves the НалСт attribute value for the item.
func (it Item) taxRate() string {
	if _, ok := nonTaxableSentinels[strings.TrimSpace(it.VATRate)]; ok {
		return markerNoVAT
	}
	return it.VATRate
}

// withDefaults returns a copy of the item with unset optionals defaulted.
func (it Item) withDefaults() Item {
	if it.LineNumber == "" {
		it.LineNumber = DefaultLineNumber
	}
	if it.UnitName == "" {
		it.UnitName = DefaultUnitName
	}
	if it.Quantity == "" {
		it.Quantity = DefaultQuantity
	}
	if it.Price == "" {
		it.Price = DefaultPrice
	}
	if it.CostWithoutVAT == "" {
		it.CostWithoutVAT = DefaultCost
	}
	if it.CostWithVAT == "" {
		it.CostWithVAT = DefaultCost
	}
	if it.ProductTypeCode == "" {
		it.ProductTypeCode = DefaultProductTypeCode
	}
	return it
}

// =============================================================================
// BASIS DOCUMENT
// =============================================================================

// BasisDocument references a document the transfer is based on. Each field
// accepts alias keys because calling systems name them differently; the
// resolver applies one fixed precedence order per field.
type BasisDocument struct {
	Name     string // РеквНаимДок (primary)
	NameAlt  string // НаимОсн (first alias)
	NameAlt2 string // НаимДок (second alias)

	Number    string // РеквНомерДок (primary)
	NumberAlt string // НомОсн (alias)

	Date    string // РеквДатаДок (primary)
	DateAlt string // ДатаОсн (alias)
}

// firstNonEmpty is the shared alias resolver: the first non-empty candidate
// wins.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func (d BasisDocument) resolveName() string {
	return firstNonEmpty(d.Name, d.NameAlt, d.NameAlt2)
}

func (d BasisDocument) resolveNumber() string {
	return firstNonEmpty(d.Number, d.NumberAlt)
}

// resolveDate falls back to the transfer date, never to an empty string.
func (d BasisDocument) resolveDate(transferDate string) string {
	return firstNonEmpty(d.Date, d.DateAlt, transferDate)
}

// =============================================================================
// UPD XML Generator - Document Configuration
// =============================================================================
//
// This module loads one document configuration from a YAML file. The file
// holds the five sections the builder consumes (upd_head, upd_buyer,
// upd_seller, upd_table, upd_docs) under the same Russian keys the upstream
// accounting exports use, so a config produced for the original toolchain
// loads unchanged.
//
// CONFIGURATION FILE SHAPE:
//
//   upd_head:
//     guid_doc: "6b9d0c43-..."           # autofilled when absent
//     upd_number: "1"
//     upd_date_yyyymmdd: "20260106"
//     upd_date_russian: "06.01.2026"
//     СтоимВсего: "100000.00"
//     СтоимБезНДСВсего: "100000.00"
//     СумНал: "00.00"
//   upd_buyer:  { guid, НаимОрг, ИНН, КПП, Индекс, ... }
//   upd_seller: { ..., БанкРекв, НаимБанк, БИК, КорСчет, Фамилия, Имя, Отчество }
//   upd_table:  [ { НомСтр, Товар, ОКЕИ, Кол, Цена, ... } ]
//   upd_docs:   [ { РеквНаимДок, РеквНомерДок, РеквДатаДок } ]
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/glavbuh/updgen/internal/upd"
)

// Document is one complete document configuration: everything a single
// generation run needs.
type Document struct {
	Head   HeadSection    `yaml:"upd_head"`
	Buyer  PartySection   `yaml:"upd_buyer"`
	Seller PartySection   `yaml:"upd_seller"`
	Table  []ItemSection  `yaml:"upd_table"`
	Docs   []BasisSection `yaml:"upd_docs"`
}

// HeadSection mirrors the upd_head keys of the upstream export format.
type HeadSection struct {
	DocGUID          string `yaml:"guid_doc"`
	Number           string `yaml:"upd_number"`
	DateYYYYMMDD     string `yaml:"upd_date_yyyymmdd"`
	DateRussian      string `yaml:"upd_date_russian"`
	TotalWithVAT     string `yaml:"СтоимВсего"`
	TotalWithoutVAT  string `yaml:"СтоимБезНДСВсего"`
	TotalVAT         string `yaml:"СумНал"`
	InfoTime         string `yaml:"ВремИнфПр"`
	OperationContent string `yaml:"СодОпер"`
	SignerPosition   string `yaml:"Должность"`
	ExchangeRate     string `yaml:"КурсВал"`
	InvoiceKind      string `yaml:"ВидСчета"`
}

// PartySection mirrors the upd_buyer / upd_seller keys. Bank and signer
// fields are meaningful for sellers only.
type PartySection struct {
	GUID string `yaml:"guid"`
	Name string `yaml:"НаимОрг"`
	INN  string `yaml:"ИНН"`
	KPP  string `yaml:"КПП"`
	OKPO string `yaml:"ОКПО"`

	PostalCode string `yaml:"Индекс"`
	RegionCode string `yaml:"КодРегион"`
	RegionName string `yaml:"НаимРегион"`
	District   string `yaml:"Район"`
	City       string `yaml:"Город"`
	Street     string `yaml:"Улица"`
	Building   string `yaml:"Дом"`
	Block      string `yaml:"Корпус"`
	Apartment  string `yaml:"Кварт"`

	CountryCode string `yaml:"КодСтр"`
	CountryName string `yaml:"НаимСтран"`
	AddressText string `yaml:"АдрТекст"`

	BankAccount string `yaml:"БанкРекв"`
	BankName    string `yaml:"НаимБанк"`
	BIK         string `yaml:"БИК"`
	CorrAccount string `yaml:"КорСчет"`

	Surname    string `yaml:"Фамилия"`
	GivenName  string `yaml:"Имя"`
	Patronymic string `yaml:"Отчество"`
}

// ItemSection mirrors one upd_table row.
type ItemSection struct {
	LineNumber      string `yaml:"НомСтр"`
	Name            string `yaml:"Товар"`
	UnitCode        string `yaml:"ОКЕИ"`
	UnitName        string `yaml:"НаимЕдИзм"`
	Quantity        string `yaml:"Кол"`
	Price           string `yaml:"Цена"`
	CostWithoutVAT  string `yaml:"СтоимостьБезНДС"`
	VATRate         string `yaml:"НДС"`
	CostWithVAT     string `yaml:"Стоимость"`
	ProductTypeCode string `yaml:"ПрТовРаб"`
	ItemID          string `yaml:"ИД"`
}

// BasisSection mirrors one upd_docs entry, alias keys included.
type BasisSection struct {
	Name     string `yaml:"РеквНаимДок"`
	NameAlt  string `yaml:"НаимОсн"`
	NameAlt2 string `yaml:"НаимДок"`

	Number    string `yaml:"РеквНомерДок"`
	NumberAlt string `yaml:"НомОсн"`

	Date    string `yaml:"РеквДатаДок"`
	DateAlt string `yaml:"ДатаОсн"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses a document configuration file. A missing document
// GUID is autofilled with a fresh UUID; a supplied GUID must be well-formed.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if doc.Head.DocGUID == "" {
		doc.Head.DocGUID = uuid.NewString()
	} else if _, err := uuid.Parse(doc.Head.DocGUID); err != nil {
		return nil, fmt.Errorf("invalid guid_doc %q: %w", doc.Head.DocGUID, err)
	}

	return &doc, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate returns human-readable warnings about suspicious but non-fatal
// conditions. Hard failures (dates, tax-id lengths) stay with the builder
// constructor; warnings never block generation.
func (d *Document) Validate() []string {
	var warnings []string

	if len(d.Table) == 0 {
		warnings = append(warnings, "upd_table is empty: the items table will contain only the totals row")
	}

	if d.Seller.Surname == "" && d.Seller.GivenName == "" {
		warnings = append(warnings, "seller has no signer name parts (Фамилия/Имя): signer blocks will carry empty names")
	}

	if w := d.checkTotals(); w != "" {
		warnings = append(warnings, w)
	}

	return warnings
}

// checkTotals cross-checks the header total against the sum of item costs.
// Unparseable values are skipped silently: the builder passes all figures
// through verbatim, so this is advisory only.
func (d *Document) checkTotals() string {
	declared, err := decimal.NewFromString(d.Head.TotalWithVAT)
	if err != nil {
		return ""
	}

	sum := decimal.Zero
	for _, it := range d.Table {
		cost, err := decimal.NewFromString(it.CostWithVAT)
		if err != nil {
			return ""
		}
		sum = sum.Add(cost)
	}

	if len(d.Table) > 0 && !sum.Equal(declared) {
		return fmt.Sprintf("header СтоимВсего=%s does not match the item sum %s",
			declared.StringFixed(2), sum.StringFixed(2))
	}
	return ""
}

// =============================================================================
// CONVERSION TO BUILDER RECORDS
// =============================================================================

// Header converts the head section to a builder record.
func (d *Document) Header() upd.Header {
	return upd.Header{
		DateYYYYMMDD:     d.Head.DateYYYYMMDD,
		DateRussian:      d.Head.DateRussian,
		Number:           d.Head.Number,
		DocGUID:          d.Head.DocGUID,
		TotalWithVAT:     d.Head.TotalWithVAT,
		TotalWithoutVAT:  d.Head.TotalWithoutVAT,
		TotalVAT:         d.Head.TotalVAT,
		InfoTime:         d.Head.InfoTime,
		OperationContent: d.Head.OperationContent,
		SignerPosition:   d.Head.SignerPosition,
		ExchangeRate:     d.Head.ExchangeRate,
		InvoiceKind:      d.Head.InvoiceKind,
	}
}

// BuyerParty converts the buyer section to a builder record.
func (d *Document) BuyerParty() upd.Party { return partyFromSection(d.Buyer) }

// SellerParty converts the seller section to a builder record.
func (d *Document) SellerParty() upd.Party { return partyFromSection(d.Seller) }

func partyFromSection(s PartySection) upd.Party {
	return upd.Party{
		GUID: s.GUID,
		Name: s.Name,
		INN:  s.INN,
		KPP:  s.KPP,
		OKPO: s.OKPO,
		Address: upd.Address{
			PostalCode:  s.PostalCode,
			RegionCode:  s.RegionCode,
			RegionName:  s.RegionName,
			District:    s.District,
			City:        s.City,
			Street:      s.Street,
			Building:    s.Building,
			Block:       s.Block,
			Apartment:   s.Apartment,
			CountryCode: s.CountryCode,
			CountryName: s.CountryName,
			Text:        s.AddressText,
		},
		Bank: upd.BankDetails{
			AccountNumber: s.BankAccount,
			BankName:      s.BankName,
			BIK:           s.BIK,
			CorrAccount:   s.CorrAccount,
		},
		Signer: upd.PersonName{
			Surname:    s.Surname,
			GivenName:  s.GivenName,
			Patronymic: s.Patronymic,
		},
	}
}

// Items converts the table section to builder records.
func (d *Document) Items() []upd.Item {
	items := make([]upd.Item, 0, len(d.Table))
	for _, s := range d.Table {
		items = append(items, upd.Item{
			LineNumber:      s.LineNumber,
			Name:            s.Name,
			UnitCode:        s.UnitCode,
			UnitName:        s.UnitName,
			Quantity:        s.Quantity,
			Price:           s.Price,
			CostWithoutVAT:  s.CostWithoutVAT,
			VATRate:         s.VATRate,
			CostWithVAT:     s.CostWithVAT,
			ProductTypeCode: s.ProductTypeCode,
			ItemID:          s.ItemID,
		})
	}
	return items
}

// BasisDocuments converts the docs section to builder records.
func (d *Document) BasisDocuments() []upd.BasisDocument {
	docs := make([]upd.BasisDocument, 0, len(d.Docs))
	for _, s := range d.Docs {
		docs = append(docs, upd.BasisDocument{
			Name:      s.Name,
			NameAlt:   s.NameAlt,
			NameAlt2:  s.NameAlt2,
			Number:    s.Number,
			NumberAlt: s.NumberAlt,
			Date:      s.Date,
			DateAlt:   s.DateAlt,
		})
	}
	return docs
}

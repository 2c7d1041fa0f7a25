// =============================================================================
// UPD XML Generator - Document Builder
// =============================================================================
//
// This module is the core transformation: it maps the five input records onto
// the fixed UPD element tree and writes one windows-1251 encoded XML file per
// Create call. The builder is stateless across calls, never mutates the
// caller's records, and holds no resources beyond the normalized date strings
// computed at construction.
//
// BUILD PIPELINE:
//   1. New: parse and cross-check the two header dates, validate tax-id
//      lengths, apply defaults.
//   2. Create: construct the tree, serialize to memory (indent + encoding),
//      ensure the output directory, write the file in one operation.
//
// =============================================================================

package upd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	layoutYYYYMMDD = "20060102"
	layoutRussian  = "02.01.2006"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options control builder behavior outside the fixed mapping rules.
type Options struct {
	// LenientIO reproduces the reference behavior of swallowing a failed
	// output-directory creation and writing to the process working directory
	// instead. The default (strict) propagates the error and writes nothing.
	LenientIO bool

	// Indent is the indentation unit for the human-readable output.
	// Default: "  " (two spaces).
	Indent string
}

// DefaultOptions returns the default builder options: strict I/O, two-space
// indentation.
func DefaultOptions() Options {
	return Options{
		LenientIO: false,
		Indent:    "  ",
	}
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder produces one UPD XML document from the five input records.
type Builder struct {
	head   Header
	buyer  Party
	seller Party
	items  []Item
	docs   []BasisDocument
	opts   Options

	// Normalized string forms of the header date, stored once at
	// construction and reused during tree building.
	dateYYYYMMDD string
	dateRussian  string
}

// New creates a Builder with default options. It fails with *DateFormatError
// if either header date does not parse under its mandated format or the two
// dates resolve to different calendar days, and with *ValidationError if a
// party's tax identifier length is neither 10 nor 12.
func New(head Header, buyer, seller Party, items []Item, docs []BasisDocument) (*Builder, error) {
	return NewWithOptions(head, buyer, seller, items, docs, DefaultOptions())
}

// NewWithOptions is New with explicit options.
func NewWithOptions(head Header, buyer, seller Party, items []Item, docs []BasisDocument, opts Options) (*Builder, error) {
	dateA, err := time.Parse(layoutYYYYMMDD, head.DateYYYYMMDD)
	if err != nil {
		return nil, &DateFormatError{
			Field:  "upd_date_yyyymmdd",
			Value:  head.DateYYYYMMDD,
			Reason: "expected YYYYMMDD",
		}
	}

	dateB, err := time.Parse(layoutRussian, head.DateRussian)
	if err != nil {
		return nil, &DateFormatError{
			Field:  "upd_date_russian",
			Value:  head.DateRussian,
			Reason: "expected DD.MM.YYYY",
		}
	}

	if !dateA.Equal(dateB) {
		return nil, &DateFormatError{
			Field:  "upd_date_yyyymmdd/upd_date_russian",
			Value:  head.DateYYYYMMDD + " vs " + head.DateRussian,
			Reason: "the two header dates denote different calendar days",
		}
	}

	if err := validateINN("buyer.ИНН", buyer.INN); err != nil {
		return nil, err
	}
	if err := validateINN("seller.ИНН", seller.INN); err != nil {
		return nil, err
	}

	if opts.Indent == "" {
		opts.Indent = "  "
	}

	withDefaults := make([]Item, len(items))
	for i, it := range items {
		withDefaults[i] = it.withDefaults()
	}

	// Inputs are copied into the builder; the caller's slices and records
	// are never mutated.
	docsCopy := make([]BasisDocument, len(docs))
	copy(docsCopy, docs)

	return &Builder{
		head:         head.withDefaults(),
		buyer:        buyer,
		seller:       seller,
		items:        withDefaults,
		docs:         docsCopy,
		opts:         opts,
		dateYYYYMMDD: dateA.Format(layoutYYYYMMDD),
		dateRussian:  dateB.Format(layoutRussian),
	}, nil
}

// validateINN rejects tax identifiers whose length selects no identity shape.
func validateINN(field, inn string) error {
	if len(inn) != 10 && len(inn) != 12 {
		return &ValidationError{
			Field:  field,
			Value:  inn,
			Reason: "tax identifier must be 10 digits (legal entity) or 12 digits (individual entrepreneur)",
		}
	}
	return nil
}

// FileName returns the output file name (without extension) following the
// fixed token-delimited pattern of the format.
func (b *Builder) FileName() string {
	return fmt.Sprintf("%s_%s_%s_%s_%s_%s",
		fileNamePrefix, b.buyer.GUID, b.seller.GUID, b.dateYYYYMMDD, b.head.DocGUID, fileNameSuffix)
}

// =============================================================================
// CREATE
// =============================================================================

// Create builds the document tree, serializes it with a windows-1251
// declaration and encoding, and writes it into outputDir. The whole document
// is rendered in memory first, so a failure at any stage leaves no partial
// file on disk. It returns the full path of the written file.
func (b *Builder) Create(outputDir string) (string, error) {
	fileName := b.FileName()

	data, err := marshalWindows1251(b.buildTree(fileName), b.opts.Indent)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		if !b.opts.LenientIO {
			return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
		// Lenient policy: fall back to the working directory, matching the
		// reference's defensive behavior.
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
		outputDir = wd
	}

	outPath := filepath.Join(outputDir, fileName+".xml")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, nil
}

// =============================================================================
// TREE CONSTRUCTION
// =============================================================================

// buildTree assembles the complete element tree in the mandated order.
func (b *Builder) buildTree(fileName string) *xmlFile {
	return &xmlFile{
		FileID:   fileName,
		Version:  formatVersion,
		Producer: producerName,
		Document: xmlDocument{
			KND:          documentKND,
			Function:     documentFunction,
			EconomicFact: documentKindText,
			DocumentName: documentKindText,
			InfoDate:     b.dateRussian,
			InfoTime:     b.head.InfoTime,
			ComposerName: b.seller.Name,
			InvoiceHeader: xmlInvoiceHeader{
				Number: b.head.Number,
				Date:   b.dateRussian,
				Seller: b.buildParty(b.seller, true),
				Buyer:  b.buildParty(b.buyer, false),
				Currency: xmlCurrency{
					Code: currencyCodeRUB,
					Name: currencyNameRUB,
					Rate: b.head.ExchangeRate,
				},
			},
			ItemsTable: b.buildItemsTable(),
			Transfer:   b.buildTransfer(),
			Signer: xmlSigner{
				Authority: signerAuthority,
				Position:  b.head.SignerPosition,
				Name:      personName(b.seller.Signer),
			},
		},
	}
}

// buildParty renders a party's identity, address and (for sellers) bank
// blocks. The tax-id length discriminates the identity shape; New has already
// rejected any other length.
func (b *Builder) buildParty(p Party, isSeller bool) xmlParty {
	out := xmlParty{OKPO: p.OKPO}

	switch {
	case p.IsLegalEntity():
		out.Identity.LegalEntity = &xmlLegalEntity{
			Name: p.Name,
			INN:  p.INN,
			KPP:  p.KPP,
		}
	case p.IsIndividualEntrepreneur():
		out.Identity.Entrepreneur = &xmlEntrepreneur{
			INN:  p.INN,
			Name: personName(p.NameParts()),
		}
	}

	out.Address = buildAddress(p.Address)

	if isSeller && p.Bank.AccountNumber != "" {
		bank := &xmlBank{AccountNumber: p.Bank.AccountNumber}
		if p.Bank.hasBankIdentity() {
			bank.BankIdentity = &xmlBankInfo{
				BankName:    p.Bank.BankName,
				BIK:         p.Bank.BIK,
				CorrAccount: p.Bank.CorrAccount,
			}
		}
		out.Bank = bank
	}

	return out
}

// buildAddress selects the free-text shape when address text is present,
// otherwise the structured shape with only the supplied fields.
func buildAddress(a Address) xmlAddress {
	if a.Text != "" {
		info := &xmlAddressInfo{
			CountryCode: firstNonEmpty(a.CountryCode, DefaultCountryCode),
			CountryName: firstNonEmpty(a.CountryName, DefaultCountryName),
			Text:        a.Text,
		}
		return xmlAddress{FreeText: info}
	}

	return xmlAddress{Structured: &xmlAddressRF{
		PostalCode: a.PostalCode,
		RegionCode: a.RegionCode,
		RegionName: a.RegionName,
		District:   a.District,
		City:       a.City,
		Street:     a.Street,
		Building:   a.Building,
		Block:      a.Block,
		Apartment:  a.Apartment,
	}}
}

// buildItemsTable renders every line item in input order followed by the
// totals row. The totals carry the header figures verbatim and the row count,
// not a summed quantity.
func (b *Builder) buildItemsTable() xmlItemsTable {
	table := xmlItemsTable{
		Items: make([]xmlItem, 0, len(b.items)),
		Totals: xmlTotals{
			TotalWithoutVAT: b.head.TotalWithoutVAT,
			TotalWithVAT:    b.head.TotalWithVAT,
			ItemCount:       strconv.Itoa(len(b.items)),
			VAT:             xmlItemVAT{NoVAT: markerNoVAT},
		},
	}

	for _, it := range b.items {
		row := xmlItem{
			LineNumber:     it.LineNumber,
			Name:           it.Name,
			UnitCode:       it.UnitCode,
			UnitName:       it.UnitName,
			Quantity:       it.Quantity,
			Price:          it.Price,
			CostWithoutVAT: it.CostWithoutVAT,
			TaxRate:        it.taxRate(),
			CostWithVAT:    it.CostWithVAT,
			Extra:          xmlItemExtra{ProductTypeCode: it.ProductTypeCode},
			Excise:         xmlExcise{NoExcise: markerNoExcise},
			VAT:            xmlItemVAT{NoVAT: markerNoVAT},
		}
		if it.ItemID != "" {
			row.Identification = &xmlExtraField{Identifier: "ИД", Value: it.ItemID}
		}
		table.Items = append(table.Items, row)
	}

	return table
}

// buildTransfer renders the transfer block: operation content, basis
// documents in input order, and the transfer signer.
func (b *Builder) buildTransfer() xmlTransferInfo {
	transfer := xmlTransfer{
		OperationContent: b.head.OperationContent,
		OperationKind:    operationKindSale,
		Date:             b.dateRussian,
		TransferSigner: xmlTransferSigner{
			Employee: xmlSellerEmployee{
				Position: b.head.SignerPosition,
				Name:     personName(b.seller.Signer),
			},
		},
	}

	for _, d := range b.docs {
		transfer.BasisDocuments = append(transfer.BasisDocuments, xmlBasisDocument{
			Name:   d.resolveName(),
			Number: d.resolveNumber(),
			Date:   d.resolveDate(b.dateRussian),
		})
	}

	return xmlTransferInfo{Transfer: transfer}
}

func personName(n PersonName) xmlPersonName {
	return xmlPersonName{
		Surname:    n.Surname,
		GivenName:  n.GivenName,
		Patronymic: n.Patronymic,
	}
}

// =============================================================================
// UPD XML Generator - XML Tree Structures
// =============================================================================
//
// This file models the exact element tree of the UPD format (XSD v5.03).
// Element names, attribute names, attribute order and child order are
// contractual: downstream regulatory systems parse by exact name. Struct
// field order therefore mirrors the mandated attribute and element order,
// and optional branches are pointers so that absent blocks are omitted
// entirely rather than emitted empty.
//
// XML STRUCTURE:
//
//   <Файл ИдФайл="..." ВерсФорм="5.03" ВерсПрог="1С:Предприятие 8">
//     <Документ КНД="1115131" Функция="ДОП" ...>
//       <СвСчФакт НомерДок="..." ДатаДок="...">
//         <СвПрод> <ИдСв>...</ИдСв> <Адрес>...</Адрес> [<БанкРекв>] </СвПрод>
//         <СвПокуп> ... </СвПокуп>
//         <ДенИзм КодОКВ="643" НаимОКВ="Российский рубль" КурсВал="..."/>
//       </СвСчФакт>
//       <ТаблСчФакт> <СведТов .../>* <ВсегоОпл .../> </ТаблСчФакт>
//       <СвПродПер> <СвПер> <ОснПер/>* <СвЛицПер>...</СвЛицПер> </СвПер> </СвПродПер>
//       <Подписант> <ФИО/> </Подписант>
//     </Документ>
//   </Файл>
//
// =============================================================================

package upd

import "encoding/xml"

// Fixed regulatory constants of the v5.03 format.
const (
	formatVersion = "5.03"
	producerName  = "1С:Предприятие 8"

	documentKND      = "1115131"
	documentFunction = "ДОП"
	documentKindText = "Документ об отгрузке товаров (выполнении работ), " +
		"передаче имущественных прав (документ об оказании услуг)"

	currencyCodeRUB = "643"
	currencyNameRUB = "Российский рубль"

	operationKindSale = "Продажа"
	signerAuthority   = "4"

	markerNoVAT    = "без НДС"
	markerNoExcise = "без акциза"

	fileNamePrefix = "ON_NSCHFDOPPR"
	fileNameSuffix = "0_0_0_0_0_00"
)

// xmlFile is the root element.
type xmlFile struct {
	XMLName  xml.Name    `xml:"Файл"`
	FileID   string      `xml:"ИдФайл,attr"`
	Version  string      `xml:"ВерсФорм,attr"`
	Producer string      `xml:"ВерсПрог,attr"`
	Document xmlDocument `xml:"Документ"`
}

type xmlDocument struct {
	KND          string `xml:"КНД,attr"`
	Function     string `xml:"Функция,attr"`
	EconomicFact string `xml:"ПоФактХЖ,attr"`
	DocumentName string `xml:"НаимДокОпр,attr"`
	InfoDate     string `xml:"ДатаИнфПр,attr"`
	InfoTime     string `xml:"ВремИнфПр,attr"`
	ComposerName string `xml:"НаимЭконСубСост,attr"`

	InvoiceHeader xmlInvoiceHeader `xml:"СвСчФакт"`
	ItemsTable    xmlItemsTable    `xml:"ТаблСчФакт"`
	Transfer      xmlTransferInfo  `xml:"СвПродПер"`
	Signer        xmlSigner        `xml:"Подписант"`
}

type xmlInvoiceHeader struct {
	Number string `xml:"НомерДок,attr"`
	Date   string `xml:"ДатаДок,attr"`

	Seller   xmlParty    `xml:"СвПрод"`
	Buyer    xmlParty    `xml:"СвПокуп"`
	Currency xmlCurrency `xml:"ДенИзм"`
}

type xmlParty struct {
	OKPO     string     `xml:"ОКПО,attr,omitempty"`
	Identity xmlPartyID `xml:"ИдСв"`
	Address  xmlAddress `xml:"Адрес"`
	Bank     *xmlBank   `xml:"БанкРекв,omitempty"`
}

// xmlPartyID carries exactly one of the two identity shapes.
type xmlPartyID struct {
	LegalEntity  *xmlLegalEntity  `xml:"СвЮЛУч,omitempty"`
	Entrepreneur *xmlEntrepreneur `xml:"СвИП,omitempty"`
}

type xmlLegalEntity struct {
	Name string `xml:"НаимОрг,attr"`
	INN  string `xml:"ИННЮЛ,attr"`
	// KPP is rendered even when empty: the attribute itself is mandatory
	// for the legal-entity shape.
	KPP string `xml:"КПП,attr"`
}

type xmlEntrepreneur struct {
	INN  string        `xml:"ИННФЛ,attr"`
	Name xmlPersonName `xml:"ФИО"`
}

type xmlPersonName struct {
	Surname    string `xml:"Фамилия,attr"`
	GivenName  string `xml:"Имя,attr"`
	Patronymic string `xml:"Отчество,attr"`
}

// xmlAddress carries exactly one of the two address shapes.
type xmlAddress struct {
	FreeText   *xmlAddressInfo `xml:"АдрИнф,omitempty"`
	Structured *xmlAddressRF   `xml:"АдрРФ,omitempty"`
}

type xmlAddressInfo struct {
	CountryCode string `xml:"КодСтр,attr"`
	CountryName string `xml:"НаимСтран,attr"`
	Text        string `xml:"АдрТекст,attr"`
}

// xmlAddressRF emits only the structured fields the party actually supplies.
type xmlAddressRF struct {
	PostalCode string `xml:"Индекс,attr,omitempty"`
	RegionCode string `xml:"КодРегион,attr,omitempty"`
	RegionName string `xml:"НаимРегион,attr,omitempty"`
	District   string `xml:"Район,attr,omitempty"`
	City       string `xml:"Город,attr,omitempty"`
	Street     string `xml:"Улица,attr,omitempty"`
	Building   string `xml:"Дом,attr,omitempty"`
	Block      string `xml:"Корпус,attr,omitempty"`
	Apartment  string `xml:"Кварт,attr,omitempty"`
}

type xmlBank struct {
	AccountNumber string       `xml:"НомерСчета,attr"`
	BankIdentity  *xmlBankInfo `xml:"СвБанк,omitempty"`
}

type xmlBankInfo struct {
	BankName    string `xml:"НаимБанк,attr"`
	BIK         string `xml:"БИК,attr"`
	CorrAccount string `xml:"КорСчет,attr"`
}

type xmlCurrency struct {
	Code string `xml:"КодОКВ,attr"`
	Name string `xml:"НаимОКВ,attr"`
	Rate string `xml:"КурсВал,attr"`
}

type xmlItemsTable struct {
	Items  []xmlItem `xml:"СведТов"`
	Totals xmlTotals `xml:"ВсегоОпл"`
}

type xmlItem struct {
	LineNumber     string `xml:"НомСтр,attr"`
	Name           string `xml:"НаимТов,attr"`
	UnitCode       string `xml:"ОКЕИ_Тов,attr"`
	UnitName       string `xml:"НаимЕдИзм,attr"`
	Quantity       string `xml:"КолТов,attr"`
	Price          string `xml:"ЦенаТов,attr"`
	CostWithoutVAT string `xml:"СтТовБезНДС,attr"`
	TaxRate        string `xml:"НалСт,attr"`
	CostWithVAT    string `xml:"СтТовУчНал,attr"`

	Extra          xmlItemExtra   `xml:"ДопСведТов"`
	Excise         xmlExcise      `xml:"Акциз"`
	VAT            xmlItemVAT     `xml:"СумНал"`
	Identification *xmlExtraField `xml:"ИнфПолФХЖ2,omitempty"`
}

type xmlItemExtra struct {
	ProductTypeCode string `xml:"ПрТовРаб,attr"`
}

type xmlExcise struct {
	NoExcise string `xml:"БезАкциз"`
}

// xmlItemVAT is hardcoded to the non-taxable marker: taxed-item rendering is
// outside the supported regime of this format revision.
type xmlItemVAT struct {
	NoVAT string `xml:"БезНДС"`
}

type xmlExtraField struct {
	Identifier string `xml:"Идентиф,attr"`
	Value      string `xml:"Значен,attr"`
}

type xmlTotals struct {
	TotalWithoutVAT string `xml:"СтТовБезНДСВсего,attr"`
	TotalWithVAT    string `xml:"СтТовУчНалВсего,attr"`
	// ItemCount is the number of table rows, not a summed quantity.
	ItemCount string `xml:"КолНеттоВс,attr"`

	VAT xmlItemVAT `xml:"СумНалВсего"`
}

type xmlTransferInfo struct {
	Transfer xmlTransfer `xml:"СвПер"`
}

type xmlTransfer struct {
	OperationContent string `xml:"СодОпер,attr"`
	OperationKind    string `xml:"ВидОпер,attr"`
	Date             string `xml:"ДатаПер,attr"`

	BasisDocuments []xmlBasisDocument `xml:"ОснПер"`
	TransferSigner xmlTransferSigner  `xml:"СвЛицПер"`
}

type xmlBasisDocument struct {
	Name   string `xml:"РеквНаимДок,attr"`
	Number string `xml:"РеквНомерДок,attr"`
	Date   string `xml:"РеквДатаДок,attr"`
}

type xmlTransferSigner struct {
	Employee xmlSellerEmployee `xml:"РабОргПрод"`
}

type xmlSellerEmployee struct {
	Position string        `xml:"Должность,attr"`
	Name     xmlPersonName `xml:"ФИО"`
}

type xmlSigner struct {
	Authority string        `xml:"СпосПодтПолном,attr"`
	Position  string        `xml:"Должн,attr"`
	Name      xmlPersonName `xml:"ФИО"`
}

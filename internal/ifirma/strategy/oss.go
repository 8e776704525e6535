package strategy

import (
	"github.com/jonboulle/clockwork"

	"github.com/djweb/payments/internal/model"
)

// invoiceLanguages maps customer countries to iFirma invoice languages
// for OSS invoices. Unlisted countries get an English invoice.
var invoiceLanguages = map[string]string{
	"DE": "de", "AT": "de",
	"FR": "fr", "BE": "fr", "LU": "fr",
	"ES": "es",
	"IT": "it",
	"NL": "nl",
	"SE": "sv",
	"DK": "da",
	"FI": "fi",
	"PL": "pl",
}

// OSS issues fakturaoss invoices: EU consumers outside Poland, taxed
// at the destination country's VAT rate under the One-Stop-Shop scheme.
type OSS struct {
	clock clockwork.Clock
}

// NewOSS creates the OSS strategy
func NewOSS(clock clockwork.Clock) *OSS {
	return &OSS{clock: clock}
}

func (s *OSS) Endpoint() string {
	return "/fakturaoss.json"
}

func (s *OSS) Supports(req model.InvoiceRequest) bool {
	country := req.Customer.Address.Country
	return country.IsEU() && country.Code() != SellerCountry && !req.Customer.IsB2B()
}

func (s *OSS) BuildPayload(req model.InvoiceRequest) interface{} {
	today := s.clock.Now()
	country := req.Customer.Address.Country

	return OSSPayload{
		DataSprzedazy:           formatDate(req.SaleDate, today),
		FormatDatySprzedazy:     "DZN",
		DataWystawienia:         formatDate(req.IssueDate, today),
		Jezyk:                   languageForCountry(country.Code()),
		Waluta:                  req.Amount.Currency(),
		LiczOd:                  "BRT",
		RodzajPodpisuOdbiorcy:   "BWO",
		WidocznyNumerBdo:        false,
		SprzedazUslug:           true,
		UstalenieMiejscaUslugi1: "IP",
		UstalenieMiejscaUslugi2: "BillingAddress",
		KrajDostawy:             country.Code(),
		KrajWysylki:             SellerCountry,
		Pozycje:                 []Position{s.buildPosition(req)},
		Kontrahent:              s.buildContact(req),
	}
}

func (s *OSS) buildPosition(req model.InvoiceRequest) Position {
	country := req.Customer.Address.Country

	position := Position{
		NazwaPelna:      req.ProductName,
		NazwaPelnaObca:  req.ProductName,
		Jednostka:       "szt.",
		JednostkaObca:   "pcs",
		CenaJednostkowa: req.OriginalAmount.Amount().InexactFloat64(),
		Ilosc:           1,
		StawkaVat:       country.VATRate().InexactFloat64(),
		TypStawkiVat:    "POD",
	}
	if req.Discount != nil && req.Discount.Percentage().IsPositive() {
		rebate := req.Discount.Percentage().InexactFloat64()
		position.Rabat = &rebate
	}
	return position
}

func (s *OSS) buildContact(req model.InvoiceRequest) Contact {
	customer := req.Customer

	return Contact{
		Nazwa:       customer.FullName(),
		Kraj:        customer.Address.Country.Name(),
		Miejscowosc: customer.Address.City,
		KodPocztowy: customer.Address.PostalCode,
		Ulica:       customer.Address.Street,
		Email:       customer.Email,
	}
}

func languageForCountry(code string) string {
	if lang, ok := invoiceLanguages[code]; ok {
		return lang
	}
	return "en"
}

package strategy

import (
	"github.com/jonboulle/clockwork"

	"github.com/djweb/payments/internal/model"
)

// Export issues fakturaeksportuslug invoices for customers outside the
// EU. The country is resolved by display name and no VAT fields apply.
type Export struct {
	clock clockwork.Clock
}

// NewExport creates the non-EU export strategy
func NewExport(clock clockwork.Clock) *Export {
	return &Export{clock: clock}
}

func (s *Export) Endpoint() string {
	return "/fakturaeksportuslug.json"
}

func (s *Export) Supports(req model.InvoiceRequest) bool {
	country := req.Customer.Address.Country
	return !country.IsEU() && country.Code() != SellerCountry
}

func (s *Export) BuildPayload(req model.InvoiceRequest) interface{} {
	today := s.clock.Now()

	return ExportPayload{
		NazwaUslugi:                req.ProductName,
		UslugaSwiadczonaTrybArt28b: false,
		DataWystawienia:            formatDate(req.IssueDate, today),
		DataSprzedazy:              formatDate(req.SaleDate, today),
		FormatDatySprzedazy:        "DZN",
		DataObowiazkuPodatkowego:   formatDate(nil, today),
		SposobZaplaty:              "PRZ",
		Kontrahent:                 s.buildContact(req),
	}
}

func (s *Export) buildContact(req model.InvoiceRequest) Contact {
	customer := req.Customer

	return Contact{
		Nazwa:       customer.DisplayName(),
		Ulica:       customer.Address.Street,
		KodPocztowy: customer.Address.PostalCode,
		Kraj:        customer.Address.Country.Name(),
		Miejscowosc: customer.Address.City,
		Email:       customer.Email,
		Wojewodztwo: customer.Address.StateProvince,
	}
}

package strategy

import (
	"github.com/jonboulle/clockwork"

	"github.com/djweb/payments/internal/model"
)

// EUB2B issues fakturaeksportuslugue invoices: EU business customers
// outside Poland, invoiced under the art. 28b reverse-charge mechanism.
// VAT liability shifts to the buyer, so the payload carries no VAT line.
type EUB2B struct {
	clock clockwork.Clock
}

// NewEUB2B creates the EU reverse-charge strategy
func NewEUB2B(clock clockwork.Clock) *EUB2B {
	return &EUB2B{clock: clock}
}

func (s *EUB2B) Endpoint() string {
	return "/fakturaeksportuslugue.json"
}

func (s *EUB2B) Supports(req model.InvoiceRequest) bool {
	country := req.Customer.Address.Country
	return country.IsEU() && country.Code() != SellerCountry && req.Customer.IsB2B()
}

func (s *EUB2B) BuildPayload(req model.InvoiceRequest) interface{} {
	today := s.clock.Now()

	return EUB2BPayload{
		NazwaUslugi:              req.ProductName,
		Zaplacono:                req.Amount.Amount().InexactFloat64(),
		DataWystawienia:          formatDate(req.IssueDate, today),
		DataSprzedazy:            formatDate(req.SaleDate, today),
		FormatDatySprzedazy:      "DZN",
		DataObowiazkuPodatkowego: formatDate(nil, today),
		SposobZaplaty:            "PRZ",
		Kontrahent:               s.buildContact(req),
	}
}

func (s *EUB2B) buildContact(req model.InvoiceRequest) Contact {
	customer := req.Customer
	business := false

	contact := Contact{
		Nazwa:         customer.DisplayName(),
		Ulica:         customer.Address.Street,
		KodPocztowy:   customer.Address.PostalCode,
		KodKraju:      customer.Address.Country.Code(),
		Miejscowosc:   customer.Address.City,
		Email:         customer.Email,
		OsobaFizyczna: &business,
		Wojewodztwo:   customer.Address.StateProvince,
	}
	if customer.VatNumber != nil {
		contact.NIP = customer.VatNumber.String()
	}
	return contact
}

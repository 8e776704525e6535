package strategy

import (
	"github.com/jonboulle/clockwork"

	"github.com/djweb/payments/internal/model"
)

// Currency issues fakturawaluta invoices: Polish customers paying in a
// foreign currency. The payload is the domestic shape plus an explicit
// sale-type flag and currency.
type Currency struct {
	domestic *Domestic
}

// NewCurrency creates the foreign-currency strategy
func NewCurrency(clock clockwork.Clock) *Currency {
	return &Currency{domestic: NewDomestic(clock)}
}

func (s *Currency) Endpoint() string {
	return "/fakturawaluta.json"
}

func (s *Currency) Supports(req model.InvoiceRequest) bool {
	return req.Customer.Address.Country.Code() == SellerCountry &&
		req.Amount.Currency() != DomesticCurrency
}

func (s *Currency) BuildPayload(req model.InvoiceRequest) interface{} {
	payload := s.domestic.BuildPayload(req).(DomesticPayload)
	payload.TypSprzedazy = "KRAJOWA"
	payload.Waluta = req.Amount.Currency()
	return payload
}

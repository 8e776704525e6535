package strategy

import (
	"github.com/jonboulle/clockwork"

	"github.com/djweb/payments/internal/model"
)

// domesticVATRate is the fixed Polish standard rate applied to
// domestic invoices
const domesticVATRate = 0.23

// paymentMethodCodes maps request payment-method tags to iFirma codes.
// Unknown tags are invoiced as a bank transfer.
var paymentMethodCodes = map[string]string{
	model.PaymentMethodCash:   "GTK",
	model.PaymentMethodCard:   "KAR",
	model.PaymentMethodPayPal: "PAL",
	model.PaymentMethodP24:    "P24",
}

// Domestic issues fakturakraj invoices: Polish customers paying in PLN.
type Domestic struct {
	clock clockwork.Clock
}

// NewDomestic creates the domestic strategy
func NewDomestic(clock clockwork.Clock) *Domestic {
	return &Domestic{clock: clock}
}

func (s *Domestic) Endpoint() string {
	return "/fakturakraj.json"
}

func (s *Domestic) Supports(req model.InvoiceRequest) bool {
	return req.Customer.Address.Country.Code() == SellerCountry &&
		req.Amount.Currency() == DomesticCurrency
}

func (s *Domestic) BuildPayload(req model.InvoiceRequest) interface{} {
	today := s.clock.Now()

	return DomesticPayload{
		Zaplacono:             req.Amount.Amount().InexactFloat64(),
		LiczOd:                "BRT",
		SplitPayment:          false,
		DataWystawienia:       formatDate(req.IssueDate, today),
		DataSprzedazy:         formatDate(req.SaleDate, today),
		FormatDatySprzedazy:   "DZN",
		TerminPlatnosci:       formatDate(nil, today),
		SposobZaplaty:         mapPaymentMethod(req.PaymentMethod),
		RodzajPodpisuOdbiorcy: "BWO",
		WidocznyNumerGios:     false,
		Pozycje:               []Position{s.buildPosition(req)},
		Kontrahent:            s.buildContact(req),
	}
}

func (s *Domestic) buildContact(req model.InvoiceRequest) Contact {
	customer := req.Customer
	individual := !customer.IsB2B()

	contact := Contact{
		Nazwa:         customer.DisplayName(),
		Ulica:         customer.Address.Street,
		KodPocztowy:   customer.Address.PostalCode,
		KodKraju:      customer.Address.Country.Code(),
		Miejscowosc:   customer.Address.City,
		Email:         customer.Email,
		OsobaFizyczna: &individual,
	}
	if customer.VatNumber != nil {
		contact.NIP = customer.VatNumber.Number()
	}
	return contact
}

func (s *Domestic) buildPosition(req model.InvoiceRequest) Position {
	position := Position{
		StawkaVat:       domesticVATRate,
		Ilosc:           1,
		CenaJednostkowa: req.OriginalAmount.Amount().InexactFloat64(),
		NazwaPelna:      req.ProductName,
		Jednostka:       "szt.",
		TypStawkiVat:    "PRC",
	}
	if req.Discount != nil {
		rebate := req.Discount.Percentage().InexactFloat64()
		position.Rabat = &rebate
	}
	return position
}

func mapPaymentMethod(method string) string {
	if code, ok := paymentMethodCodes[method]; ok {
		return code
	}
	return "PRZ"
}

package strategy

import (
	"time"

	"github.com/djweb/payments/internal/model"
)

// Seller constants: the library invoices on behalf of a Polish seller.
const (
	SellerCountry    = "PL"
	DomesticCurrency = "PLN"
)

const dateLayout = "2006-01-02"

// Strategy maps an invoice request onto one iFirma invoicing regime.
// Implementations are stateless: BuildPayload is a pure function of the
// request and the injected clock, so repeated calls on the same frozen
// request yield identical payloads.
type Strategy interface {
	// Supports reports whether this regime applies to the request
	Supports(req model.InvoiceRequest) bool

	// Endpoint returns the iFirma API endpoint path for this regime
	Endpoint() string

	// BuildPayload transforms the request into the regime's wire payload
	BuildPayload(req model.InvoiceRequest) interface{}
}

// formatDate renders a payload date, falling back to the given default
// when unset
func formatDate(t *time.Time, fallback time.Time) string {
	if t != nil {
		return t.Format(dateLayout)
	}
	return fallback.Format(dateLayout)
}

package model

import (
	"strings"
	"time"
)

// WebhookEvent is a provider-agnostic webhook notification. Data holds
// the provider's event payload as decoded JSON.
type WebhookEvent struct {
	ID        string
	Type      string
	Data      map[string]interface{}
	Source    string
	CreatedAt *time.Time
	Metadata  map[string]string
}

// IsPaymentEvent reports payment-intent lifecycle events
func (e WebhookEvent) IsPaymentEvent() bool {
	return strings.HasPrefix(e.Type, "payment_intent.")
}

// IsInvoiceEvent reports invoice lifecycle events
func (e WebhookEvent) IsInvoiceEvent() bool {
	return strings.HasPrefix(e.Type, "invoice.")
}

// Object returns the event's primary object, nil when absent
func (e WebhookEvent) Object() interface{} {
	return e.Data["object"]
}

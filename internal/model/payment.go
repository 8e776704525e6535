package model

import "time"

// PaymentRequest describes a payment to be collected through the
// gateway.
type PaymentRequest struct {
	Amount      Money
	Customer    Customer
	Description string
	Metadata    map[string]string
	ReturnURL   string
	CancelURL   string
	Discount    *Discount
}

// PaymentIntent mirrors the gateway's payment intent. Status is the
// one deliberately mutable cell: the gateway updates it as the intent
// progresses; everything else is set at creation.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       Money
	Status       string
	Metadata     map[string]string
	CreatedAt    *time.Time
}

// Succeeded reports a completed payment
func (p PaymentIntent) Succeeded() bool {
	return p.Status == "succeeded"
}

// Pending reports an intent still waiting on processing or customer
// action
func (p PaymentIntent) Pending() bool {
	switch p.Status {
	case "processing", "requires_action", "requires_payment_method":
		return true
	}
	return false
}

// Failed reports a canceled or failed intent
func (p PaymentIntent) Failed() bool {
	switch p.Status {
	case "canceled", "payment_failed":
		return true
	}
	return false
}

// PaymentResult is the outcome of a payment operation (charge lookup
// or refund), constructed once per call.
type PaymentResult struct {
	Success       bool
	TransactionID string
	Status        string
	Amount        Money
	Metadata      map[string]string
	ErrorMessage  string
	ProcessedAt   *time.Time
}

// HasError reports whether the result carries an error message
func (r PaymentResult) HasError() bool {
	return r.ErrorMessage != ""
}

package model

import "time"

// Payment method tags accepted on invoice requests. Anything else is
// invoiced as a bank transfer.
const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodPayPal   = "paypal"
	PaymentMethodP24      = "p24"
)

// InvoiceRequest carries everything needed to issue an invoice. Issue
// and sale dates default to the current date at payload-build time when
// unset.
type InvoiceRequest struct {
	Customer       Customer
	Amount         Money
	OriginalAmount Money
	ProductName    string
	Discount       *Discount
	IssueDate      *time.Time
	SaleDate       *time.Time
	PaymentMethod  string
	Metadata       map[string]string
}

// DiscountAmount returns the discount value in the request's currency,
// zero when no valid discount applies
func (r InvoiceRequest) DiscountAmount(now time.Time) Money {
	if r.Discount == nil {
		return Money{currency: r.Amount.Currency()}
	}
	amount := r.Discount.DiscountAmount(r.OriginalAmount.Amount(), now)
	m, _ := NewMoney(amount, r.Amount.Currency())
	return m
}

// InvoiceResult is the outcome of a single invoicing attempt,
// constructed once and never mutated.
type InvoiceResult struct {
	Success       bool
	InvoiceID     string
	InvoiceNumber string
	PDFURL        string
	ErrorMessage  string
	Metadata      map[string]string
	CreatedAt     *time.Time
}

// HasError reports whether the result carries an error message
func (r InvoiceResult) HasError() bool {
	return r.ErrorMessage != ""
}

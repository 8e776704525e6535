// Package billing provides the public API for issuing tax-compliant
// invoices through iFirma and collecting payments through Stripe.
//
// The invoicing side routes each request to one of five jurisdiction
// regimes (domestic, domestic foreign-currency, EU reverse charge,
// EU OSS, export) and authenticates against the provider with
// HMAC-SHA1 signed requests. The payment side wraps Stripe payment
// intents, refunds and webhook verification. The two are independent
// collaborators composed by the caller.
//
// Example usage:
//
//	client, err := billing.NewInvoiceClient("account", invoiceKeyHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.CreateInvoice(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.PDFURL)
package billing

import (
	"github.com/djweb/payments/internal/ifirma"
	"github.com/djweb/payments/internal/ifirma/strategy"
	"github.com/djweb/payments/internal/model"
	"github.com/djweb/payments/internal/stripe"
)

// Re-export core domain types for the public API
type (
	Money          = model.Money
	Country        = model.Country
	VatNumber      = model.VatNumber
	Address        = model.Address
	Customer       = model.Customer
	Discount       = model.Discount
	InvoiceRequest = model.InvoiceRequest
	InvoiceResult  = model.InvoiceResult
	PaymentRequest = model.PaymentRequest
	PaymentIntent  = model.PaymentIntent
	PaymentResult  = model.PaymentResult
	WebhookEvent   = model.WebhookEvent
)

// Re-export error types
type (
	ValidationError = model.ValidationError
	ConfigError     = model.ConfigError
	EncodingError   = model.EncodingError
	InvoiceError    = model.InvoiceError
	PaymentError    = model.PaymentError
	NoStrategyError = model.NoStrategyError
)

// Re-export payment method tags
const (
	PaymentMethodTransfer = model.PaymentMethodTransfer
	PaymentMethodCash     = model.PaymentMethodCash
	PaymentMethodCard     = model.PaymentMethodCard
	PaymentMethodPayPal   = model.PaymentMethodPayPal
	PaymentMethodP24      = model.PaymentMethodP24
)

// Value-object constructors
var (
	NewMoney          = model.NewMoney
	NewMoneyFromFloat = model.NewMoneyFromFloat
	FromSmallestUnit  = model.FromSmallestUnit
	NewCountry        = model.NewCountry
	NewVatNumber      = model.NewVatNumber
	NewAddress        = model.NewAddress
	NewDiscount       = model.NewDiscount
)

// InvoiceStrategy is the capability implemented by custom invoicing
// regimes registered on the client
type InvoiceStrategy = strategy.Strategy

// InvoiceClient is the iFirma invoicing client
type InvoiceClient = ifirma.Client

// InvoiceClientOption configures the invoicing client
type InvoiceClientOption = ifirma.Option

// NewInvoiceClient creates an iFirma invoicing client. The invoice key
// is hex-encoded; malformed keys fail here, before any request.
var NewInvoiceClient = ifirma.NewClient

// Invoicing client options
var (
	WithBaseURL    = ifirma.WithBaseURL
	WithHTTPClient = ifirma.WithHTTPClient
	WithClock      = ifirma.WithClock
	WithLogger     = ifirma.WithLogger
)

// StripeGateway is the Stripe payment gateway
type StripeGateway = stripe.Gateway

// StripeGatewayOption configures the payment gateway
type StripeGatewayOption = stripe.Option

// NewStripeGateway creates a Stripe payment gateway
var NewStripeGateway = stripe.NewGateway

// Payment gateway options
var (
	StripeWithLogger   = stripe.WithLogger
	StripeWithBackends = stripe.WithBackends
)

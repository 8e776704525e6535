// Package stripe adapts the Stripe SDK to the billing domain model:
// payment intents, refunds and webhook verification. The invoicing
// path never calls this package; both are composed by the caller.
package stripe

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/djweb/payments/internal/model"
)

// GatewayName identifies this gateway in payment errors
const GatewayName = "stripe"

// Gateway is the Stripe payment gateway. Stateless between calls; safe
// for concurrent use.
type Gateway struct {
	api           *client.API
	backends      *stripe.Backends
	webhookSecret string
	log           zerolog.Logger
}

// Option configures the gateway
type Option func(*Gateway)

// WithLogger sets the gateway logger. The secret key and webhook
// secret are never logged.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Gateway) {
		g.log = log
	}
}

// WithBackends replaces the SDK backends, used by tests to point the
// SDK at a local server
func WithBackends(backends *stripe.Backends) Option {
	return func(g *Gateway) {
		g.backends = backends
	}
}

// NewGateway creates a Stripe gateway from the account's secret key
// and webhook signing secret
func NewGateway(secretKey, webhookSecret string, opts ...Option) *Gateway {
	g := &Gateway{
		webhookSecret: webhookSecret,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.api = &client.API{}
	g.api.Init(secretKey, g.backends)
	return g
}

// CreatePaymentIntent creates a Stripe payment intent for the request,
// flattening customer and discount data into the intent metadata
func (g *Gateway) CreatePaymentIntent(ctx context.Context, req model.PaymentRequest) (*model.PaymentIntent, error) {
	metadata := buildIntentMetadata(req)

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.Amount.ToSmallestUnit()),
		Currency:     stripe.String(strings.ToLower(req.Amount.Currency())),
		Description:  stripe.String(req.Description),
		ReceiptEmail: stripe.String(req.Customer.Email),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	if intent.ClientSecret == "" {
		return nil, model.NewPaymentError(GatewayName, "payment intent client secret is empty", nil)
	}

	g.log.Debug().Str("intent_id", intent.ID).Msg("payment intent created")

	createdAt := time.Unix(intent.Created, 0)
	return &model.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       req.Amount,
		Status:       string(intent.Status),
		Metadata:     metadata,
		CreatedAt:    &createdAt,
	}, nil
}

// ProcessPayment retrieves the intent and interprets its current status
func (g *Gateway) ProcessPayment(ctx context.Context, intent model.PaymentIntent) (*model.PaymentResult, error) {
	current, err := g.retrieve(ctx, intent.ID)
	if err != nil {
		return nil, err
	}

	return &model.PaymentResult{
		Success:       current.Status == stripe.PaymentIntentStatusSucceeded,
		TransactionID: current.ID,
		Status:        string(current.Status),
		Amount:        intent.Amount,
		Metadata:      current.Metadata,
		ErrorMessage:  lastPaymentErrorMessage(current),
	}, nil
}

// GetPaymentStatus looks up an intent by id and reports its status
func (g *Gateway) GetPaymentStatus(ctx context.Context, paymentID string) (*model.PaymentResult, error) {
	current, err := g.retrieve(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	amount, err := model.FromSmallestUnit(current.Amount, strings.ToUpper(string(current.Currency)))
	if err != nil {
		return nil, err
	}

	return &model.PaymentResult{
		Success:       current.Status == stripe.PaymentIntentStatusSucceeded,
		TransactionID: current.ID,
		Status:        string(current.Status),
		Amount:        amount,
		Metadata:      current.Metadata,
		ErrorMessage:  lastPaymentErrorMessage(current),
	}, nil
}

// RefundPayment refunds an intent, in full when amount is nil
func (g *Gateway) RefundPayment(ctx context.Context, paymentID string, amount *model.Money) (*model.PaymentResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentID),
	}
	params.Context = ctx
	if amount != nil {
		params.Amount = stripe.Int64(amount.ToSmallestUnit())
	}

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, err
	}

	refunded, err := model.FromSmallestUnit(refund.Amount, strings.ToUpper(string(refund.Currency)))
	if err != nil {
		return nil, err
	}

	return &model.PaymentResult{
		Success:       refund.Status == stripe.RefundStatusSucceeded,
		TransactionID: refund.ID,
		Status:        "refunded",
		Amount:        refunded,
		Metadata:      map[string]string{"refund_id": refund.ID},
	}, nil
}

func (g *Gateway) retrieve(ctx context.Context, paymentID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	return g.api.PaymentIntents.Get(paymentID, params)
}

// buildIntentMetadata flattens customer and discount fields into intent
// metadata, dropping empty values
func buildIntentMetadata(req model.PaymentRequest) map[string]string {
	customer := req.Customer

	fields := map[string]string{
		"email":          customer.Email,
		"first_name":     customer.FirstName,
		"last_name":      customer.LastName,
		"company_name":   customer.CompanyName,
		"street":         customer.Address.Street,
		"city":           customer.Address.City,
		"postal_code":    customer.Address.PostalCode,
		"country":        customer.Address.Country.Code(),
		"state_province": customer.Address.StateProvince,
	}
	if customer.VatNumber != nil {
		fields["nip"] = customer.VatNumber.String()
	}
	if req.Discount != nil {
		fields["discount_code"] = req.Discount.Code()
		fields["discount_percentage"] = req.Discount.Percentage().String()
	}
	for k, v := range req.Metadata {
		fields[k] = v
	}

	metadata := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			metadata[k] = v
		}
	}
	return metadata
}

func lastPaymentErrorMessage(intent *stripe.PaymentIntent) string {
	if intent.LastPaymentError != nil {
		return intent.LastPaymentError.Msg
	}
	return ""
}

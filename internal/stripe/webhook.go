package stripe

import (
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/djweb/payments/internal/model"
)

// VerifyWebhookSignature checks the Stripe-Signature header against
// the configured webhook secret. Verification failures propagate as
// the SDK's signature error.
func (g *Gateway) VerifyWebhookSignature(payload []byte, signature string) (bool, error) {
	if _, err := webhook.ConstructEvent(payload, signature, g.webhookSecret); err != nil {
		return false, err
	}
	return true, nil
}

// ParseWebhookEvent verifies and decodes a webhook notification into
// the domain event shape
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*model.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	if event.Data != nil {
		object := map[string]interface{}{}
		if len(event.Data.Raw) > 0 {
			if err := json.Unmarshal(event.Data.Raw, &object); err != nil {
				return nil, model.NewEncodingError("failed to decode webhook event object", err)
			}
		}
		data["object"] = object
	}

	createdAt := time.Unix(event.Created, 0)
	return &model.WebhookEvent{
		ID:        event.ID,
		Type:      string(event.Type),
		Data:      data,
		Source:    GatewayName,
		CreatedAt: &createdAt,
	}, nil
}

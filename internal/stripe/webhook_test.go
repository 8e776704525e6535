package stripe_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/djweb/payments/internal/stripe"
)

const webhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe's servers
// do: HMAC-SHA256 over "<timestamp>.<payload>"
func signPayload(secret string, payload []byte, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_123",
		"type": %q,
		"created": 1773500000,
		"api_version": %q,
		"data": {
			"object": {
				"id": "pi_123",
				"amount": 9999,
				"currency": "pln",
				"status": "succeeded"
			}
		}
	}`, eventType, stripesdk.APIVersion))
}

func TestVerifyWebhookSignature(t *testing.T) {
	gateway := stripe.NewGateway("sk_test_123", webhookSecret)

	payload := eventPayload("payment_intent.succeeded")
	header := signPayload(webhookSecret, payload, time.Now().Unix())

	ok, err := gateway.VerifyWebhookSignature(payload, header)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWebhookSignatureRejections(t *testing.T) {
	gateway := stripe.NewGateway("sk_test_123", webhookSecret)
	payload := eventPayload("payment_intent.succeeded")

	t.Run("wrong secret", func(t *testing.T) {
		header := signPayload("whsec_other", payload, time.Now().Unix())
		ok, err := gateway.VerifyWebhookSignature(payload, header)
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(webhookSecret, payload, time.Now().Unix())
		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = 'x'
		ok, err := gateway.VerifyWebhookSignature(tampered, header)
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		header := signPayload(webhookSecret, payload, time.Now().Add(-time.Hour).Unix())
		ok, err := gateway.VerifyWebhookSignature(payload, header)
		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestParseWebhookEvent(t *testing.T) {
	gateway := stripe.NewGateway("sk_test_123", webhookSecret)

	payload := eventPayload("payment_intent.succeeded")
	header := signPayload(webhookSecret, payload, time.Now().Unix())

	event, err := gateway.ParseWebhookEvent(payload, header)
	require.NoError(t, err)

	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, "stripe", event.Source)
	assert.True(t, event.IsPaymentEvent())
	assert.False(t, event.IsInvoiceEvent())
	require.NotNil(t, event.CreatedAt)
	assert.Equal(t, int64(1773500000), event.CreatedAt.Unix())

	object, ok := event.Object().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pi_123", object["id"])
	assert.Equal(t, float64(9999), object["amount"])
}

func TestParseWebhookEventBadSignature(t *testing.T) {
	gateway := stripe.NewGateway("sk_test_123", webhookSecret)

	payload := eventPayload("payment_intent.succeeded")
	header := signPayload("whsec_other", payload, time.Now().Unix())

	_, err := gateway.ParseWebhookEvent(payload, header)
	require.Error(t, err)
}

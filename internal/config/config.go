// Package config loads process configuration from the environment.
package config

import (
	"encoding/hex"
	"os"

	"github.com/joho/godotenv"

	"github.com/djweb/payments/internal/ifirma"
	"github.com/djweb/payments/internal/model"
)

// Config holds everything the CLI and server need to construct the
// invoicing client and payment gateway. Secrets are kept here only
// long enough to build the clients and must never be logged.
type Config struct {
	// iFirma invoicing
	IFirmaUser   string
	IFirmaKey    string // hex-encoded signing secret
	IFirmaAPIURL string

	// Stripe payments
	StripeSecretKey     string
	StripeWebhookSecret string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from the environment, sourcing a .env file
// when present. The iFirma key is validated here so misconfiguration
// fails at startup rather than on the first request.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly
	_ = godotenv.Load()

	config := &Config{
		IFirmaUser:          getEnv("IFIRMA_USER", ""),
		IFirmaKey:           getEnv("IFIRMA_KEY", ""),
		IFirmaAPIURL:        getEnv("IFIRMA_API_URL", ifirma.DefaultBaseURL),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogOutput:           getEnv("LOG_OUTPUT", "stderr"),
	}

	if config.IFirmaKey != "" {
		if len(config.IFirmaKey)%2 != 0 {
			return nil, model.NewConfigError("IFIRMA_KEY", "invalid invoice key format")
		}
		if _, err := hex.DecodeString(config.IFirmaKey); err != nil {
			return nil, model.NewConfigError("IFIRMA_KEY", "invoice key is not valid hex")
		}
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

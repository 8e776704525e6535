package cmd

import (
	"github.com/spf13/cobra"

	"github.com/djweb/payments/internal/config"
	"github.com/djweb/payments/internal/ifirma"
	"github.com/djweb/payments/internal/logger"
	"github.com/djweb/payments/internal/stripe"
)

var version = "1.0.0"

// cfg is loaded once before any command runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "payments",
	Short: "Issue invoices and collect payments",
	Long: `payments is a CLI for the billing library: it creates tax-compliant
invoices through the iFirma API, routing each request to the right
invoicing regime by customer country and business status, and manages
Stripe payment intents.

Configuration comes from the environment (or a .env file):
  IFIRMA_USER, IFIRMA_KEY, IFIRMA_API_URL
  STRIPE_SECRET_KEY, STRIPE_WEBHOOK_SECRET
  LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT

Examples:
  # Create an invoice from a request file
  payments invoice create request.json

  # Download an invoice PDF
  payments invoice pdf 12345678 -o invoice.pdf

  # Create a Stripe payment intent
  payments payment create request.json

  # Run the HTTP API
  payments serve --addr :8080`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return logger.Setup(logger.Config{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Output: cfg.LogOutput,
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// newInvoiceClient builds the iFirma client from the loaded config
func newInvoiceClient() (*ifirma.Client, error) {
	return ifirma.NewClient(cfg.IFirmaUser, cfg.IFirmaKey,
		ifirma.WithBaseURL(cfg.IFirmaAPIURL),
		ifirma.WithLogger(logger.WithComponent("ifirma")),
	)
}

// newGateway builds the Stripe gateway from the loaded config
func newGateway() *stripe.Gateway {
	return stripe.NewGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret,
		stripe.WithLogger(logger.WithComponent("stripe")),
	)
}

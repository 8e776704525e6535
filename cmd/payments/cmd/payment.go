package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/djweb/payments/internal/model"
	"github.com/djweb/payments/internal/server"
)

var (
	refundAmount   float64
	refundCurrency string
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Create, inspect and refund Stripe payments",
}

var paymentCreateCmd = &cobra.Command{
	Use:   "create <request.json>",
	Short: "Create a payment intent from a JSON request file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var req server.PaymentCreateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("invalid request file: %w", err)
		}
		paymentReq, err := req.ToModel()
		if err != nil {
			return err
		}

		intent, err := newGateway().CreatePaymentIntent(cmd.Context(), paymentReq)
		if err != nil {
			return err
		}
		return printJSON(intent)
	},
}

var paymentStatusCmd = &cobra.Command{
	Use:   "status <intent-id>",
	Short: "Report the status of a payment intent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newGateway().GetPaymentStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var paymentRefundCmd = &cobra.Command{
	Use:   "refund <intent-id>",
	Short: "Refund a payment, fully or partially",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var amount *model.Money
		if refundAmount > 0 {
			m, err := model.NewMoneyFromFloat(refundAmount, refundCurrency)
			if err != nil {
				return err
			}
			amount = &m
		}

		result, err := newGateway().RefundPayment(cmd.Context(), args[0], amount)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	paymentRefundCmd.Flags().Float64Var(&refundAmount, "amount", 0, "Partial refund amount (default: full refund)")
	paymentRefundCmd.Flags().StringVar(&refundCurrency, "currency", "PLN", "Currency for a partial refund")
	paymentCmd.AddCommand(paymentCreateCmd, paymentStatusCmd, paymentRefundCmd)
	rootCmd.AddCommand(paymentCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/djweb/payments/internal/server"
)

var pdfOutput string

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create invoices and fetch their PDFs",
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create <request.json>",
	Short: "Create an invoice from a JSON request file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var req server.InvoiceCreateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("invalid request file: %w", err)
		}
		invoiceReq, err := req.ToModel()
		if err != nil {
			return err
		}

		client, err := newInvoiceClient()
		if err != nil {
			return err
		}
		result, err := client.CreateInvoice(cmd.Context(), invoiceReq)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var invoicePDFCmd = &cobra.Command{
	Use:   "pdf <invoice-id>",
	Short: "Download the PDF for an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newInvoiceClient()
		if err != nil {
			return err
		}
		pdf, err := client.GetInvoicePDF(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if pdfOutput == "" {
			pdfOutput = args[0] + ".pdf"
		}
		if err := os.WriteFile(pdfOutput, pdf, 0o644); err != nil {
			return err
		}
		fmt.Println("written", pdfOutput)
		return nil
	},
}

func init() {
	invoicePDFCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "Output file (default <invoice-id>.pdf)")
	invoiceCmd.AddCommand(invoiceCreateCmd, invoicePDFCmd)
	rootCmd.AddCommand(invoiceCmd)
}

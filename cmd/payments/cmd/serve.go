package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/djweb/payments/internal/logger"
	"github.com/djweb/payments/internal/server"
)

var (
	serveAddr  string
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the billing HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newInvoiceClient()
		if err != nil {
			return err
		}

		srv := server.NewServer(&server.Config{
			Address:      serveAddr,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			Debug:        serveDebug,
		}, client, newGateway(), logger.WithComponent("server"))

		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging and gin debug mode")
	rootCmd.AddCommand(serveCmd)
}

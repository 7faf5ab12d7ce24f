package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prognoshealth/webhookproxy/server"
	"github.com/prognoshealth/webhookproxy/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the proxy as an HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup("cmd.serve")
		if err != nil {
			return err
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.log.Info("Starting N8N webhook proxy",
			"address", a.cfg.Server.Addr,
			"n8n_webhook", a.cfg.Webhook.URL,
			"timeout", a.cfg.Webhook.Timeout,
			"endpoints", webhook.Endpoints,
		)

		return server.New(a.cfg.Server, a.handler, a.log).Run(runCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

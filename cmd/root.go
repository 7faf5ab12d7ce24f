// Package cmd wires configuration, logging and the webhook handler into the
// webhook-proxy command line.
package cmd

import (
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/prognoshealth/webhookproxy/config"
	"github.com/prognoshealth/webhookproxy/logger"
	"github.com/prognoshealth/webhookproxy/webhook"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "webhook-proxy",
	Short:         "Forward browser webhook calls to an N8N workflow",
	Long:          "Runs a CORS-enabled proxy in front of a single N8N webhook, either as an HTTP server or as an AWS Lambda function.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $WEBHOOK_PROXY_CONFIG or ./webhook-proxy.yaml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app is what every subcommand needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	handler *webhook.Handler
}

func setup(component string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(appLogger)
	log := slog.Default().With("component", component)

	log.Debug("Loaded configuration", "config", spew.Sdump(cfg))

	h, err := webhook.NewHandler(webhook.Config{
		URL:     cfg.Webhook.URL,
		Timeout: cfg.Webhook.Timeout,
	}, nil, appLogger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, handler: h}, nil
}

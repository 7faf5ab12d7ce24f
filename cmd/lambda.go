package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/prognoshealth/webhookproxy/proxy"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run the proxy as an API Gateway v2 Lambda function",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup("cmd.lambda")
		if err != nil {
			return err
		}

		router, err := lambdaRouter(a)
		if err != nil {
			return err
		}

		a.log.Info("Starting lambda handler", "base_path", a.cfg.Lambda.BasePath, "n8n_webhook", a.cfg.Webhook.URL)
		lambda.Start(proxy.Handler(router, a.log))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func lambdaRouter(a *app) (*proxy.Router, error) {
	router := proxy.NewWebhookRouter(a.handler, a.cfg.Lambda.BasePath)
	if !router.Valid() {
		return nil, router.BuildErrors()
	}

	return router, nil
}

package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe [message]",
	Short: "Send a test message to the N8N webhook and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup("cmd.probe")
		if err != nil {
			return err
		}

		message := ""
		if len(args) > 0 {
			message = args[0]
		}

		return runProbe(cmd, a, message)
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, a *app, message string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resp := a.handler.Probe(ctx, message)
	fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("probe failed with status %d", resp.StatusCode)
	}

	return nil
}

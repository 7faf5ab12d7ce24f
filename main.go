package main

import (
	"fmt"
	"os"

	"github.com/prognoshealth/webhookproxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "webhook-proxy: %v\n", err)
		os.Exit(1)
	}
}

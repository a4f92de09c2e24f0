package main

import (
	"os"

	"github.com/custodia-labs/mailvec/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

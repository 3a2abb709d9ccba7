// Package main is the entry point for the wallet CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/wallet/cmd/wallet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

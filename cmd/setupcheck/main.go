// Package main provides the entry point for the setupcheck CLI.
package main

import (
	"os"

	"github.com/nodebot-tools/setupcheck/cmd/setupcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

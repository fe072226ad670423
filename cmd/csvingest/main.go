// Package main provides the csvingest command.
package main

import (
	"os"

	"github.com/shapestone/csv-ingest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the entry point for the tripnotes CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tripnotes/internal/cli"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

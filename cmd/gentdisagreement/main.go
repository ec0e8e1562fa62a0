// Package main provides the entry point for the gentdisagreement CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rghoshroy/gent-disagreement-go/internal/cli"
)

func main() {
	// A missing .env is fine; the environment may be set another way.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

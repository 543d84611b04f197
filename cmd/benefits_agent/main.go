// Package main provides the entry point for the benefits navigator CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "benefits_agent",
	Short: "Benefits eligibility screening",
	Long:  "Benefits navigator screens free-text household descriptions against SNAP, Medicaid, LIHEAP, WIC, School Meals, and Medicare Savings Program rules, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

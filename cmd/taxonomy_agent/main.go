// Package main implements the taxonomy_agent CLI for building skill taxonomies.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taxonomy_agent",
	Short: "Skill taxonomy builder",
	Long:  "Skill taxonomy builder turns flat extracted skill records into a validated hierarchical taxonomy: preprocessing, feature fusion, clustering, repair, hierarchy assembly, and validation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

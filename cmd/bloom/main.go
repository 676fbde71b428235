package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and seeders so their init() funcs register themselves.
	_ "github.com/shashiranjanraj/bloom/database/migrations"
	_ "github.com/shashiranjanraj/bloom/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bloom",
	Short: "Bloom — flower shop backend",
	Long:  "Bloom is the flower shop backend: HTTP API, Telegram ordering bot and database tooling in one binary.",
}

func init() {
	// Servers
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(routesCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}

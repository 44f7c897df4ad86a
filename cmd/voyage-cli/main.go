package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voyage/cmd/voyage-cli/commands"
)

var rootCmd = &cobra.Command{
	Use:   "voyage-cli",
	Short: "Plan trips from the terminal",
	Long: `A command line client for the voyage trip planner: chat with the
planning assistant, and repair or enrich itinerary JSON files.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.ChatCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.EnrichCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&commands.Format, "format", "f", "text", "output format: text, json or yaml")
}

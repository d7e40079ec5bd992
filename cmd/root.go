// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gh-activity",
	Short: "A CLI tool to summarize recent GitHub review activity.",
	Long: `gh-activity searches GitHub issues and pull requests updated within a timeframe,
fetches their conversation and review comments concurrently, and reports who took part.

The token is read from GITHUB_TOKEN (a .env file in the working directory is honoured).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

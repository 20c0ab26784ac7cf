package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ai-truffle-hog",
	Short: "Find and validate leaked AI provider credentials.",
	Long:  `Scan a local path or a remote git repository for AI provider API keys, and optionally validate each match against the live provider API.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to happen
// once to the rootCmd.
func Execute() {
	rootCmd.AddCommand(NewScanCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatbridge",
	Short: "Slack adapter for the generic chat backend interface",
	Long:  "Chatbridge maps users, channels, messages, presence, and real-time streaming onto the Slack Web API and Socket Mode.",
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

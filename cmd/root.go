package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskmind",
	Short: "Slack meeting-scheduling assistant",
	Long: `taskmind is a Slack bot that turns natural-language meeting requests into
booked Teams meetings.

A user asks for a meeting in plain language, the bot extracts the structured
details with an LLM, collects the participants' email addresses in a follow-up
message, and replies with the Teams join link.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskmind version %s\n" .Version}}`)

	// If no subcommand is provided, run the bot
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}

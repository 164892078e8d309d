package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the google-meet-generator application
var rootCmd = &cobra.Command{
	Use:   "google-meet-generator",
	Short: "Telegram bot that hands out instant open Google Meet links",
	Long: `google-meet-generator is a Telegram bot that creates Google Meet spaces
anyone with the link can join, and replies with the join link.

It answers /meet in chats and inline queries in any chat. Run "auth" once
to grant the bot access to your Google account, then "serve" (the default)
to start it in webhook or polling mode.`,
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
	rootCmd.SetVersionTemplate(`{{printf "google-meet-generator version %s\n" .Version}}`)
	rootCmd.SetArgs(defaultToServe(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultToServe runs the serve command when no subcommand is given,
// including when only serve flags are passed (e.g. "--polling").
func defaultToServe(args []string) []string {
	if len(args) == 0 {
		return []string{"serve"}
	}
	switch first := args[0]; first {
	case "-h", "--help", "-v", "--version":
		return args
	default:
		if first[0] == '-' {
			return append([]string{"serve"}, args...)
		}
	}
	return args
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

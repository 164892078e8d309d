// Package cmd implements the command-line interface for google-meet-generator.
//
// This package provides the following commands:
//   - serve: Run the Telegram bot in webhook or polling mode
//   - auth: Run the one-time Google consent flow and write the token file
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
// Flags take precedence over environment variables, which may be seeded from
// a .env file in the working directory.
package cmd

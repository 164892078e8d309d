// Package logging provides structured logging utilities for the meet bot.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Text or JSON slog handlers selected at startup
//   - PII sanitization (Telegram user IDs are hashed)
//   - Consistent attribute naming across the codebase
//   - An adapter routing the Telegram client's internal logging into slog
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "meet.create")
//	logger.Info("space created",
//	    logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("command received",
//	    logging.UserHash(msg.From.ID))
//
// # Security Considerations
//
//   - Telegram user IDs are hashed to prevent PII leakage while allowing correlation
//   - The bot token is never logged directly; library output is redacted
package logging

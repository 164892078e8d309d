package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// BotLogger adapts an slog.Logger to the Println/Printf logger expected by
// the Telegram bot library (tgbotapi.BotLogger).
// Lines are emitted at debug level with the bot token redacted.
type BotLogger struct {
	logger *slog.Logger
	token  string
}

// NewBotLogger creates a new BotLogger wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewBotLogger(logger *slog.Logger, token string) *BotLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &BotLogger{
		logger: logger.With(slog.String(KeyService, "telegram")),
		token:  token,
	}
}

// Println logs its operands separated by spaces.
func (a *BotLogger) Println(v ...interface{}) {
	a.log(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Printf logs a formatted message.
func (a *BotLogger) Printf(format string, v ...interface{}) {
	a.log(fmt.Sprintf(format, v...))
}

func (a *BotLogger) log(msg string) {
	a.logger.Debug(RedactToken(msg, a.token))
}

// Logger returns the underlying slog.Logger for direct access when needed.
func (a *BotLogger) Logger() *slog.Logger {
	return a.logger
}

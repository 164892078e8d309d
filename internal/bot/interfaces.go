//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mobinshahidi/google-meet-generator/internal/meet"
)

// Sender is the subset of the Telegram bot API the handlers use.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SpaceCreator creates open Google Meet spaces. *meet.Client satisfies it.
type SpaceCreator interface {
	CreateOpenSpace(ctx context.Context) (*meet.Space, error)
}

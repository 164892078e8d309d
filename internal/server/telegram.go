package server

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// Requester performs a Bot API call that returns no message.
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UpdateSource is the long-polling side of the Bot API.
type UpdateSource interface {
	Requester
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramAPI wraps the Bot API client so returned errors never carry the
// bot token, which the client embeds in every request URL.
type TelegramAPI struct {
	api   *tgbotapi.BotAPI
	token string
}

// NewTelegramAPI wraps api.
func NewTelegramAPI(api *tgbotapi.BotAPI) *TelegramAPI {
	return &TelegramAPI{api: api, token: api.Token}
}

// Send sends a message.
func (t *TelegramAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := t.api.Send(c)
	return msg, logging.RedactError(err, t.token)
}

// Request performs a call such as answerInlineQuery or setWebhook.
func (t *TelegramAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	resp, err := t.api.Request(c)
	return resp, logging.RedactError(err, t.token)
}

// GetUpdatesChan starts long polling.
func (t *TelegramAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return t.api.GetUpdatesChan(config)
}

// StopReceivingUpdates stops long polling.
func (t *TelegramAPI) StopReceivingUpdates() {
	t.api.StopReceivingUpdates()
}

// Username returns the bot's username as reported by getMe.
func (t *TelegramAPI) Username() string {
	return t.api.Self.UserName
}

// RegisterWebhook points Telegram at baseURL/{token}.
func RegisterWebhook(api Requester, baseURL, token string) error {
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(baseURL, "/") + "/" + token)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", logging.RedactError(err, token))
	}
	if _, err := api.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", logging.RedactError(err, token))
	}
	return nil
}

package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
)

// handleStart replies with usage instructions. It is open to everyone.
func (b *Bot) handleStart(msg *tgbotapi.Message) (outcome, error) {
	return outcome{authorized: true}, b.reply(msg, startMessage(b.username))
}

// handleMeet creates an open space and replies with its link. Creation
// failures are reported in the chat.
func (b *Bot) handleMeet(ctx context.Context, msg *tgbotapi.Message) (outcome, error) {
	if !b.isAllowed(msg.From) {
		return outcome{}, b.reply(msg, unauthorizedMessage)
	}

	space, err := b.spaces.CreateOpenSpace(ctx)
	if err != nil {
		return outcome{authorized: true, err: err}, b.reply(msg, errorMessage(err))
	}

	if err := b.reply(msg, meetMessage(space.MeetingURI)); err != nil {
		return outcome{authorized: true, space: space}, err
	}
	b.metrics.RecordMeetLinkDelivered(ctx, instrumentation.UpdateKindMeet)
	return outcome{authorized: true, space: space}, nil
}

// reply sends text to the message's chat as a reply to it.
func (b *Bot) reply(msg *tgbotapi.Message, text string) error {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	_, err := b.sender.Send(out)
	return err
}

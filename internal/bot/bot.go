package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/Mobinshahidi/google-meet-generator/internal/access"
	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
	"github.com/Mobinshahidi/google-meet-generator/internal/meet"
)

// errIgnored marks updates the bot deliberately does not answer.
var errIgnored = errors.New("update ignored")

// Config holds the dependencies of a Bot.
type Config struct {
	Sender    Sender
	Spaces    SpaceCreator
	AllowList *access.AllowList

	// Username is the bot's Telegram username, without the leading @.
	Username string

	Metrics *instrumentation.Metrics
	Audit   *instrumentation.AuditLogger
	Logger  *slog.Logger

	// NewResultID generates inline result IDs. Defaults to uuid.NewString.
	NewResultID func() string
}

// Bot dispatches Telegram updates to the command and inline handlers.
// It holds no mutable state and is safe for concurrent use.
type Bot struct {
	sender      Sender
	spaces      SpaceCreator
	allowList   *access.AllowList
	username    string
	metrics     *instrumentation.Metrics
	audit       *instrumentation.AuditLogger
	logger      *slog.Logger
	newResultID func() string
}

// New creates a Bot.
func New(cfg Config) (*Bot, error) {
	if cfg.Sender == nil {
		return nil, errors.New("bot: sender is required")
	}
	if cfg.Spaces == nil {
		return nil, errors.New("bot: space creator is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newID := cfg.NewResultID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Bot{
		sender:      cfg.Sender,
		spaces:      cfg.Spaces,
		allowList:   cfg.AllowList,
		username:    cfg.Username,
		metrics:     cfg.Metrics,
		audit:       cfg.Audit,
		logger:      logging.WithService(logger, "bot"),
		newResultID: newID,
	}, nil
}

// outcome describes what a handler did with an update.
type outcome struct {
	authorized bool
	space      *meet.Space

	// err is a failure to create the space. It has already been reported
	// to the user (commands) or swallowed (inline queries).
	err error
}

// HandleUpdate handles one update to completion. The returned error only
// reports a failure to talk to Telegram; every other failure is handled by
// replying to the user or logging.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	kind, userID, chatID, chatType := classifyUpdate(update, b.username)
	if kind == instrumentation.UpdateKindOther {
		b.metrics.RecordBotUpdate(ctx, kind, instrumentation.StatusIgnored, chatType, 0)
		return nil
	}

	attrs := instrumentation.NewSpanAttributeBuilder().
		WithChatID(chatID).
		WithUserHash(logging.AnonymizeUser(fmt.Sprint(userID))).
		Build()
	ctx, span := instrumentation.StartUpdateSpan(ctx, kind, attrs...)
	defer span.End()

	req := instrumentation.NewBotRequest(kind, userID, chatID).WithSpanContext(ctx)
	logger := b.logger.With(logging.UpdateKind(kind), logging.UserHash(userID))
	logger.DebugContext(ctx, "handling update", logging.ChatID(chatID))

	var (
		out outcome
		err error
	)
	switch kind {
	case instrumentation.UpdateKindStart:
		out, err = b.handleStart(update.Message)
	case instrumentation.UpdateKindMeet:
		out, err = b.handleMeet(ctx, update.Message)
	case instrumentation.UpdateKindInline:
		out, err = b.handleInlineQuery(ctx, update.InlineQuery)
	}

	if errors.Is(err, errIgnored) {
		b.metrics.RecordBotUpdate(ctx, kind, instrumentation.StatusIgnored, chatType, time.Since(req.StartTime))
		return nil
	}

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().WithAuthorized(out.authorized).Build()...)
	req.WithAuthorized(out.authorized)
	if out.space != nil {
		req.WithMeetingCode(out.space.MeetingCode)
	}
	failure := out.err
	if failure == nil {
		failure = err
	}
	req.Complete(failure == nil, failure)

	if failure != nil {
		instrumentation.SetSpanError(span, failure)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	if !out.authorized {
		b.metrics.RecordAccessDenied(ctx, kind)
		logger.WarnContext(ctx, "access denied")
	}
	b.metrics.RecordBotUpdate(ctx, kind, req.Status(), chatType, req.Duration)
	b.audit.LogRequest(ctx, req)

	if err != nil {
		logger.ErrorContext(ctx, "failed to answer update", logging.Err(err))
		return fmt.Errorf("failed to answer %s update: %w", kind, err)
	}
	return nil
}

// classifyUpdate determines the update kind and the identifiers used for
// logging and access control.
func classifyUpdate(update tgbotapi.Update, username string) (kind string, userID, chatID int64, chatType string) {
	switch {
	case update.InlineQuery != nil:
		if update.InlineQuery.From != nil {
			userID = update.InlineQuery.From.ID
		}
		return instrumentation.UpdateKindInline, userID, 0, ""

	case update.Message != nil && update.Message.IsCommand():
		msg := update.Message
		if msg.From != nil {
			userID = msg.From.ID
		}
		if msg.Chat != nil {
			chatID = msg.Chat.ID
			chatType = msg.Chat.Type
		}
		if !addressedToUs(msg.CommandWithAt(), username) {
			return instrumentation.UpdateKindOther, userID, chatID, chatType
		}
		switch msg.Command() {
		case "start":
			return instrumentation.UpdateKindStart, userID, chatID, chatType
		case "meet":
			return instrumentation.UpdateKindMeet, userID, chatID, chatType
		}
		return instrumentation.UpdateKindOther, userID, chatID, chatType
	}
	return instrumentation.UpdateKindOther, 0, 0, ""
}

// addressedToUs rejects commands suffixed with another bot's username,
// e.g. /meet@otherbot in a group.
func addressedToUs(commandWithAt, username string) bool {
	i := strings.IndexByte(commandWithAt, '@')
	if i < 0 || username == "" {
		return true
	}
	return strings.EqualFold(commandWithAt[i+1:], username)
}

// isAllowed checks the allowlist. A request without a sender is only
// allowed when usage is unrestricted.
func (b *Bot) isAllowed(user *tgbotapi.User) bool {
	if !b.allowList.Restricted() {
		return true
	}
	if user == nil {
		return false
	}
	return b.allowList.IsAllowedID(user.ID)
}

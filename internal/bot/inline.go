package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// handleInlineQuery answers a matching inline query with one article
// carrying a fresh Meet link. Unauthorized users get a single explanatory
// article; creation failures are logged and leave the query unanswered.
func (b *Bot) handleInlineQuery(ctx context.Context, q *tgbotapi.InlineQuery) (outcome, error) {
	if !MatchesInlineTrigger(q.Query) {
		return outcome{}, errIgnored
	}

	if !b.isAllowed(q.From) {
		article := tgbotapi.NewInlineQueryResultArticle(b.newResultID(), inlineDeniedTitle, inlineDeniedMessage)
		article.Description = inlineDeniedDesc
		return outcome{}, b.answerInline(q, inlineDeniedCacheTTL, article)
	}

	space, err := b.spaces.CreateOpenSpace(ctx)
	if err != nil {
		b.logger.ErrorContext(ctx, "inline query left unanswered",
			logging.UpdateKind(instrumentation.UpdateKindInline),
			logging.Err(err))
		return outcome{authorized: true, err: err}, nil
	}

	article := tgbotapi.NewInlineQueryResultArticle(b.newResultID(), inlineTitle, fmt.Sprintf(inlineMessageFormat, space.MeetingURI))
	article.Description = inlineDescription
	if err := b.answerInline(q, inlineCacheTime, article); err != nil {
		return outcome{authorized: true, space: space}, err
	}
	b.metrics.RecordMeetLinkDelivered(ctx, instrumentation.UpdateKindInline)
	return outcome{authorized: true, space: space}, nil
}

// answerInline answers q with the given results. Answers are personal so a
// link generated for one user is never served to another from cache.
func (b *Bot) answerInline(q *tgbotapi.InlineQuery, cacheTime int, results ...interface{}) error {
	_, err := b.sender.Request(tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       results,
		CacheTime:     cacheTime,
		IsPersonal:    true,
	})
	return err
}

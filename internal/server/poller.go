package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// DefaultPollTimeout is the long-poll timeout in seconds.
const DefaultPollTimeout = 60

// PollerConfig holds configuration for the Poller.
type PollerConfig struct {
	Source  UpdateSource
	Handler UpdateHandler

	// Timeout is the long-poll timeout in seconds. Defaults to DefaultPollTimeout.
	Timeout int

	Logger *slog.Logger
}

// Poller pulls updates with getUpdates and dispatches them one at a time.
type Poller struct {
	source  UpdateSource
	handler UpdateHandler
	timeout int
	logger  *slog.Logger
}

// NewPoller creates a Poller.
func NewPoller(cfg PollerConfig) (*Poller, error) {
	if cfg.Source == nil {
		return nil, errors.New("update source is required for poller")
	}
	if cfg.Handler == nil {
		return nil, errors.New("update handler is required for poller")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		source:  cfg.Source,
		handler: cfg.Handler,
		timeout: cfg.Timeout,
		logger:  logging.WithService(logger, "poller"),
	}, nil
}

// Run clears any registered webhook, then handles updates until ctx is
// cancelled or the update channel closes. Each update is handled to
// completion before the next one is read.
func (p *Poller) Run(ctx context.Context) error {
	// getUpdates is refused while a webhook is set.
	if _, err := p.source.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout
	updates := p.source.GetUpdatesChan(cfg)
	defer p.source.StopReceivingUpdates()

	p.logger.InfoContext(ctx, "polling for updates", "timeout_seconds", p.timeout)
	for {
		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, "stopping poller")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := p.handler.HandleUpdate(ctx, update); err != nil {
				p.logger.ErrorContext(ctx, "update handler failed",
					slog.Int("update_id", update.UpdateID),
					logging.Err(err))
			}
		}
	}
}

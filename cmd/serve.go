package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Mobinshahidi/google-meet-generator/internal/access"
	"github.com/Mobinshahidi/google-meet-generator/internal/bot"
	"github.com/Mobinshahidi/google-meet-generator/internal/config"
	"github.com/Mobinshahidi/google-meet-generator/internal/google"
	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
	"github.com/Mobinshahidi/google-meet-generator/internal/meet"
	"github.com/Mobinshahidi/google-meet-generator/internal/server"
)

func newServeCmd() *cobra.Command {
	var o config.Overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Long: `Run the bot until SIGINT or SIGTERM.

In webhook mode (the default) an HTTP server receives updates on
POST /{BOT_TOKEN} and also serves GET / plus the /healthz and /readyz probes.
When WEBHOOK_URL is set the webhook is registered with Telegram at startup.

In polling mode (RUN_POLLING set, or --polling) any registered webhook is
removed and updates are fetched with long polling.

The Google token file must exist (see the auth command). When started from
an interactive terminal without one, the consent flow runs on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), o, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&o.BotToken, "bot-token", "", "Telegram bot token. Can also use BOT_TOKEN env var.")
	cmd.Flags().IntVar(&o.Port, "port", 0, "Webhook server port (default 10000). Can also use PORT env var.")
	cmd.Flags().BoolVar(&o.Polling, "polling", false, "Use long polling instead of a webhook. Can also set RUN_POLLING.")
	cmd.Flags().StringVar(&o.WebhookURL, "webhook-url", "", "Public base URL to register the webhook under. Can also use WEBHOOK_URL env var.")
	cmd.Flags().StringVar(&o.CredentialsFile, "credentials-file", "", "Google OAuth client secrets file (default credentials.json). Can also use CREDENTIALS_FILE env var.")
	cmd.Flags().StringVar(&o.TokenFile, "token-file", "", "Google token file (default token.json). Can also use TOKEN_FILE env var.")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug logging. Can also use BOT_DEBUG env var.")
	cmd.Flags().StringVar(&o.LogFormat, "log-format", "", "Log format: text or json. Can also use LOG_FORMAT env var.")
	cmd.Flags().StringVar(&o.MetricsAddr, "metrics-addr", "", "Metrics server address (default :9090). Can also use METRICS_ADDR env var.")
	cmd.Flags().BoolVar(&o.DisableMetrics, "disable-metrics", false, "Do not start the metrics server. Can also set METRICS_ENABLED=false.")

	return cmd
}

func runServe(ctx context.Context, o config.Overrides, stderr io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(o)
	if err != nil {
		return err
	}

	logger := logging.New(stderr, cfg.LogFormat, cfg.Debug)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()
	metrics := provider.Metrics()

	telegram, b, err := buildBot(ctx, cfg, instrConfig, metrics, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsEnabled && provider.PrometheusHandler() != nil {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.MetricsAddr,
			Path:                    instrConfig.PrometheusEndpoint,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		serveHTTP(gctx, g, cancel, metricsServer)
	}

	switch cfg.Mode {
	case config.ModePolling:
		poller, err := server.NewPoller(server.PollerConfig{
			Source:  telegram,
			Handler: b,
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		g.Go(func() error {
			defer cancel()
			return poller.Run(gctx)
		})

	default:
		if cfg.WebhookURL != "" {
			if err := server.RegisterWebhook(telegram, cfg.WebhookURL, cfg.BotToken); err != nil {
				return err
			}
			logger.Info("registered webhook", "base_url", cfg.WebhookURL)
		}

		health := server.NewHealthChecker()
		webhook, err := server.NewWebhookServer(server.WebhookConfig{
			Addr:    cfg.Addr(),
			Token:   cfg.BotToken,
			Handler: b,
			Health:  health,
			Metrics: metrics,
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		health.SetReady(true)
		serveHTTP(gctx, g, cancel, webhook)
	}

	logger.Info("bot started",
		"username", telegram.Username(),
		"mode", string(cfg.Mode),
		"version", version)

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("bot stopped")
	return nil
}

// buildBot wires the Google credential, the Meet client and the Telegram
// client into a bot.
func buildBot(ctx context.Context, cfg *config.Config, instrConfig instrumentation.Config, metrics *instrumentation.Metrics, logger *slog.Logger) (*server.TelegramAPI, *bot.Bot, error) {
	warnIfUnauthorized(cfg.TokenFile, logger)

	creds := google.NewCredentialManager(google.ManagerConfig{
		TokenFile:       cfg.TokenFile,
		CredentialsFile: cfg.CredentialsFile,
		Consent:         interactiveConsent(os.Stderr),
		Metrics:         metrics,
		Logger:          logger,
	})
	meetClient, err := meet.NewClient(ctx, meet.Config{
		TokenSource: google.TokenSource(ctx, creds),
		Metrics:     metrics,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := tgbotapi.SetLogger(logging.NewBotLogger(logger, cfg.BotToken)); err != nil {
		return nil, nil, fmt.Errorf("failed to set Telegram logger: %w", err)
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Telegram: %w", logging.RedactError(err, cfg.BotToken))
	}
	api.Debug = cfg.Debug
	telegram := server.NewTelegramAPI(api)

	allowList := access.NewAllowList(cfg.AllowedUsers)
	if allowList.Restricted() {
		logger.Info("access restricted to allowlist", "users", allowList.Len())
	} else {
		logger.Warn("ALLOWED_USERS is empty, every Telegram user may create meetings")
	}

	b, err := bot.New(bot.Config{
		Sender:    telegram,
		Spaces:    meetClient,
		AllowList: allowList,
		Username:  telegram.Username(),
		Metrics:   metrics,
		Audit:     instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging),
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return telegram, b, nil
}

type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serveHTTP runs srv in g and shuts it down once ctx is done. A server
// that stops on its own cancels the rest of the process.
func serveHTTP(ctx context.Context, g *errgroup.Group, cancel context.CancelFunc, srv httpServer) {
	g.Go(func() error {
		defer cancel()
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	})
}

// interactiveConsent returns a browser consent flow when a person is at the
// terminal, and nil for unattended runs.
func interactiveConsent(out io.Writer) google.ConsentFlow {
	if !isTerminal(os.Stdin) {
		return nil
	}
	return &google.LoopbackConsent{Out: out}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func warnIfUnauthorized(tokenFile string, logger *slog.Logger) {
	_, err := google.NewTokenFile(tokenFile).Load()
	switch {
	case errors.Is(err, google.ErrNoToken):
		logger.Warn("no Google token found, run the auth command first", "path", tokenFile)
	case err != nil:
		logger.Warn("Google token file is unusable", "path", tokenFile, logging.Err(err))
	}
}

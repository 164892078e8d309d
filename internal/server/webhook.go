package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// LivenessMessage is the body served on GET /.
const LivenessMessage = "Bot is alive!"

// maxUpdateBytes caps the size of a webhook request body.
const maxUpdateBytes = 1 << 20

// UpdateHandler processes one Telegram update to completion.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// WebhookConfig holds configuration for the webhook server.
type WebhookConfig struct {
	// Addr is the listen address, e.g. ":10000".
	Addr string

	// Token is the bot token. Updates are accepted on POST /{Token} only.
	Token string

	Handler UpdateHandler
	Health  *HealthChecker
	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// WebhookServer receives updates pushed by Telegram.
type WebhookServer struct {
	httpServer  *http.Server
	addr        string
	webhookPath string
	handler     UpdateHandler
	health      *HealthChecker
	metrics     *instrumentation.Metrics
	logger      *slog.Logger
}

// NewWebhookServer creates a webhook server. Token and Handler are required.
func NewWebhookServer(cfg WebhookConfig) (*WebhookServer, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot token is required for webhook server")
	}
	if cfg.Handler == nil {
		return nil, errors.New("update handler is required for webhook server")
	}
	if cfg.Health == nil {
		cfg.Health = NewHealthChecker()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &WebhookServer{
		addr:        cfg.Addr,
		webhookPath: "/" + cfg.Token,
		handler:     cfg.Handler,
		health:      cfg.Health,
		metrics:     cfg.Metrics,
		logger:      logging.WithService(logger, "webhook"),
	}
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	return s, nil
}

// Handler returns the webhook routes wrapped in request metrics.
func (s *WebhookServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+s.webhookPath, s.handleUpdate)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, LivenessMessage)
	})
	s.health.RegisterHealthEndpoints(mux)
	return s.instrument(mux)
}

// Start serves webhook requests until Shutdown is called. It blocks.
func (s *WebhookServer) Start() error {
	// The address is logged, never the path: it contains the bot token.
	s.logger.Info("starting webhook server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight updates.
func (s *WebhookServer) Shutdown(ctx context.Context) error {
	s.health.MarkShuttingDown()
	s.logger.Info("shutting down webhook server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *WebhookServer) Addr() string {
	return s.addr
}

// handleUpdate decodes and dispatches one update. Handler failures are
// acknowledged with 200 anyway, otherwise Telegram redelivers the update.
func (s *WebhookServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes)).Decode(&update); err != nil {
		s.logger.WarnContext(ctx, "rejected malformed update", logging.Err(err))
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if err := s.handler.HandleUpdate(ctx, update); err != nil {
		s.logger.ErrorContext(ctx, "update handler failed",
			slog.Int("update_id", update.UpdateID),
			logging.Err(err))
	}
	writeText(w, http.StatusOK, "OK")
}

func (s *WebhookServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := instrumentation.RouteLabel(r.URL.Path, s.webhookPath)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status, time.Since(start))
		s.logger.DebugContext(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			slog.Int(logging.KeyStatus, rec.status),
			slog.Duration(logging.KeyDuration, time.Since(start)))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

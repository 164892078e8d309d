package instrumentation

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// BotRequest captures one user-facing bot interaction for audit logging.
//
// # Privacy Considerations
//
// UserID is a raw Telegram identifier. General logs only carry its hash;
// the raw value is logged only when the audit logger includes PII.
type BotRequest struct {
	// Kind is the update kind (start, meet, inline_query)
	Kind string

	// Requester
	UserID int64
	ChatID int64

	// Authorized is the allowlist decision
	Authorized bool

	// MeetingCode is set when a space was created
	MeetingCode string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewBotRequest creates a new BotRequest with timing started.
// Call Complete() when handling finishes.
func NewBotRequest(kind string, userID, chatID int64) *BotRequest {
	return &BotRequest{
		Kind:      kind,
		UserID:    userID,
		ChatID:    chatID,
		StartTime: time.Now(),
	}
}

// WithSpanContext extracts trace context from the current span.
func (r *BotRequest) WithSpanContext(ctx context.Context) *BotRequest {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.TraceID = span.SpanContext().TraceID().String()
		r.SpanID = span.SpanContext().SpanID().String()
	}
	return r
}

// WithAuthorized records the allowlist decision.
func (r *BotRequest) WithAuthorized(authorized bool) *BotRequest {
	r.Authorized = authorized
	return r
}

// WithMeetingCode records the created meeting.
func (r *BotRequest) WithMeetingCode(code string) *BotRequest {
	r.MeetingCode = code
	return r
}

// Complete marks the request as completed and calculates duration.
func (r *BotRequest) Complete(success bool, err error) *BotRequest {
	r.Duration = time.Since(r.StartTime)
	r.Success = success
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Status returns the metric status for the request.
func (r *BotRequest) Status() string {
	switch {
	case !r.Authorized:
		return StatusDenied
	case r.Success:
		return StatusSuccess
	default:
		return StatusError
	}
}

// LogAttrs returns slog attributes with the user anonymized.
func (r *BotRequest) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.UpdateKind(r.Kind),
		logging.UserHash(r.UserID),
		slog.Bool("authorized", r.Authorized),
		slog.Duration(logging.KeyDuration, r.Duration),
		logging.Status(r.Status()),
	}
	return r.appendOptional(attrs, false)
}

// LogAuditAttrs returns slog attributes including the raw Telegram user ID.
func (r *BotRequest) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.UpdateKind(r.Kind),
		slog.String("user_id", strconv.FormatInt(r.UserID, 10)),
		slog.Bool("authorized", r.Authorized),
		slog.Duration(logging.KeyDuration, r.Duration),
		logging.Status(r.Status()),
	}
	return r.appendOptional(attrs, true)
}

func (r *BotRequest) appendOptional(attrs []slog.Attr, withSpan bool) []slog.Attr {
	if r.ChatID != 0 {
		attrs = append(attrs, logging.ChatID(r.ChatID))
	}
	if r.MeetingCode != "" {
		attrs = append(attrs, slog.String("meeting_code", r.MeetingCode))
	}
	if r.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", r.TraceID))
	}
	if withSpan && r.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", r.SpanID))
	}
	if r.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, r.Error))
	}
	return attrs
}

// AuditLogger writes one structured record per bot request.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given configuration.
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogRequest logs a completed bot request. Denied and failed requests are
// logged at warn level.
func (al *AuditLogger) LogRequest(ctx context.Context, r *BotRequest) {
	if al == nil || !al.enabled {
		return
	}

	var attrs []slog.Attr
	if al.includePII {
		attrs = r.LogAuditAttrs()
	} else {
		attrs = r.LogAttrs()
	}

	level := slog.LevelInfo
	msg := "bot_request"
	if r.Status() != StatusSuccess {
		level = slog.LevelWarn
		msg = "bot_request_" + r.Status()
	}
	al.logger.LogAttrs(ctx, level, msg, attrs...)
}

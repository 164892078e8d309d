// Package instrumentation provides OpenTelemetry instrumentation for the bot.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, route, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Routes are normalized with RouteLabel; the webhook path carries the bot
// token and is never used as a label value.
//
// Bot Metrics:
//   - bot_updates_total: Counter of handled Telegram updates by kind and status
//   - bot_update_duration_seconds: Histogram of update handling durations
//   - access_denied_total: Counter of requests rejected by the allowlist
//   - meet_links_delivered_total: Counter of Meet links sent to Telegram
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// OAuth Metrics:
//   - oauth_consent_total: Counter of interactive consent attempts by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// # Tracing
//
// Spans are created for each handled update (bot.<kind>) and for Google
// API calls (google.<service>.<operation>).
//
// # Audit
//
// AuditLogger writes one record per user-facing request. Telegram user IDs
// are hashed unless AUDIT_LOGGING_INCLUDE_PII is set.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: google-meet-generator)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordBotUpdate(ctx, instrumentation.UpdateKindMeet, instrumentation.StatusSuccess, "", time.Since(start))
package instrumentation

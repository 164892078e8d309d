// Package server provides the transports that feed Telegram updates to the
// bot, plus the operational HTTP endpoints.
//
// # Transports
//
// Exactly one transport runs per process:
//   - WebhookServer: Telegram pushes updates to POST /{token}. Each update is
//     handled to completion before the 200 response is written, and handler
//     failures are still acknowledged so Telegram does not redeliver.
//   - Poller: clears any registered webhook and long-polls getUpdates,
//     handling updates sequentially.
//
// # Operational Endpoints
//
// The webhook server also answers GET / with a static liveness string and
// exposes Kubernetes probes on /healthz and /readyz. MetricsServer serves
// Prometheus metrics on a separate port so they are never reachable through
// the public webhook listener.
//
// The bot token is part of the webhook path. It is never logged and never
// used as a metric label; TelegramAPI strips it from client errors.
package server

package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// The webhook path embeds the bot token. Raw request paths must never be
// used as label values: they would both leak the secret and let any caller
// mint new time series.

// Route label values for HTTP metrics.
const (
	RouteWebhook   = "webhook"
	RouteLiveness  = "root"
	RouteHealthz   = "healthz"
	RouteReadyz    = "readyz"
	RouteMetrics   = "metrics"
	RouteUnmatched = "other"
)

// RouteLabel maps a request path to a fixed route label.
//
// Example:
//
//	RouteLabel("/123:ABC", "/123:ABC")  // "webhook"
//	RouteLabel("/", "/123:ABC")         // "root"
//	RouteLabel("/wp-admin", "/123:ABC") // "other"
func RouteLabel(path, webhookPath string) string {
	switch {
	case webhookPath != "" && path == webhookPath:
		return RouteWebhook
	case path == "/":
		return RouteLiveness
	case path == "/healthz":
		return RouteHealthz
	case path == "/readyz":
		return RouteReadyz
	case path == "/metrics":
		return RouteMetrics
	default:
		return RouteUnmatched
	}
}

// Common operation types for Google API metrics.
// Status, OAuth, and Service constants are defined in config.go.
const (
	OperationCreateSpace = "create_space"
	OperationRefresh     = "refresh"
	OperationConsent     = "consent"
)

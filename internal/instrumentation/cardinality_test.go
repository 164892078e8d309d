package instrumentation

import "testing"

func TestRouteLabel(t *testing.T) {
	const webhook = "/123456:ABC-DEF"

	tests := []struct {
		path     string
		expected string
	}{
		{webhook, RouteWebhook},
		{"/", RouteLiveness},
		{"/healthz", RouteHealthz},
		{"/readyz", RouteReadyz},
		{"/metrics", RouteMetrics},
		{"/123456:WRONG", RouteUnmatched},
		{"/wp-login.php", RouteUnmatched},
		{"", RouteUnmatched},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := RouteLabel(tt.path, webhook)
			if result != tt.expected {
				t.Errorf("RouteLabel(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestRouteLabel_NoWebhookPath(t *testing.T) {
	// In polling mode there is no webhook route; "/" must not match it.
	if got := RouteLabel("/", ""); got != RouteLiveness {
		t.Errorf("RouteLabel(\"/\", \"\") = %q, want %q", got, RouteLiveness)
	}
	if got := RouteLabel("/anything", ""); got != RouteUnmatched {
		t.Errorf("RouteLabel(\"/anything\", \"\") = %q, want %q", got, RouteUnmatched)
	}
}

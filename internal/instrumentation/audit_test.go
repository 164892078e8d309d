package instrumentation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// Test constants to reduce string repetition and satisfy goconst
const (
	testUserID      = int64(123456789)
	testChatID      = int64(-1001234)
	testMeetingCode = "abc-mnop-xyz"
	testTraceID     = "abc123def456"
	testSpanID      = "span789"
)

func TestBotRequest_NewAndComplete(t *testing.T) {
	r := NewBotRequest(UpdateKindMeet, testUserID, testChatID)

	if r.Kind != UpdateKindMeet {
		t.Errorf("Kind = %q, want %q", r.Kind, UpdateKindMeet)
	}
	if r.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	r.WithAuthorized(true).WithMeetingCode(testMeetingCode).Complete(true, nil)

	if !r.Success {
		t.Error("Success should be true")
	}
	if r.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if r.Status() != StatusSuccess {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusSuccess)
	}
}

func TestBotRequest_Status(t *testing.T) {
	tests := []struct {
		name       string
		authorized bool
		success    bool
		want       string
	}{
		{"denied wins over success", false, true, StatusDenied},
		{"denied", false, false, StatusDenied},
		{"success", true, true, StatusSuccess},
		{"error", true, false, StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewBotRequest(UpdateKindInline, testUserID, 0).WithAuthorized(tt.authorized)
			r.Complete(tt.success, nil)
			if got := r.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBotRequest_LogAttrs_AnonymizesUser(t *testing.T) {
	r := &BotRequest{
		Kind:       UpdateKindMeet,
		UserID:     testUserID,
		ChatID:     testChatID,
		Authorized: true,
		Success:    true,
		TraceID:    testTraceID,
		SpanID:     testSpanID,
	}

	attrs := attrMap(r.LogAttrs())
	if _, ok := attrs["user_id"]; ok {
		t.Error("LogAttrs must not include the raw user ID")
	}
	if attrs["user_hash"] == "" {
		t.Error("LogAttrs should include the user hash")
	}
	if _, ok := attrs["span_id"]; ok {
		t.Error("LogAttrs should not include the span ID")
	}
	if attrs["trace_id"] != testTraceID {
		t.Errorf("trace_id = %q, want %q", attrs["trace_id"], testTraceID)
	}

	audit := attrMap(r.LogAuditAttrs())
	if audit["user_id"] != "123456789" {
		t.Errorf("user_id = %q, want %q", audit["user_id"], "123456789")
	}
	if audit["span_id"] != testSpanID {
		t.Errorf("span_id = %q, want %q", audit["span_id"], testSpanID)
	}
}

func TestBotRequest_LogAttrs_Error(t *testing.T) {
	r := NewBotRequest(UpdateKindMeet, testUserID, testChatID).WithAuthorized(true)
	r.Complete(false, errors.New("meet API returned 503"))

	attrs := attrMap(r.LogAttrs())
	if attrs["error"] != "meet API returned 503" {
		t.Errorf("error = %q, want the failure message", attrs["error"])
	}
}

func TestAuditLogger_LogRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true})

	ok := NewBotRequest(UpdateKindMeet, testUserID, testChatID).WithAuthorized(true).WithMeetingCode(testMeetingCode)
	al.LogRequest(context.Background(), ok.Complete(true, nil))

	denied := NewBotRequest(UpdateKindInline, testUserID, 0)
	al.LogRequest(context.Background(), denied.Complete(false, nil))

	out := buf.String()
	if !strings.Contains(out, "msg=bot_request ") || !strings.Contains(out, testMeetingCode) {
		t.Errorf("expected success record with meeting code, got %q", out)
	}
	if !strings.Contains(out, "level=WARN msg=bot_request_denied") {
		t.Errorf("expected warn-level denied record, got %q", out)
	}
	if strings.Contains(out, "123456789") {
		t.Errorf("raw user ID leaked without PII enabled: %q", out)
	}
}

func TestAuditLogger_IncludePII(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil)), AuditLoggingConfig{Enabled: true, IncludePII: true})

	r := NewBotRequest(UpdateKindMeet, testUserID, testChatID).WithAuthorized(true)
	al.LogRequest(context.Background(), r.Complete(true, nil))

	if !strings.Contains(buf.String(), "user_id=123456789") {
		t.Errorf("expected raw user ID with PII enabled, got %q", buf.String())
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil)), AuditLoggingConfig{Enabled: false})

	al.LogRequest(context.Background(), NewBotRequest(UpdateKindStart, testUserID, testChatID).Complete(true, nil))
	if buf.Len() != 0 {
		t.Errorf("disabled audit logger wrote %q", buf.String())
	}

	// A nil logger is a no-op too
	var nilLogger *AuditLogger
	nilLogger.LogRequest(context.Background(), NewBotRequest(UpdateKindStart, testUserID, testChatID))
}

func attrMap(attrs []slog.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value.String()
	}
	return m
}

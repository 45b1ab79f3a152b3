package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if p.Enabled() {
		t.Error("Enabled() = true for a disabled provider")
	}
	if p.Metrics() == nil {
		t.Fatal("Metrics() = nil, want a no-op recorder")
	}

	// No-op recorders must be safe to call.
	p.Metrics().RecordToolInvocation(context.Background(), "get_unread_emails", StatusSuccess, time.Millisecond)
	p.Metrics().RecordMailOperation(context.Background(), OperationList, StatusSuccess, time.Millisecond)
	p.Metrics().RecordOAuthTokenRefresh(context.Background(), OAuthResultSuccess)

	if _, span := p.Tracer("test").Start(context.Background(), "op"); span == nil {
		t.Error("Tracer() on a disabled provider returned nil span")
	}

	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewProviderPrometheus(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{
		Enabled:           true,
		ServiceName:       "inboxscribe-test",
		ServiceVersion:    "test",
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 0.1,
	})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer func() {
		if err := p.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	if !p.Enabled() {
		t.Error("Enabled() = false, want true")
	}

	p.Metrics().RecordToolInvocation(context.Background(), "get_unread_emails", StatusSuccess, 5*time.Millisecond)
	p.Metrics().RecordHTTPRequest(context.Background(), "POST", "/mcp", 200, time.Millisecond)
}

func TestNewProviderInvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		Enabled:         true,
		ServiceName:     "inboxscribe-test",
		MetricsExporter: "statsd",
	})
	if err == nil {
		t.Error("NewProvider() with an unknown exporter should fail")
	}
}

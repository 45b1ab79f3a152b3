package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/inboxscribe/inboxscribe/internal/gmail"
	"github.com/inboxscribe/inboxscribe/internal/google"
	"github.com/inboxscribe/inboxscribe/internal/instrumentation"
	"github.com/inboxscribe/inboxscribe/internal/logging"
)

// ServerContext holds the shared state for the MCP server: the
// credential configuration, the lazily created Gmail client and the
// observability hooks.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	creds      google.Config
	maxResults int64

	mu          sync.RWMutex
	provider    gmail.MailProvider
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	shutdown    bool
}

// NewServerContext creates a new server context. The Gmail client is
// created eagerly when a token already exists, otherwise lazily on
// first use so the server can start before the auth flow ran.
func NewServerContext(ctx context.Context, creds google.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		creds:      creds,
		maxResults: gmail.MaxResultsFromEnv(),
	}

	if creds.HasToken() {
		client, err := gmail.NewClient(shutdownCtx, creds)
		if err != nil {
			// Re-attempted on first use
			slog.Warn("failed to create Gmail client", logging.Err(err))
		} else {
			sc.provider = client
		}
	}

	return sc, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Credentials returns the OAuth credential configuration.
func (sc *ServerContext) Credentials() google.Config {
	return sc.creds
}

// MaxResults returns the default unread listing size.
func (sc *ServerContext) MaxResults() int64 {
	return sc.maxResults
}

// MailProvider returns the Gmail provider, creating and caching the
// real client if it does not exist yet. Returns nil when no token is
// available.
func (sc *ServerContext) MailProvider() gmail.MailProvider {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.provider != nil {
		return sc.provider
	}

	if !sc.creds.HasToken() {
		return nil
	}

	client, err := gmail.NewClient(sc.ctx, sc.creds)
	if err != nil {
		slog.Warn("failed to create Gmail client", logging.Err(err))
		return nil
	}

	sc.provider = client
	return sc.provider
}

// SetMailProvider replaces the Gmail provider. Used by tests to inject
// fakes.
func (sc *ServerContext) SetMailProvider(provider gmail.MailProvider) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.provider = provider
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool instrumentation.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

// Package instrumentation provides OpenTelemetry metrics and tracing
// for the inboxscribe server.
//
// Configuration comes from environment variables (see DefaultConfig).
// Metrics can be exported via Prometheus, OTLP or stdout; tracing via
// OTLP or stdout, or disabled entirely. When instrumentation is
// disabled all recorders become no-ops, so call sites never need to
// check whether it is active.
//
// The package also provides audit logging for tool invocations. Audit
// logs anonymize user identifiers by default; set
// AUDIT_LOGGING_INCLUDE_PII=true to log full email addresses when the
// log destination is access-controlled.
package instrumentation

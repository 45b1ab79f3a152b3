// Package logging provides structured logging utilities for the
// inboxscribe application.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "get_unread_emails")
//	logger.Info("tool completed", logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("profile loaded", logging.UserHash(email))
//
// # Security Considerations
//
// Email addresses are hashed before logging so entries can be
// correlated without exposing PII. Message bodies are never logged.
package logging

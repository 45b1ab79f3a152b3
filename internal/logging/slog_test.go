package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "regular email", email: "alice@example.com"},
		{name: "another email", email: "bob@example.com"},
	}

	seen := make(map[string]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnonymizeEmail(tt.email)
			if !strings.HasPrefix(got, "user:") {
				t.Errorf("AnonymizeEmail() = %q, want user: prefix", got)
			}
			if strings.Contains(got, tt.email) {
				t.Errorf("AnonymizeEmail() = %q leaks the address", got)
			}
			seen[got] = tt.email
		})
	}
	if len(seen) != len(tests) {
		t.Error("different emails produced the same hash")
	}

	if AnonymizeEmail("alice@example.com") != AnonymizeEmail("alice@example.com") {
		t.Error("AnonymizeEmail() is not deterministic")
	}
	if AnonymizeEmail("") != "" {
		t.Error("AnonymizeEmail(\"\") should be empty")
	}
}

func TestErrNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Info("test message", Err(nil))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if _, ok := entry[KeyError]; ok {
		t.Error("Err(nil) should not add an error attribute")
	}
}

func TestWithToolAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := WithTool(slog.New(slog.NewJSONHandler(&buf, nil)), "get_unread_emails")

	logger.Info("tool completed", Status(StatusSuccess))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry[KeyTool] != "get_unread_emails" {
		t.Errorf("tool = %v, want get_unread_emails", entry[KeyTool])
	}
	if entry[KeyStatus] != StatusSuccess {
		t.Errorf("status = %v, want %v", entry[KeyStatus], StatusSuccess)
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{value: "", want: slog.LevelInfo},
		{value: "debug", want: slog.LevelDebug},
		{value: "WARN", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "bogus", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.value, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.value)
			if got := LevelFromEnv(); got != tt.want {
				t.Errorf("LevelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

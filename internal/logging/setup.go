package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel selects the log level: debug, info, warn or error.
const EnvLogLevel = "LOG_LEVEL"

// Setup installs a JSON handler writing to w as the default logger and
// returns it. Logs must never go to stdout: the stdio transport owns
// that stream for the protocol.
func Setup(w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: LevelFromEnv(),
	}))
	slog.SetDefault(logger)
	return logger
}

// SetupDefault installs the default logger on stderr.
func SetupDefault() *slog.Logger {
	return Setup(os.Stderr)
}

// LevelFromEnv reads LOG_LEVEL, defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv(EnvLogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog.Logger. Production emits JSON
// records; every other environment gets the text handler. The minimum
// level comes from LOG_LEVEL and defaults to info.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

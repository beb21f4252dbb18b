package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger for the given environment.
// Production uses JSON handler; otherwise text handler.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

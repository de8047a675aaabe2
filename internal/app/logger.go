package app

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the app-wide logger type (slog).
type Logger = *slog.Logger

// NewLogger creates the app logger. Production and test environments get
// line-delimited JSON with source locations; development gets the
// human-readable pretty handler instead.
func NewLogger(level, env string) *slog.Logger {
	lvl := parseLogLevel(level)

	var h slog.Handler
	if strings.ToLower(strings.TrimSpace(env)) == "development" {
		h = newPrettyHandler(os.Stdout, lvl, true)
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: true,
		})
	}

	log := slog.New(h)
	slog.SetDefault(log)
	return log
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

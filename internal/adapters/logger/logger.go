package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"confedit/internal/core/domain"
)

// ProvideLogger builds the process logger from configuration. Logs go to
// stderr so they never mix with document output on stdout.
func ProvideLogger(config *domain.Config) *slog.Logger {
	return NewLogger(os.Stderr, config.Log.Level, config.Log.Format)
}

func NewLogger(w io.Writer, level string, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

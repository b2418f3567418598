// Package logger configures structured logging for the application.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Setup builds a JSON logger writing to out at the named level and installs it
// as the slog default. Unknown levels fall back to info.
func Setup(level string, out io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

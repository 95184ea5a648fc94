package app

import (
	"io"
	"log/slog"
)

// parseLevel maps a CLI level name to a slog level, defaulting to info.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// newLogger creates an isolated slog.Logger. It does not touch the global
// logger. Debug logs carry their source location.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := parseLevel(levelStr)
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler).With("app", "gypcmake")
}

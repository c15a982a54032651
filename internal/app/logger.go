package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/melani-orthography/internal/config"
)

// NewLogger creates a *slog.Logger for the named command based on cfg and
// sets it as the default logger via slog.SetDefault.
//
// Format "json" produces one JSON object per line; anything else produces
// slog's key=value text. Level is one of: debug, info, warn, error
// (case-insensitive); defaults to info. Source locations are added at debug
// level. Output is always os.Stderr so stdout stays free for results.
func NewLogger(cfg config.LogConfig, command string) *slog.Logger {
	logger := newLogger(os.Stderr, cfg).With(slog.String("cmd", command))
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

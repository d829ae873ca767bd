package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/lexitrack/internal/config"
)

// NewLogger builds the process logger on stderr and installs it as the slog
// default. "json" is the production format; "text" adds source locations.
// Every record carries service=lexitrack.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if text {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", "lexitrack"))
}

// parseLevel accepts slog level names in any case; unknown values mean info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

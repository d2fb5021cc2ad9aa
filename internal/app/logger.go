package app

import (
	"io"
	"log/slog"

	"github.com/vk/optionkit/internal/ctxlog"
)

// newLogger builds the application logger from cfg. The config schema
// restricts log_level and log_format to values slog understands, so the
// level is parsed directly. A nil writer yields a logger that drops
// everything. The global logger is left alone.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	if w == nil {
		return ctxlog.Discard()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel())); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat() == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

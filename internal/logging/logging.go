// Package logging builds the slog logger shared by the client and the commands.
package logging

import (
	"io"
	"log/slog"

	"tasker/internal/config"
)

// New returns a text logger writing to w.
// Debug level with --debug, otherwise only warnings and errors.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if cfg != nil && cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

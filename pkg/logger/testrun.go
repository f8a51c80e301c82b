package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; used by tests.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}

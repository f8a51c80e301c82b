package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// SeverityHandler writes one JSON object per record with a "severity" field,
// the format log collectors in front of the API expect.
type SeverityHandler struct {
	level slog.Level
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
}

// NewSeverityHandler writes to stdout.
func NewSeverityHandler(level slog.Level) slog.Handler {
	return NewSeverityHandlerTo(os.Stdout)(level)
}

// NewSeverityHandlerTo returns a handler constructor bound to w, usable with New.
func NewSeverityHandlerTo(w io.Writer) func(level slog.Level) slog.Handler {
	return func(level slog.Level) slog.Handler {
		return &SeverityHandler{level: level, out: w, mu: &sync.Mutex{}}
	}
}

func (h *SeverityHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *SeverityHandler) Handle(_ context.Context, r slog.Record) error {
	event := map[string]any{
		"severity": mapSeverity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		data := make(map[string]any, len(h.attrs)+r.NumAttrs())
		for _, a := range h.attrs {
			data[a.Key] = attrValue(a.Value)
		}
		r.Attrs(func(a slog.Attr) bool {
			data[a.Key] = attrValue(a.Value)
			return true
		})
		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *SeverityHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	all := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	all = append(all, h.attrs...)
	all = append(all, attrs...)
	return &SeverityHandler{level: h.level, out: h.out, mu: h.mu, attrs: all}
}

// groups are flattened
func (h *SeverityHandler) WithGroup(_ string) slog.Handler {
	return h
}

func mapSeverity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// errors do not marshal to anything useful, so render them as strings.
func attrValue(v slog.Value) any {
	v = v.Resolve()
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return v.Any()
}

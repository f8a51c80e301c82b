package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSeverityHandlerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", NewSeverityHandlerTo(&buf)).With("request_id", "abc")

	log.Warn("ping failed", "host", "example.invalid", "error", errors.New("no such host"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if event["severity"] != "WARNING" {
		t.Fatalf("severity = %v, want WARNING", event["severity"])
	}
	if event["message"] != "ping failed" {
		t.Fatalf("message = %v", event["message"])
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", event)
	}
	if data["request_id"] != "abc" || data["host"] != "example.invalid" {
		t.Fatalf("unexpected data: %v", data)
	}
	if data["error"] != "no such host" {
		t.Fatalf("error attr = %v, want string message", data["error"])
	}
}

func TestSeverityHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("error", NewSeverityHandlerTo(&buf))

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	base := New("info", NewSeverityHandlerTo(&buf))

	ctx := ToContext(context.Background(), base)
	if FromContext(ctx) != base {
		t.Fatal("FromContext did not return stored logger")
	}

	_, ctx = With(ctx, "tool", "converters.unit")
	FromContext(ctx).Info("hello")
	if !bytes.Contains(buf.Bytes(), []byte(`"tool":"converters.unit"`)) {
		t.Fatalf("expected tool attr in output: %q", buf.String())
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}
}

package extractor

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("msg", "k", "v")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	if _, ok := l.With("k", "v").(NopLogger); !ok {
		t.Error("With() should return a NopLogger")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlogAdapter(slog.New(handler))

	l.Debug("evaluated path", "expr", "$..id", "matches", 7)
	out := buf.String()
	if !strings.Contains(out, "evaluated path") || !strings.Contains(out, "expr=$..id") {
		t.Errorf("unexpected log output: %s", out)
	}

	buf.Reset()
	l.With("session", "s1").Warn("dropped match")
	out = buf.String()
	if !strings.Contains(out, "session=s1") || !strings.Contains(out, "dropped match") {
		t.Errorf("With attributes missing: %s", out)
	}
}

func TestSlogAdapterNilDefaults(t *testing.T) {
	if NewSlogAdapter(nil) == nil {
		t.Fatal("NewSlogAdapter(nil) should fall back to slog.Default()")
	}
}

func TestExtractorLogsEvaluation(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	x := New()
	x.Logger = NewSlogAdapter(slog.New(handler))
	_, err := x.Extract(map[string]any{"a": 1}, []string{"$.a"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(buf.String(), "evaluated path") {
		t.Errorf("expected debug log, got: %s", buf.String())
	}
}

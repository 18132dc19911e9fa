package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := newLogger(&out, &errOut, false)

	l.Info("loaded %d duals", 10)
	l.Warn("mismatch")
	l.Error("failed: %v", "boom")
	l.Debug("hidden")

	if !strings.Contains(out.String(), "INFO") || !strings.Contains(out.String(), "loaded 10 duals") {
		t.Errorf("info: got %q", out.String())
	}
	if !strings.Contains(out.String(), "WARN") {
		t.Errorf("warn: got %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Error("debug written while disabled")
	}
	if !strings.Contains(errOut.String(), "failed: boom") {
		t.Errorf("error: got %q", errOut.String())
	}
}

func TestLoggerDebugEnabled(t *testing.T) {
	var out bytes.Buffer
	l := newLogger(&out, &out, true)
	l.Debug("GET %s", "/teams")
	if !strings.Contains(out.String(), "DEBUG") || !strings.Contains(out.String(), "GET /teams") {
		t.Errorf("got %q", out.String())
	}
}

func TestLoggerWithFields(t *testing.T) {
	var out bytes.Buffer
	base := newLogger(&out, &out, false)
	l := base.With("request_id", "abc").With("team", "Iowa")

	l.Warn("store slow")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2: %q", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "store slow request_id=abc team=Iowa") {
		t.Errorf("tagged line: got %q", lines[0])
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("With leaked into the parent logger: %q", lines[1])
	}
}

func TestLoggerFromContext(t *testing.T) {
	base := newLogger(io.Discard, io.Discard, false)
	scoped := base.With("request_id", "abc")

	if got := loggerFrom(context.Background(), base); got != base {
		t.Error("empty context should fall back to the base logger")
	}
	if got := loggerFrom(withLogger(context.Background(), scoped), base); got != scoped {
		t.Error("context logger not returned")
	}
}

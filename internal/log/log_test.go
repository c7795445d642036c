package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})
	return buf
}

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := captureOutput(t)

	Info(context.Background(), "hello", "menu", "Es Teh")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}
	for _, want := range []string{"ts=", "level=info", "msg=hello", "menu=\"Es Teh\""} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line, got %q", want, line)
		}
	}
}

func TestWarnLevelRendersLowercase(t *testing.T) {
	buf := captureOutput(t)

	Warn(context.Background(), "degraded")

	if line := buf.String(); !strings.Contains(line, "level=warn") {
		t.Fatalf("expected level=warn, got %q", line)
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() {
		if err := SetLevel("info"); err != nil {
			t.Fatalf("restore level: %v", err)
		}
	})

	for _, level := range []string{"", "debug", "info", "warn", "warning", "error", " ERROR "} {
		if err := SetLevel(level); err != nil {
			t.Fatalf("SetLevel(%q) = %v", level, err)
		}
	}
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := captureOutput(t)
	t.Cleanup(func() {
		if err := SetLevel("info"); err != nil {
			t.Fatalf("restore level: %v", err)
		}
	})

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output should be filtered, got %q", buf.String())
	}
	Error(context.Background(), "visible")
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("error output missing: %q", buf.String())
	}
}

func TestReplaceLoggerRejectsNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil logger")
		}
	}()
	ReplaceLogger(nil)
}

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{"DEBUG", "dbg", "INFO", "inf", "WARN", "wrn", "ERROR", "err", "a=1", "b=2", "c=3", "d=4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_With_AddsPermanentFields(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("component", "recorder")
	child.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), "component=recorder") {
		t.Fatalf("child logger did not carry bound fields:\n%s", buf.String())
	}
}

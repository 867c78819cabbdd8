package logger_i

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/akolanti/StudyRAG/internal/config"
)

func captureDefault(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestLogger_FollowsDefaultInstalledLater(t *testing.T) {
	l := NewLogger("Qdrant")
	buf := captureDefault(t, slog.LevelDebug)

	l.Info("connected", "port", 6334)

	out := buf.String()
	for _, want := range []string{"component=Qdrant", "msg=connected", "port=6334"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestLogger_WithTrace(t *testing.T) {
	buf := captureDefault(t, slog.LevelDebug)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-123")

	NewLogger("api").WithTrace(ctx).Warn("slow")
	NewLogger("api").WithTrace(context.Background()).Warn("untraced")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "traceId=trace-123") {
		t.Errorf("first line = %q", lines[0])
	}
	if strings.Contains(lines[1], "traceId") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	buf := captureDefault(t, slog.LevelInfo)
	NewLogger("api").Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
}

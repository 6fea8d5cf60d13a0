package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/mwestberg/todo-api/internal/platform/logging"
)

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"level":"INFO"`) {
		t.Errorf("output = %q, want it to contain '\"level\":\"INFO\"'", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("output = %q, want it to contain '\"msg\":\"hello\"'", out)
	}
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "text", &buf)

	logger.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("output = %q, want it to contain 'level=INFO'", out)
	}
}

func TestNew_InfoLevelFiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Debug("filtered")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want debug message filtered at info level", buf.String())
	}
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("bogus", "json", &buf)

	logger.Debug("filtered")
	if buf.Len() != 0 {
		t.Error("debug message appeared, want info as the default level")
	}

	logger.Info("visible")
	if buf.Len() == 0 {
		t.Error("info message was filtered, want it to appear")
	}
}

func TestNew_RedactsPasswordField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("login attempt", slog.String("password", "hunter2secret"))

	out := buf.String()
	if strings.Contains(out, "hunter2secret") {
		t.Errorf("output = %q, want password value redacted", out)
	}
}

func TestNew_RedactsBearerToken(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("header dump", slog.String("value", "Bearer abc123def456ghi789"))

	out := buf.String()
	if strings.Contains(out, "abc123def456ghi789") {
		t.Errorf("output = %q, want bearer token redacted", out)
	}
}

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	ctx := logging.WithLogger(context.Background(), logger)
	got := logging.FromContext(ctx)

	if got != logger {
		t.Error("FromContext did not return the stored logger")
	}
}

func TestFromContext_DefaultWhenUnset(t *testing.T) {
	t.Parallel()

	got := logging.FromContext(context.Background())
	if got == nil {
		t.Fatal("FromContext(empty ctx) = nil, want slog.Default()")
	}
}

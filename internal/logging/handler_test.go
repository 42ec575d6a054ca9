package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("hello world", "foo", "value")

	output := buf.String()
	for _, want := range []string{"INFO", "hello world", "foo=value"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("record should end with a newline: %q", output)
	}
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("tool", "claude").WithGroup("mcp")

	logger.Info("wrote", "servers", 2, slog.Group("file", "path", ".claude/mcp.json"))

	output := buf.String()
	for _, want := range []string{"tool=claude", "mcp.servers=2", "mcp.file.path=.claude/mcp.json"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	logger.Log(t.Context(), LevelTrace, "deep")
	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got %q", buf.String())
	}
}

func TestHandler_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("server",
		"API_KEY", "supersecret",
		"token_value", "xoxb-123456789",
		"env", map[string]string{"TOKEN": "abcdef", "MODE": "dev"},
	)

	output := buf.String()
	for _, leaked := range []string{"supersecret", "xoxb-123456789", "abcdef"} {
		if strings.Contains(output, leaked) {
			t.Errorf("secret %q leaked: %q", leaked, output)
		}
	}
	if !strings.Contains(output, "MODE:dev") {
		t.Errorf("non-secret map entry should be kept: %q", output)
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		NewHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("run", 1)

	logger.Info("info only")
	logger.Error("both")

	if !strings.Contains(a.String(), "info only") || !strings.Contains(a.String(), "both") {
		t.Errorf("first handler missing records: %q", a.String())
	}
	if strings.Contains(b.String(), "info only") {
		t.Errorf("second handler should filter info: %q", b.String())
	}
	if !strings.Contains(b.String(), "run=1") {
		t.Errorf("attrs should propagate to every handler: %q", b.String())
	}
}

func TestColorAllowed(t *testing.T) {
	t.Setenv("TERM", "xterm")
	t.Run("tty", func(t *testing.T) {
		if !colorAllowed(true) {
			t.Error("expected colour on a TTY")
		}
	})
	t.Run("pipe", func(t *testing.T) {
		if colorAllowed(false) {
			t.Error("expected no colour on a pipe")
		}
	})
	t.Run("dumb terminal", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		if colorAllowed(true) {
			t.Error("TERM=dumb should disable colour")
		}
	})
	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		if colorAllowed(true) {
			t.Error("NO_COLOR should disable colour")
		}
	})
}

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is never a TTY")
	}
	if IsInteractive(strings.NewReader(""), &bytes.Buffer{}) {
		t.Error("buffers are never interactive")
	}
}

func TestMaskMap(t *testing.T) {
	got := MaskMap(map[string]string{"GITHUB_TOKEN": "ghp_0123456789", "REGION": "eu"})
	if got["GITHUB_TOKEN"] != "****6789" {
		t.Errorf("GITHUB_TOKEN = %q, want %q", got["GITHUB_TOKEN"], "****6789")
	}
	if got["REGION"] != "eu" {
		t.Errorf("REGION = %q, want %q", got["REGION"], "eu")
	}
	if MaskMap(nil) != nil {
		t.Error("MaskMap(nil) should be nil")
	}
}

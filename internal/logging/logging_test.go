package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-propdoc/internal/logging"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", "text", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", slog.String("path", "a.json"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "path=a.json") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("debug", "json", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("parsed", slog.Int("properties", 3))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "parsed" || line["properties"] != float64(3) {
		t.Fatalf("unexpected line %v", line)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := logging.New("loud", "text", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := logging.New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

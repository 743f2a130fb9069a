package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/raysh454/appwake/internal/logging"
)

func TestNew_TextFormatIsHumanReadable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Format: logging.FormatText, Level: "info", Output: &buf}, "pinger")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	l.Info("navigating", logging.F("url", "https://example.com"))

	out := buf.String()
	if !strings.Contains(out, "navigating") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "url=https://example.com") {
		t.Errorf("expected url field in output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("text format should not emit JSON, got %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Format: logging.FormatJSON, Output: &buf}, "pinger")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	l.With(logging.F("run_id", "abc")).Error("ping failed", logging.Err(errBoom{}))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "ping failed" {
		t.Errorf("message = %v, want %q", entry["message"], "ping failed")
	}
	if entry["component"] != "pinger" {
		t.Errorf("component = %v, want pinger", entry["component"])
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id = %v, want abc", entry["run_id"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Format: logging.FormatJSON, Level: "info", Output: &buf}, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered at info level, got %q", buf.String())
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	t.Parallel()
	if _, err := logging.New(logging.Config{Format: "xml"}, ""); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := logging.New(logging.Config{Level: "loud"}, ""); err == nil {
		t.Error("expected error for unknown level")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

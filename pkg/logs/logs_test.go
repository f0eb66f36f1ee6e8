package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alijeyrad/hospital_records/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelWarn,
		"loud":  slog.LevelWarn,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSONToWriter(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output.Stderr = true
	cfg.Observability.ServiceName = "hospital"

	var buf bytes.Buffer
	NewWithWriter(cfg, &buf).Info("bill created", "bill_id", "B001")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["bill_id"] != "B001" || entry["service"] != "hospital" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewLevelFilters(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "warn"
	cfg.Logging.Output.Stderr = true

	var buf bytes.Buffer
	NewWithWriter(cfg, &buf).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}

func TestNewFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hospital.log")
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.Output.File.Enabled = true
	cfg.Logging.Output.File.Path = path
	cfg.Logging.Output.File.MaxSizeMB = 1

	var buf bytes.Buffer
	NewWithWriter(cfg, &buf).Info("patient added", "patient_id", 1001)

	if buf.Len() != 0 {
		t.Errorf("stderr written although disabled: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "patient_id=1001") {
		t.Errorf("log file = %q", data)
	}
}

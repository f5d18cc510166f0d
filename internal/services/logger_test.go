package services

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		" WARN ":  LogLevelWarn,
		"warning": LogLevelWarn,
		"Error":   LogLevelError,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestProductionLogger_FansOutAndFilters(t *testing.T) {
	var text, jsonOut bytes.Buffer
	logger := NewProductionLoggerWithWriters("vendornexus", &text, &jsonOut, LogLevelInfo)

	logger.Debug("hidden")
	logger.Info("turn completed", "vendors", 3)

	if strings.Contains(text.String(), "hidden") {
		t.Errorf("debug line written at INFO level: %q", text.String())
	}
	if !strings.Contains(text.String(), "turn completed") || !strings.Contains(text.String(), "service=vendornexus") {
		t.Errorf("text output = %q", text.String())
	}

	var line map[string]interface{}
	if err := json.Unmarshal(jsonOut.Bytes(), &line); err != nil {
		t.Fatalf("json output not a single JSON line: %v (%q)", err, jsonOut.String())
	}
	if line["msg"] != "turn completed" || line["vendors"] != float64(3) {
		t.Errorf("json line = %v", line)
	}

	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(text.String(), "now visible") {
		t.Error("SetLevel(DEBUG) did not take effect")
	}
}

func TestNewLogger_AppendsJSONToFile(t *testing.T) {
	t.Setenv("GO_ENV", "")
	path := filepath.Join(t.TempDir(), "nexus.log")

	logger, cleanup := NewLogger("vendornexus", "error", path)
	logger.Warn("dropped")
	logger.Error("kept", "op", "vault.save")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), `"msg":"kept"`) {
		t.Errorf("log file = %q", data)
	}
}

func TestNewLogger_TestEnvIsSilent(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	logger, _ := NewLogger("vendornexus", "debug", "")
	if _, ok := logger.(*NoOpLogger); !ok {
		t.Errorf("logger = %T, want *NoOpLogger", logger)
	}
}

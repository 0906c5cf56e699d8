package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMalformedRecordLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Debug: true, Format: FormatJSON, Output: &buf})

	l.MalformedRecord("1,2,bad", errors.New("bad ip"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want debug", entry["level"])
	}
	if entry["line"] != "1,2,bad" {
		t.Errorf("line = %v, want 1,2,bad", entry["line"])
	}
}

func TestMalformedRecordSuppressedAboveDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Debug: false, Format: FormatJSON, Output: &buf})

	l.MalformedRecord("1,2,bad", errors.New("bad ip"))

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}

func TestInvariantViolationLogsAtWarnWithoutPanic(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Format: FormatJSON, Output: &buf})

	l.InvariantViolation("sentinel-uniqueness", errors.New("duplicate prefix"))

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warn-level entry, got %q", buf.String())
	}
}

func TestIOErrorAndConfigurationErrorLogAtError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Format: FormatJSON, Output: &buf})

	l.IOError(errors.New("disk full"))
	l.ConfigurationError(errors.New("bad nborder"))

	out := buf.String()
	if strings.Count(out, `"level":"error"`) != 2 {
		t.Errorf("expected two error-level entries, got %q", out)
	}
}

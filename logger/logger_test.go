package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json", Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "test").WithComponent("client")
	l.Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
	if entry[FieldComponent] != "client" {
		t.Errorf("expected component=client, got %v", entry[FieldComponent])
	}
}

func TestFields(t *testing.T) {
	m := Fields(FieldMethod, "GET", FieldStatus, 200)
	if m[FieldMethod] != "GET" {
		t.Errorf("expected method GET, got %v", m[FieldMethod])
	}
	if m[FieldStatus] != 200 {
		t.Errorf("expected status 200, got %v", m[FieldStatus])
	}
	// Odd trailing value is dropped.
	if got := len(Fields("a", 1, "dangling")); got != 1 {
		t.Errorf("expected 1 field, got %d", got)
	}
}

func TestNop(t *testing.T) {
	// Must not panic and must not write anywhere.
	Nop().Error("ignored")
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Level: "verbose", Format: "json"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("expected level validation error, got %v", err)
	}
	cfg = &Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("expected format validation error, got %v", err)
	}
	cfg = &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

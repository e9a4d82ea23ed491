package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Missing file should fall back to defaults: %v", err)
	}
	if cfg.Prompt != "> " || cfg.ContinuationPrompt != "... " || !cfg.ColorEnabled() {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if level, _ := cfg.Level(); level != logrus.WarnLevel {
		t.Errorf("Default level should be warn, got %s", level)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
prompt: "lox> "
history_file: /tmp/history
log_level: debug
color: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "lox> " {
		t.Errorf("Prompt not loaded, got %q", cfg.Prompt)
	}
	if cfg.ContinuationPrompt != "... " {
		t.Errorf("Unset keys should keep their default, got %q", cfg.ContinuationPrompt)
	}
	if cfg.HistoryFile != "/tmp/history" {
		t.Errorf("History file not loaded, got %q", cfg.HistoryFile)
	}
	if level, _ := cfg.Level(); level != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", level)
	}
	if cfg.ColorEnabled() {
		t.Errorf("Color should be disabled")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeConfig(t, "prompt: [unclosed")); err == nil {
		t.Errorf("Malformed yaml should fail")
	}
	if _, err := Load(writeConfig(t, "log_level: loud")); err == nil {
		t.Errorf("Unknown log level should fail")
	}
}

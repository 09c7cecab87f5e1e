package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend.BaseURL != DefaultBackendBaseURL {
		t.Errorf("Backend.BaseURL = %q, want %q", cfg.Backend.BaseURL, DefaultBackendBaseURL)
	}
	if cfg.Backend.PollIntervalSeconds != DefaultPollIntervalSeconds {
		t.Errorf("PollIntervalSeconds = %d, want %d", cfg.Backend.PollIntervalSeconds, DefaultPollIntervalSeconds)
	}
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.Server.ListenAddr, DefaultListenAddr)
	}
	if cfg.Server.FetchCap != DefaultFetchCap {
		t.Errorf("FetchCap = %d, want %d", cfg.Server.FetchCap, DefaultFetchCap)
	}
	if !cfg.ViewState.BackupEnabled {
		t.Error("ViewState.BackupEnabled should default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestDefaultConfig_Validates(t *testing.T) {
	result := ValidateConfig(DefaultConfig())
	if result.HasErrors() {
		t.Fatalf("default config should validate, got errors: %v", result.Errors)
	}
}

func TestScriptByName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scripts = []Script{
		{Name: "dump-env", Command: []string{"env"}},
		{Name: "disk-usage", Command: []string{"df", "-h"}},
	}

	script, ok := cfg.ScriptByName("disk-usage")
	if !ok {
		t.Fatal("expected to find disk-usage")
	}
	if script.Command[0] != "df" {
		t.Errorf("Command[0] = %q, want df", script.Command[0])
	}

	if _, ok := cfg.ScriptByName("nope"); ok {
		t.Error("expected lookup miss for unknown script")
	}
}

func TestConfigString_RendersYAML(t *testing.T) {
	out := DefaultConfig().String()

	if !strings.Contains(out, "backend:") {
		t.Errorf("YAML output missing backend section: %q", out)
	}
	if !strings.Contains(out, "base-url:") {
		t.Errorf("YAML output missing base-url key: %q", out)
	}
}

func TestPollInterval(t *testing.T) {
	cfg := BackendConfig{PollIntervalSeconds: 30}
	if cfg.PollInterval().Seconds() != 30 {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval())
	}
}

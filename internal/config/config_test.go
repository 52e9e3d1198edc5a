package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "otsym.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected level warn, got %q", cfg.Log.Level)
	}
	if cfg.Log.Encoding != "console" {
		t.Errorf("Expected console encoding, got %q", cfg.Log.Encoding)
	}
	if cfg.Symbol.LineThickness != 6 {
		t.Errorf("Expected line thickness 6, got %d", cfg.Symbol.LineThickness)
	}
	if cfg.Check.Strict {
		t.Error("Expected lenient checks by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n  encoding: json\nsymbol:\n  line_thickness: 10\ncheck:\n  strict: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Encoding != "json" {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}
	if cfg.Symbol.LineThickness != 10 {
		t.Errorf("Expected line thickness 10, got %d", cfg.Symbol.LineThickness)
	}
	if !cfg.Check.Strict {
		t.Error("Expected strict checks")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("OTSYM_LOG_LEVEL", "error")
	t.Setenv("OTSYM_CHECK_STRICT", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Expected env to override level, got %q", cfg.Log.Level)
	}
	if !cfg.Check.Strict {
		t.Error("Expected env to enable strict checks")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing explicit config file")
	}

	path := writeConfig(t, "symbol:\n  line_thickness: -1\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for a negative line thickness")
	}
}

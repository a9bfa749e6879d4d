package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", DefaultEnvironment)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("expected environment development, got %s", cfg.Environment)
	}
	if cfg.ConfigDir != "./config" {
		t.Errorf("expected config dir ./config, got %s", cfg.ConfigDir)
	}
	if cfg.OutputDir != "./docs/api" {
		t.Errorf("expected output dir ./docs/api, got %s", cfg.OutputDir)
	}
	if cfg.TempDir != "./temp" {
		t.Errorf("expected temp dir ./temp, got %s", cfg.TempDir)
	}
	if cfg.Events.Subject != "docgen.runs" {
		t.Errorf("expected default event subject, got %s", cfg.Events.Subject)
	}
	if len(cfg.RequiredDirs()) != 4 {
		t.Errorf("expected 4 required dirs, got %d", len(cfg.RequiredDirs()))
	}
}

func TestLoadRejectsEmptyEnvironment(t *testing.T) {
	if _, err := Load("", "  "); err == nil {
		t.Fatal("expected error for empty environment name")
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "docgen.yaml")
	content := `
output_dir: ./public/api
events:
  nats_url: nats://localhost:4222
watch:
  debounce_seconds: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath, "production")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OutputDir != "./public/api" {
		t.Errorf("override not applied: %s", cfg.OutputDir)
	}
	if !cfg.Events.Enabled() {
		t.Error("events should be enabled with a nats_url")
	}
	if cfg.Watch.DebounceSec != 5 {
		t.Errorf("expected debounce 5, got %d", cfg.Watch.DebounceSec)
	}
	// Untouched fields still get defaults.
	if cfg.LogDir != "./logs" {
		t.Errorf("expected default log dir, got %s", cfg.LogDir)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("DOCGEN_TEST_OUT", "/srv/docs")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "docgen.yaml")
	if err := os.WriteFile(configPath, []byte("output_dir: ${DOCGEN_TEST_OUT}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath, "development")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.OutputDir != "/srv/docs" {
		t.Errorf("env expansion failed: %s", cfg.OutputDir)
	}
}

func TestLoadMissingConfigFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "staging")
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected staging, got %s", cfg.Environment)
	}
}

func TestLoadUnstatableConfigFileIsAnError(t *testing.T) {
	// A path whose parent is a regular file fails stat with ENOTDIR,
	// which must not be mistaken for an absent config file.
	dir := t.TempDir()
	parent := filepath.Join(dir, "docgen.yaml")
	if err := os.WriteFile(parent, []byte("output_dir: ./public\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(parent, "nested.yaml"), "development"); err == nil {
		t.Fatal("expected error for unstatable config path")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvironmentFromFile(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(configDir, ".env.staging")
	if err := os.WriteFile(envFile, []byte("DOCGEN_API_TITLE=Staging Docs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DOCGEN_API_TITLE", "") // registers cleanup, then unset for real
	os.Unsetenv("DOCGEN_API_TITLE")
	t.Setenv("NODE_ENV", "")
	os.Unsetenv("NODE_ENV")

	cfg := &Settings{Environment: "staging", ConfigDir: configDir}
	if err := cfg.LoadEnvironment(); err != nil {
		t.Fatalf("LoadEnvironment() failed: %v", err)
	}

	if got := os.Getenv("DOCGEN_API_TITLE"); got != "Staging Docs" {
		t.Errorf("expected env var from file, got %q", got)
	}
	if got := os.Getenv("NODE_ENV"); got != "staging" {
		t.Errorf("expected NODE_ENV defaulted to staging, got %q", got)
	}
}

func TestLoadEnvironmentMissingFileFallsBack(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	os.Unsetenv("NODE_ENV")

	cfg := &Settings{Environment: "development", ConfigDir: t.TempDir()}
	if err := cfg.LoadEnvironment(); err != nil {
		t.Fatalf("missing env file must not be fatal: %v", err)
	}
	if got := os.Getenv("NODE_ENV"); got != "development" {
		t.Errorf("expected NODE_ENV defaulted, got %q", got)
	}
}

func TestLoadEnvironmentDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.production")
	if err := os.WriteFile(envFile, []byte("NODE_ENV=file-value\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NODE_ENV", "preset")

	cfg := &Settings{Environment: "production", ConfigDir: dir}
	if err := cfg.LoadEnvironment(); err != nil {
		t.Fatalf("LoadEnvironment() failed: %v", err)
	}
	if got := os.Getenv("NODE_ENV"); got != "preset" {
		t.Errorf("existing process env must win, got %q", got)
	}
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docgen/internal/logfields"
)

// EnvFilePath returns the conventional per-environment file path, e.g.
// config/.env.staging.
func (s *Settings) EnvFilePath() string {
	return filepath.Join(s.ConfigDir, ".env."+s.Environment)
}

// LoadEnvironment loads variables from the per-environment file into the
// process environment. Existing variables are never overridden. A missing
// file is not an error: the inherited process environment is used as-is.
func (s *Settings) LoadEnvironment() error {
	envPath := s.EnvFilePath()
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		slog.Warn("Environment file not found, using inherited environment",
			logfields.Path(envPath),
			logfields.Environment(s.Environment))
	} else if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load environment file %s: %w", envPath, err)
	} else {
		slog.Info("Loaded environment file", logfields.Path(envPath))
	}

	// Tools in the node ecosystem key off NODE_ENV.
	if os.Getenv("NODE_ENV") == "" {
		if err := os.Setenv("NODE_ENV", s.Environment); err != nil {
			return fmt.Errorf("failed to set NODE_ENV: %w", err)
		}
		slog.Debug("Defaulted NODE_ENV", logfields.Environment(s.Environment))
	}
	return nil
}

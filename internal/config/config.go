package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEnvironment is used when no environment argument is given.
const DefaultEnvironment = "development"

// Settings represents the application configuration
type Settings struct {
	Environment string `yaml:"-"`

	ConfigDir string `yaml:"config_dir,omitempty"`
	LogDir    string `yaml:"log_dir,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	TempDir   string `yaml:"temp_dir,omitempty"`
	StaticDir string `yaml:"static_dir,omitempty"`
	SourceDir string `yaml:"source_dir,omitempty"`

	Events  EventsConfig  `yaml:"events,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
}

// EventsConfig controls the optional NATS run-completed publisher
type EventsConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Enabled reports whether event publishing is configured.
func (e EventsConfig) Enabled() bool { return e.NATSURL != "" }

// HistoryConfig controls the sqlite run store
type HistoryConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	Paths       []string `yaml:"paths,omitempty"`
	DebounceSec int      `yaml:"debounce_seconds,omitempty"`
	IntervalMin int      `yaml:"interval_minutes,omitempty"` // 0 disables the scheduled rebuild
	MetricsAddr string   `yaml:"metrics_addr,omitempty"`
}

// Load loads configuration for the given environment. The yaml file is
// optional; an empty path or a missing file yields pure defaults.
func Load(configPath, environment string) (*Settings, error) {
	environment = strings.TrimSpace(environment)
	if environment == "" {
		return nil, fmt.Errorf("environment name cannot be empty")
	}

	settings := &Settings{Environment: environment}

	if configPath != "" {
		_, statErr := os.Stat(configPath)
		switch {
		case statErr == nil:
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			// Expand environment variables in the YAML content
			expandedData := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expandedData), settings); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case os.IsNotExist(statErr):
			// Absent config file means pure defaults.
		default:
			return nil, fmt.Errorf("failed to stat config file: %w", statErr)
		}
	}

	settings.applyDefaults()
	return settings, nil
}

func (s *Settings) applyDefaults() {
	if s.ConfigDir == "" {
		s.ConfigDir = "./config"
	}
	if s.LogDir == "" {
		s.LogDir = "./logs"
	}
	if s.OutputDir == "" {
		s.OutputDir = "./docs/api"
	}
	if s.TempDir == "" {
		s.TempDir = "./temp"
	}
	if s.StaticDir == "" {
		s.StaticDir = "./static-docs"
	}
	if s.SourceDir == "" {
		s.SourceDir = "."
	}
	if s.Events.Subject == "" {
		s.Events.Subject = "docgen.runs"
	}
	if s.Watch.DebounceSec <= 0 {
		s.Watch.DebounceSec = 2
	}
	if len(s.Watch.Paths) == 0 {
		s.Watch.Paths = []string{s.SourceDir}
	}
}

// RequiredDirs returns the working directories that must exist before a run.
func (s *Settings) RequiredDirs() []string {
	return []string{s.ConfigDir, s.LogDir, s.OutputDir, s.TempDir}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Paths is the config file search order, lowest priority first.
var Paths = []string{
	"~/.config/codyplay/config.yaml",
	"./.codyplay.yaml",
}

// Loader merges defaults, config files and environment variables.
type Loader struct {
	paths  []string
	getenv func(string) string
}

// NewLoader creates a loader over the standard search paths and the process environment.
func NewLoader() *Loader {
	return &Loader{paths: Paths, getenv: os.Getenv}
}

// WithEnv replaces the environment lookup (tests).
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// WithPaths replaces the search paths (tests).
func (l *Loader) WithPaths(paths ...string) *Loader {
	l.paths = paths
	return l
}

// Load builds the configuration. If customPath is set only that file is read and
// it must exist. The result is not validated: the caller applies command line
// flags first and then calls Validate.
func (l *Loader) Load(customPath string) (*Config, error) {
	cfg := Default()

	if customPath != "" {
		if err := loadFile(cfg, customPath); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", customPath, err)
		}
	} else {
		for _, p := range l.paths {
			path := expandPath(p)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(cfg, path); err != nil {
				return nil, fmt.Errorf("load config from %s: %w", path, err)
			}
		}
	}

	l.applyEnv(cfg)
	return cfg, nil
}

// loadFile unmarshals a YAML file over cfg. Keys absent from the file keep their
// current values.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}
	return nil
}

// applyEnv applies environment overrides. VITE_API_BASE is honoured when
// CODYPLAY_API_BASE is unset so an existing front-end .env keeps working.
func (l *Loader) applyEnv(cfg *Config) {
	mappings := []struct {
		key   string
		apply func(string)
	}{
		{"VITE_API_BASE", func(v string) { cfg.BaseURL = v }},
		{"CODYPLAY_API_BASE", func(v string) { cfg.BaseURL = v }},
		{"CODYPLAY_ORDERING", func(v string) { cfg.Ordering = Ordering(strings.ToLower(v)) }},
		{"CODYPLAY_LISTEN", func(v string) { cfg.Listen = v }},
		{"CODYPLAY_LOG_FILE", func(v string) { cfg.LogFile = v }},
		{"OTEL_EXPORTER_OTLP_ENDPOINT", func(v string) { cfg.Telemetry.Endpoint = v }},
		{"OTEL_SERVICE_NAME", func(v string) { cfg.Telemetry.ServiceName = v }},
	}
	for _, m := range mappings {
		if v := strings.TrimSpace(l.getenv(m.key)); v != "" {
			m.apply(v)
		}
	}
}

func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

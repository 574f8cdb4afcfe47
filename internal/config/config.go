// Package config builds the single configuration value that codyplay reads once
// at startup and hands to the API client and views.
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Ordering decides whether a completed request may replace the displayed payload.
type Ordering string

const (
	// OrderArrival applies every completion; the last one to arrive wins.
	OrderArrival Ordering = "arrival"
	// OrderRequest applies a completion only if it belongs to a newer activation
	// than the one currently displayed.
	OrderRequest Ordering = "request"
)

// Config holds the complete application configuration.
type Config struct {
	BaseURL   string          `yaml:"base_url"`
	Ordering  Ordering        `yaml:"ordering"`
	Listen    string          `yaml:"listen"`
	Verbose   bool            `yaml:"verbose"`
	LogFile   string          `yaml:"log_file"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// TelemetryConfig configures OTLP trace export. An empty Endpoint disables export.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Default returns a configuration with sensible defaults. BaseURL is left empty;
// requests then target a relative path and fail at the transport.
func Default() *Config {
	return &Config{
		Ordering: OrderArrival,
		Listen:   ":8080",
		Telemetry: TelemetryConfig{
			ServiceName: "codyplay",
		},
	}
}

// Validate rejects malformed values. A missing BaseURL is allowed.
func (c *Config) Validate() error {
	switch c.Ordering {
	case OrderArrival, OrderRequest:
	default:
		return fmt.Errorf("ordering must be %q or %q, got %q", OrderArrival, OrderRequest, c.Ordering)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
		}
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

// APIBase returns BaseURL without a trailing slash, ready for path joining.
func (c *Config) APIBase() string {
	return strings.TrimRight(c.BaseURL, "/")
}

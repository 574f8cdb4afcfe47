package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader().WithPaths().WithEnv(envMap(nil)).Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, OrderArrival, cfg.Ordering)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "codyplay", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.Telemetry.Endpoint)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
base_url: http://file.example/api
ordering: request
listen: ":9000"
`)

	cfg, err := NewLoader().WithEnv(envMap(map[string]string{
		"CODYPLAY_API_BASE": "http://env.example/api",
	})).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/api", cfg.BaseURL)
	assert.Equal(t, OrderRequest, cfg.Ordering)
	assert.Equal(t, ":9000", cfg.Listen)
}

func TestLoad_SearchPathsLaterWins(t *testing.T) {
	dir := t.TempDir()
	low := writeFile(t, dir, "low.yaml", "base_url: http://low.example\nlisten: \":1\"\n")
	high := writeFile(t, dir, "high.yaml", "base_url: http://high.example\n")

	cfg, err := NewLoader().WithPaths(low, filepath.Join(dir, "missing.yaml"), high).
		WithEnv(envMap(nil)).Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://high.example", cfg.BaseURL)
	assert.Equal(t, ":1", cfg.Listen, "keys absent from the later file keep earlier values")
}

func TestLoad_ViteFallback(t *testing.T) {
	cfg, err := NewLoader().WithPaths().WithEnv(envMap(map[string]string{
		"VITE_API_BASE": "http://localhost:8080/api",
	})).Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)

	cfg, err = NewLoader().WithPaths().WithEnv(envMap(map[string]string{
		"VITE_API_BASE":     "http://vite.example",
		"CODYPLAY_API_BASE": "http://native.example",
	})).Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://native.example", cfg.BaseURL)
}

func TestLoad_CustomPathMissing(t *testing.T) {
	_, err := NewLoader().WithEnv(envMap(nil)).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "base_url: [unterminated\n")
	_, err := NewLoader().WithEnv(envMap(nil)).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	cfg, err := NewLoader().WithPaths().WithEnv(envMap(map[string]string{"CODYPLAY_ORDERING": "random"})).Load("")
	require.NoError(t, err)
	assert.Equal(t, Ordering("random"), cfg.Ordering)
	assert.Error(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https base", func(c *Config) { c.BaseURL = "https://api.example/v1" }, false},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://api.example" }, true},
		{"unknown ordering", func(c *Config) { c.Ordering = "random" }, true},
		{"empty listen", func(c *Config) { c.Listen = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAPIBase_TrimsTrailingSlash(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "http://api.example/api/"
	assert.Equal(t, "http://api.example/api", cfg.APIBase())
}

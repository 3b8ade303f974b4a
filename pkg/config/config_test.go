package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://telegra.ph", cfg.Telegraph.BaseURL)
	assert.Equal(t, "https://telegra.ph/", cfg.Telegraph.Referer)
	assert.Equal(t, DefaultUserAgents, cfg.Telegraph.UserAgents)
	assert.Equal(t, time.Second, cfg.Download.Delay)
	assert.Zero(t, cfg.Download.Timeout)
	assert.NoError(t, cfg.Validate())

	// the pool is copied, not shared
	cfg.Telegraph.UserAgents[0] = "changed"
	assert.NotEqual(t, "changed", DefaultUserAgents[0])
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"BASE_URL", "http://localhost:8080")
	t.Setenv(EnvPrefix+"USER_AGENT", "test-agent")
	t.Setenv(EnvPrefix+"DELAY", "250ms")
	t.Setenv(EnvPrefix+"TIMEOUT", "10s")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "debug")
	t.Setenv(EnvPrefix+"COLOR", "false")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "http://localhost:8080", cfg.Telegraph.BaseURL)
	assert.Equal(t, []string{"test-agent"}, cfg.Telegraph.UserAgents)
	assert.Equal(t, 250*time.Millisecond, cfg.Download.Delay)
	assert.Equal(t, 10*time.Second, cfg.Download.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.UI.ColorEnabled)
}

func TestLoadFromEnvInvalidDuration(t *testing.T) {
	t.Setenv(EnvPrefix+"DELAY", "soon")

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPrefix+"DELAY")
	assert.Equal(t, time.Second, cfg.Download.Delay)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `telegraph:
  base_url: "http://example.test"
  user_agents:
    - "agent-a"
    - "agent-b"
download:
  delay: 2s
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "http://example.test", cfg.Telegraph.BaseURL)
	assert.Equal(t, "https://telegra.ph/", cfg.Telegraph.Referer, "unset keys keep defaults")
	assert.Equal(t, []string{"agent-a", "agent-b"}, cfg.Telegraph.UserAgents)
	assert.Equal(t, 2*time.Second, cfg.Download.Delay)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFileErrors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telegraph: [unclosed"), 0644))
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"relative base url", func(c *Config) { c.Telegraph.BaseURL = "telegra.ph" }, "absolute URL"},
		{"empty referer", func(c *Config) { c.Telegraph.Referer = "" }, "referer is required"},
		{"no user agents", func(c *Config) { c.Telegraph.UserAgents = nil }, "at least one user agent"},
		{"blank user agent", func(c *Config) { c.Telegraph.UserAgents = []string{" "} }, "user agent 0 is empty"},
		{"negative delay", func(c *Config) { c.Download.Delay = -time.Second }, "delay cannot be negative"},
		{"negative timeout", func(c *Config) { c.Download.Timeout = -time.Second }, "timeout cannot be negative"},
		{"bad permissions", func(c *Config) { c.Download.FilePermissions = "rw-r--r--" }, "invalid file permissions"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFileMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Download.FilePermissions = "0600"
	mode, err := cfg.FileMode()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), mode)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"log-level": "error",
		"delay":     time.Duration(0),
		"color":     false,
	})

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Zero(t, cfg.Download.Delay)
	assert.False(t, cfg.UI.ColorEnabled)
	assert.Zero(t, cfg.Download.Timeout, "absent keys are left alone")
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("download:\n  delay: 3s\n  timeout: 5s\n"), 0644))

	t.Setenv(EnvPrefix+"DELAY", "4s")

	cfg, err := Load(path, map[string]interface{}{"timeout": 6 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.Download.Delay, "env overrides file")
	assert.Equal(t, 6*time.Second, cfg.Download.Timeout, "flags override file")
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load("", map[string]interface{}{"log-level": "shouting"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Download.Delay = 1500 * time.Millisecond
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, cfg, loaded)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.Equal(t, AppName, filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}

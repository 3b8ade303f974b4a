package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user configuration directory
	AppName = "telegraphdl"
	// EnvPrefix is prepended to every environment variable the loader reads
	EnvPrefix = "TELEGRAPHDL_"
)

// Config holds all configuration options for the telegraph downloader
type Config struct {
	// Site the articles and images are fetched from
	Telegraph TelegraphConfig `yaml:"telegraph" json:"telegraph"`

	// Download pacing and transport settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Console output
	UI UIConfig `yaml:"ui" json:"ui"`
}

// TelegraphConfig holds site-specific configuration
type TelegraphConfig struct {
	BaseURL    string   `yaml:"base_url" json:"base_url"`
	Referer    string   `yaml:"referer" json:"referer"`
	UserAgents []string `yaml:"user_agents" json:"user_agents"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	// Delay is the pause after every successful image download
	Delay time.Duration `yaml:"delay" json:"delay"`
	// Timeout bounds each HTTP request; zero means no timeout
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`
	FilePermissions string        `yaml:"file_permissions" json:"file_permissions"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// UIConfig holds console output preferences
type UIConfig struct {
	ColorEnabled bool `yaml:"color_enabled" json:"color_enabled"`
}

// DefaultUserAgents is the pool request User-Agents are drawn from
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.1 (KHTML, like Gecko) Chrome/22.0.1207.1 Safari/537.1",
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/536.6 (KHTML, like Gecko) Chrome/20.0.1092.0 Safari/536.6",
	"Mozilla/5.0 (Windows NT 6.2) AppleWebKit/536.6 (KHTML, like Gecko) Chrome/20.0.1090.0 Safari/536.6",
	"Mozilla/5.0 (Windows NT 6.2; WOW64) AppleWebKit/537.1 (KHTML, like Gecko) Chrome/19.77.34.5 Safari/537.1",
	"Mozilla/5.0 (Windows NT 6.0) AppleWebKit/536.5 (KHTML, like Gecko) Chrome/19.0.1084.36 Safari/536.5",
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1063.0 Safari/536.3",
	"Mozilla/5.0 (Windows NT 5.1) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1063.0 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.2) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1062.0 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1062.0 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.2) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1061.1 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1061.1 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.1) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1061.1 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.2) AppleWebKit/536.3 (KHTML, like Gecko) Chrome/19.0.1061.0 Safari/536.3",
	"Mozilla/5.0 (Windows NT 6.2; WOW64) AppleWebKit/535.24 (KHTML, like Gecko) Chrome/19.0.1055.1 Safari/535.24",
}

// DefaultConfig returns a Config that reproduces the classic behaviour:
// one second between downloads, no request timeout.
func DefaultConfig() *Config {
	agents := make([]string, len(DefaultUserAgents))
	copy(agents, DefaultUserAgents)

	return &Config{
		Telegraph: TelegraphConfig{
			BaseURL:    "https://telegra.ph",
			Referer:    "https://telegra.ph/",
			UserAgents: agents,
		},
		Download: DownloadConfig{
			Delay:           time.Second,
			Timeout:         0,
			FilePermissions: "0644",
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
		UI: UIConfig{
			ColorEnabled: true,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if baseURL := os.Getenv(EnvPrefix + "BASE_URL"); baseURL != "" {
		c.Telegraph.BaseURL = baseURL
	}
	if referer := os.Getenv(EnvPrefix + "REFERER"); referer != "" {
		c.Telegraph.Referer = referer
	}
	if agent := os.Getenv(EnvPrefix + "USER_AGENT"); agent != "" {
		c.Telegraph.UserAgents = []string{agent}
	}

	if delay := os.Getenv(EnvPrefix + "DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDELAY: %w", EnvPrefix, err))
		} else {
			c.Download.Delay = d
		}
	}
	if timeout := os.Getenv(EnvPrefix + "TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err))
		} else {
			c.Download.Timeout = d
		}
	}

	if logLevel := os.Getenv(EnvPrefix + "LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv(EnvPrefix + "LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	if color := os.Getenv(EnvPrefix + "COLOR"); color != "" {
		c.UI.ColorEnabled = strings.ToLower(color) == "true"
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// ConfigDir returns the per-user configuration directory,
// e.g. ~/.config/telegraphdl on Linux.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".telegraphdl.yaml",
		".telegraphdl.yml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(ConfigDir(), "config.yml"),
		filepath.Join(home, ".telegraphdl.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Telegraph.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base URL %q must be an absolute URL", c.Telegraph.BaseURL))
	}
	if c.Telegraph.Referer == "" {
		errs = append(errs, errors.New("referer is required"))
	}
	if len(c.Telegraph.UserAgents) == 0 {
		errs = append(errs, errors.New("at least one user agent is required"))
	}
	for i, ua := range c.Telegraph.UserAgents {
		if strings.TrimSpace(ua) == "" {
			errs = append(errs, fmt.Errorf("user agent %d is empty", i))
		}
	}

	if c.Download.Delay < 0 {
		errs = append(errs, errors.New("delay cannot be negative"))
	}
	if c.Download.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}
	if _, err := c.FileMode(); err != nil {
		errs = append(errs, err)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// FileMode parses Download.FilePermissions as an octal mode
func (c *Config) FileMode() (os.FileMode, error) {
	mode, err := strconv.ParseUint(c.Download.FilePermissions, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file permissions %q: %w", c.Download.FilePermissions, err)
	}
	return os.FileMode(mode), nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if delay, ok := flags["delay"].(time.Duration); ok {
		c.Download.Delay = delay
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok {
		c.Download.Timeout = timeout
	}
	if color, ok := flags["color"].(bool); ok {
		c.UI.ColorEnabled = color
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".telegraphdl.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up when none is given.
const DefaultFile = "kudastat.yaml"

// Config represents the top-level kudastat.yaml configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Report ReportConfig `yaml:"report"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	JSON  bool   `yaml:"json"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string          `yaml:"addr"`
	MaxUploadBytes int64           `yaml:"max_upload_bytes"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles statement uploads: one token every Interval,
// up to Burst at once.
type RateLimitConfig struct {
	Interval time.Duration `yaml:"interval"`
	Burst    int           `yaml:"burst"`
}

// ReportConfig controls how statements are summarized.
type ReportConfig struct {
	SavingsKeyword string `yaml:"savings_keyword"`
	TopRecipients  int    `yaml:"top_recipients"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// Load reads a kudastat.yaml file from disk. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 10 << 20,
			RateLimit: RateLimitConfig{
				Interval: time.Second,
				Burst:    5,
			},
		},
		Report: ReportConfig{
			SavingsKeyword: "savings",
			TopRecipients:  100,
			CurrencySymbol: "₦",
		},
	}
}

// Resolve builds the effective configuration: defaults, then the file at
// path if it exists, then KUDASTAT_* environment variables. A missing file
// is only an error when required is set.
func Resolve(path string, required bool) (*Config, error) {
	cfg, err := Load(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !required:
		cfg = Default()
	default:
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.New("invalid config: server.addr is empty")
	case c.Server.MaxUploadBytes <= 0:
		return fmt.Errorf("invalid config: server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	case c.Server.RateLimit.Interval <= 0:
		return fmt.Errorf("invalid config: server.rate_limit.interval must be positive, got %s", c.Server.RateLimit.Interval)
	case c.Server.RateLimit.Burst < 1:
		return fmt.Errorf("invalid config: server.rate_limit.burst must be at least 1, got %d", c.Server.RateLimit.Burst)
	case c.Report.TopRecipients < 1:
		return fmt.Errorf("invalid config: report.top_recipients must be at least 1, got %d", c.Report.TopRecipients)
	}
	return nil
}

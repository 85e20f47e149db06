package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultContentCacheSizeMB  = 8
	defaultContactMaxBodyBytes = 64 * 1024
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// contact submissions go to the service log when empty
	ContactLogPath string `toml:"contact_log_path"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	// content
	ContentCacheSizeMB int `toml:"content_cache_size_mb"`
	// contact form
	ContactMaxBodyBytes int64 `toml:"contact_max_body_bytes"`
}

type Toml struct {
	Development *Config `toml:"development"`
	DockerDev   *Config `toml:"dockerdev"`
	Production  *Config `toml:"production"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	return cfg, nil
}

// Load reads the TOML config file and returns the section for the given env.
func Load(env, configPath string) (*Config, error) {
	var cfgToml Toml
	if _, err := toml.DecodeFile(configPath, &cfgToml); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", configPath, err)
	}

	cfg, err := cfgToml.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.ContentCacheSizeMB <= 0 {
		c.ContentCacheSizeMB = defaultContentCacheSizeMB
	}
	if c.ContactMaxBodyBytes <= 0 {
		c.ContactMaxBodyBytes = defaultContactMaxBodyBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.PrometheusMetricsPort == "" {
		return fmt.Errorf("prometheus metrics port not set")
	}
	return nil
}

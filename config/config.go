package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/wgapi/cluster"
)

// ErrMissingApplicationID is returned by ValidateForRequests when no application id is configured
var ErrMissingApplicationID = errors.New("api.application_id is required")

// LoadOption adjusts how Load builds the configuration
type LoadOption func(*viper.Viper)

// WithOverride sets key after the file and environment are read, so the
// value takes precedence and is validated with the rest of the configuration.
func WithOverride(key string, value any) LoadOption {
	return func(v *viper.Viper) {
		v.Set(key, value)
	}
}

// Load loads the configuration from file and WGAPI_* environment variables.
// Without an explicit path a missing config file is not an error.
func Load(configPath string, opts ...LoadOption) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("wgapi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wgapi"))
		}

		v.AddConfigPath("/etc/wgapi/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	for _, opt := range opts {
		opt(v)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.application_id", "")
	v.SetDefault("api.scheme", "https")
	v.SetDefault("api.connection_timeout_ms", 30000)
	v.SetDefault("api.proxy_host", "")
	v.SetDefault("api.proxy_port", 80)
	v.SetDefault("api.user_agent", "wgapi")
	v.SetDefault("api.tracing", false)

	v.SetDefault("defaults.cluster", "wot")
	v.SetDefault("defaults.region", "eu")

	v.SetDefault("status.concurrency", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Scheme != "http" && cfg.API.Scheme != "https" {
		return fmt.Errorf("invalid api.scheme: %s (must be 'http' or 'https')", cfg.API.Scheme)
	}

	if cfg.API.ConnectionTimeoutMs <= 0 {
		return fmt.Errorf("api.connection_timeout_ms must be positive, got %d", cfg.API.ConnectionTimeoutMs)
	}

	if cfg.API.ProxyPort <= 0 || cfg.API.ProxyPort > 65535 {
		return fmt.Errorf("invalid api.proxy_port: %d", cfg.API.ProxyPort)
	}

	if cfg.Defaults.Cluster != "" {
		if _, err := cluster.ParseCluster(cfg.Defaults.Cluster); err != nil {
			return fmt.Errorf("invalid defaults.cluster: %w", err)
		}
	}
	if cfg.Defaults.Region != "" {
		if _, err := cluster.ParseRegion(cfg.Defaults.Region); err != nil {
			return fmt.Errorf("invalid defaults.region: %w", err)
		}
	}

	if cfg.Status.Concurrency < 1 {
		return fmt.Errorf("status.concurrency must be at least 1, got %d", cfg.Status.Concurrency)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ValidateForRequests checks the settings needed before talking to the API
func (c *Config) ValidateForRequests() error {
	if c.API.ApplicationID == "" || c.API.ApplicationID == "your-application-id" {
		return ErrMissingApplicationID
	}
	return nil
}

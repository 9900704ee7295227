package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Status   StatusConfig   `mapstructure:"status"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds the process-wide connection settings applied to every request
type APIConfig struct {
	ApplicationID       string `mapstructure:"application_id"`
	Scheme              string `mapstructure:"scheme"`
	ConnectionTimeoutMs int    `mapstructure:"connection_timeout_ms"`
	ProxyHost           string `mapstructure:"proxy_host"`
	ProxyPort           int    `mapstructure:"proxy_port"`
	UserAgent           string `mapstructure:"user_agent"`
	Tracing             bool   `mapstructure:"tracing"`
}

// ConnectionTimeout returns the connect timeout as a duration
func (c APIConfig) ConnectionTimeout() time.Duration {
	return time.Duration(c.ConnectionTimeoutMs) * time.Millisecond
}

// HasProxy checks if a proxy is configured
func (c APIConfig) HasProxy() bool {
	return c.ProxyHost != ""
}

// DefaultsConfig holds the cluster and region used when none is given
type DefaultsConfig struct {
	Cluster string `mapstructure:"cluster"`
	Region  string `mapstructure:"region"`
}

// StatusConfig contains settings for the status command
type StatusConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

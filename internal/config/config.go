package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/simple-uber/pkg/uber"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIToken           string        `mapstructure:"uber_token"`
	APIEnvironment     string        `mapstructure:"api_environment"`
	APIBaseURL         string        `mapstructure:"api_base_url"`
	APIVersion         string        `mapstructure:"api_version"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	TargetsFile          string        `mapstructure:"targets_file"`
	PublishersFile       string        `mapstructure:"publishers_file"`
	WatchIntervalSeconds int64         `mapstructure:"watch_interval"`
	WatchInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "simple-uber")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("uber_token", "")
	v.SetDefault("api_environment", EnvironmentProduction)
	v.SetDefault("api_base_url", "")
	v.SetDefault("api_version", uber.DefaultVersion)
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("targets_file", "./configs/targets.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("watch_interval", 60) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/snapshots.db")
	v.SetDefault("storage_ttl_seconds", int64(time.Hour/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((15*time.Minute)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIToken = strings.TrimSpace(c.APIToken)
	c.APIEnvironment = strings.ToLower(strings.TrimSpace(c.APIEnvironment))
	c.APIBaseURL = strings.TrimSpace(c.APIBaseURL)

	switch c.APIEnvironment {
	case EnvironmentProduction, EnvironmentSandbox:
	default:
		return fmt.Errorf("invalid api_environment %q (expected %s or %s)", c.APIEnvironment, EnvironmentProduction, EnvironmentSandbox)
	}
	if strings.TrimSpace(c.APIVersion) == "" {
		return fmt.Errorf("invalid api_version (must not be empty)")
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	if c.WatchIntervalSeconds <= 0 {
		return fmt.Errorf("invalid watch_interval (must be positive seconds)")
	}
	c.WatchInterval = time.Duration(c.WatchIntervalSeconds) * time.Second

	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second

	return nil
}

// BaseURL returns the explicit override if set, otherwise the endpoint for APIEnvironment.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.APIEnvironment == EnvironmentSandbox {
		return uber.SandboxAPI
	}
	return uber.ProductionAPI
}

// RequireToken fails when no API token was configured.
func (c *Config) RequireToken() error {
	if c.APIToken == "" {
		return fmt.Errorf("uber_token is not set (export UBER_TOKEN or add it to configs/.env)")
	}
	return nil
}

// MarshalLog hides the token when the config is logged.
func (c Config) MarshalLog() map[string]any {
	return map[string]any{
		"app_name":        c.AppName,
		"app_env":         c.Env,
		"log_level":       c.LogLevel,
		"api_base_url":    c.BaseURL(),
		"api_version":     c.APIVersion,
		"token_set":       c.APIToken != "",
		"targets_file":    c.TargetsFile,
		"publishers_file": c.PublishersFile,
		"watch_interval":  c.WatchInterval.String(),
		"storage_type":    c.StorageType,
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".concierge-chat"
	DefaultConfigFile = "config.yaml"

	// EnvWebhookURL overrides the configured webhook URL, mirroring the
	// build-time override the embedded widget supports.
	EnvWebhookURL = "CONCIERGE_WEBHOOK_URL"
)

// Config represents the application configuration
type Config struct {
	// WebhookURL is the full URL of the assistant webhook endpoint.
	WebhookURL string `yaml:"webhook_url"`

	// SessionID is sent with every request. The hosted deployment uses a
	// static value per property.
	SessionID string `yaml:"session_id"`

	// RequestTimeoutSeconds bounds a single webhook round trip, retry
	// included. Zero means the default.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// HistoryWindow is how many trailing messages accompany each request.
	HistoryWindow int `yaml:"history_window"`
}

func DefaultConfig() *Config {
	return &Config{
		WebhookURL:            "https://automation.example.com/webhook/guest-concierge",
		SessionID:             "front-desk-kiosk",
		RequestTimeoutSeconds: 60,
		HistoryWindow:         10,
	}
}

// RequestTimeout returns the configured timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// DataDir returns the application data directory (config, log, store).
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigDir), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, DefaultConfigFile), nil
}

// Load loads the configuration from file, creating default if not exists.
// The CONCIERGE_WEBHOOK_URL environment variable wins over the file value.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, create default. If the save fails the
		// app still works with the in-memory default.
		_ = Save(cfg)
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if url := os.Getenv(EnvWebhookURL); url != "" {
		cfg.WebhookURL = url
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to file
func Save(cfg *Config) error {
	dataDir, err := DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dataDir, DefaultConfigFile)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for obvious misconfiguration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WebhookURL) == "" {
		return fmt.Errorf("webhook_url must not be empty")
	}
	if !strings.HasPrefix(c.WebhookURL, "http://") && !strings.HasPrefix(c.WebhookURL, "https://") {
		return fmt.Errorf("webhook_url must be an http(s) URL, got %q", c.WebhookURL)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative, got %d", c.RequestTimeoutSeconds)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("history_window must not be negative, got %d", c.HistoryWindow)
	}
	return nil
}

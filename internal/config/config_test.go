package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Default is valid", func(c *Config) {}, false},
		{"Empty webhook URL", func(c *Config) { c.WebhookURL = "  " }, true},
		{"Non-http scheme", func(c *Config) { c.WebhookURL = "ftp://example.com/webhook/x" }, true},
		{"Negative timeout", func(c *Config) { c.RequestTimeoutSeconds = -1 }, true},
		{"Negative history window", func(c *Config) { c.HistoryWindow = -5 }, true},
		{"Plain http allowed", func(c *Config) { c.WebhookURL = "http://localhost:5678/webhook/x" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("Expected default 60s timeout, got %v", cfg.RequestTimeout())
	}

	cfg.RequestTimeoutSeconds = 0
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("Expected 60s for zero value, got %v", cfg.RequestTimeout())
	}

	cfg.RequestTimeoutSeconds = 15
	if cfg.RequestTimeout() != 15*time.Second {
		t.Errorf("Expected 15s, got %v", cfg.RequestTimeout())
	}
}

func TestLoadCreatesDefaultAndAppliesEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvWebhookURL, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WebhookURL != DefaultConfig().WebhookURL {
		t.Errorf("Expected default webhook URL, got %q", cfg.WebhookURL)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("Expected config file created at %s: %v", configPath, err)
	}

	t.Setenv(EnvWebhookURL, "https://override.example.com/webhook/kiosk")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load with override failed: %v", err)
	}
	if cfg.WebhookURL != "https://override.example.com/webhook/kiosk" {
		t.Errorf("Expected env override to win, got %q", cfg.WebhookURL)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvWebhookURL, "")

	dir := filepath.Join(home, DefaultConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	bad := "webhook_url: \"not-a-url\"\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for invalid webhook_url")
	}
}

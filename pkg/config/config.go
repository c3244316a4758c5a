package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents the application configuration shared by the chat
// client and the assistant daemon.
type Config struct {
	AssistantURL      string       `json:"assistant_url"`
	DashboardURL      string       `json:"dashboard_url"`
	APITimeoutSeconds int          `json:"api_timeout_seconds"`
	SnapshotMode      string       `json:"snapshot_mode"` // "live" | "static"
	LogLevel          string       `json:"log_level"`
	LogFormat         string       `json:"log_format"` // "json" | "text"
	LogFile           string       `json:"log_file"`
	Server            ServerConfig `json:"server"`
}

// ServerConfig holds the assistant daemon configuration.
type ServerConfig struct {
	Addr        string  `json:"addr"`
	LLMProvider string  `json:"llm_provider"` // "openai" | "google"
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Default returns a configuration with default values.
func Default() Config {
	return Config{
		AssistantURL:      "http://localhost:5000",
		DashboardURL:      "http://localhost:3000",
		APITimeoutSeconds: 60,
		SnapshotMode:      "live",
		LogLevel:          "info",
		LogFormat:         "json",
		Server: ServerConfig{
			Addr:        ":5000",
			LLMProvider: "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Environment variables override file values.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return applyEnvOverrides(cfg), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return applyEnvOverrides(applyMigrationDefaults(cfg)), nil
}

// applyMigrationDefaults fills fields missing from configs written by
// older versions.
func applyMigrationDefaults(cfg Config) Config {
	defaults := Default()

	if strings.TrimSpace(cfg.AssistantURL) == "" {
		cfg.AssistantURL = defaults.AssistantURL
	}
	if strings.TrimSpace(cfg.DashboardURL) == "" {
		cfg.DashboardURL = defaults.DashboardURL
	}
	if cfg.APITimeoutSeconds <= 0 {
		cfg.APITimeoutSeconds = defaults.APITimeoutSeconds
	}
	if strings.TrimSpace(cfg.SnapshotMode) == "" {
		cfg.SnapshotMode = defaults.SnapshotMode
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if strings.TrimSpace(cfg.LogFormat) == "" {
		cfg.LogFormat = defaults.LogFormat
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if strings.TrimSpace(cfg.Server.LLMProvider) == "" {
		cfg.Server.LLMProvider = defaults.Server.LLMProvider
	}
	if strings.TrimSpace(cfg.Server.Model) == "" {
		cfg.Server.Model = defaults.Server.Model
	}
	if cfg.Server.MaxTokens <= 0 {
		cfg.Server.MaxTokens = defaults.Server.MaxTokens
	}

	return cfg
}

func applyEnvOverrides(cfg Config) Config {
	if v := os.Getenv("DASHCHAT_ASSISTANT_URL"); v != "" {
		cfg.AssistantURL = v
	}
	if v := os.Getenv("DASHCHAT_DASHBOARD_URL"); v != "" {
		cfg.DashboardURL = v
	}
	if v := os.Getenv("DASHCHAT_SNAPSHOT_MODE"); v != "" {
		cfg.SnapshotMode = strings.ToLower(v)
	}
	if v := os.Getenv("DASHCHAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("DASHCHAT_API_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil && timeout > 0 {
			cfg.APITimeoutSeconds = timeout
		}
	}
	if v := os.Getenv("DASHCHAT_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DASHCHAT_LLM_PROVIDER"); v != "" {
		cfg.Server.LLMProvider = strings.ToLower(v)
	}
	if v := os.Getenv("DASHCHAT_MODEL"); v != "" {
		cfg.Server.Model = v
	}
	return cfg
}

// Save saves the configuration to the specified path.
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AssistantURL) == "" {
		return fmt.Errorf("assistant_url is required")
	}

	if c.SnapshotMode != "live" && c.SnapshotMode != "static" {
		return fmt.Errorf("snapshot_mode must be \"live\" or \"static\", got: %q", c.SnapshotMode)
	}

	if c.SnapshotMode == "live" && strings.TrimSpace(c.DashboardURL) == "" {
		return fmt.Errorf("dashboard_url is required when snapshot_mode is \"live\"")
	}

	if c.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", c.APITimeoutSeconds)
	}

	if c.Server.LLMProvider != "openai" && c.Server.LLMProvider != "google" {
		return fmt.Errorf("unsupported LLM provider: %s", c.Server.LLMProvider)
	}

	if c.Server.Temperature < 0 || c.Server.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %f", c.Server.Temperature)
	}

	if c.Server.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", c.Server.MaxTokens)
	}

	return nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dashchat", "config.json")
	}
	return filepath.Join(homeDir, ".dashchat", "config.json")
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	envSlackBotToken = "SLACK_BOT_TOKEN"
	envSlackAppToken = "SLACK_APP_TOKEN"

	botTokenPrefix = "xoxb-"
	appTokenPrefix = "xapp-"
)

// Config is the root runtime configuration loaded from config.json.
type Config struct {
	Slack   SlackConfig   `json:"slack"`
	Metrics MetricsConfig `json:"metrics,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `json:"format,omitempty"`
	Level     string `json:"level,omitempty"`
	AddSource bool   `json:"add_source,omitempty"`
}

// MetricsConfig configures the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"`
}

// SlackConfig configures the Slack backend.
//
// BotToken and AppToken accept either a literal token or a path to a
// file whose contents are the token.
type SlackConfig struct {
	Enabled        bool   `json:"enabled"`
	BotToken       string `json:"bot_token"`
	AppToken       string `json:"app_token,omitempty"`
	TeamID         string `json:"team_id,omitempty"`
	DefaultChannel string `json:"default_channel,omitempty"`
	SocketMode     bool   `json:"socket_mode,omitempty"`
}

// ResolvedBotToken validates and resolves the bot token value.
func (c SlackConfig) ResolvedBotToken() (string, error) {
	return resolveToken(c.BotToken, botTokenPrefix)
}

// ResolvedAppToken validates and resolves the app-level token value.
//
// An empty app token is allowed; streaming is unavailable without one.
func (c SlackConfig) ResolvedAppToken() (string, error) {
	if strings.TrimSpace(c.AppToken) == "" {
		return "", nil
	}
	return resolveToken(c.AppToken, appTokenPrefix)
}

// HasSocketMode reports whether the event stream can be opened.
func (c SlackConfig) HasSocketMode() bool {
	return c.SocketMode || strings.TrimSpace(c.AppToken) != ""
}

// resolveToken accepts a token with the expected prefix, or the path of
// a file containing one.
func resolveToken(value, prefix string) (string, error) {
	token := strings.TrimSpace(value)
	if token == "" {
		return "", fmt.Errorf("token is required (expected %s* value or file path)", prefix)
	}

	if strings.HasPrefix(token, prefix) {
		return token, nil
	}

	if info, err := os.Stat(token); err == nil && !info.IsDir() {
		content, err := os.ReadFile(token)
		if err != nil {
			return "", fmt.Errorf("read token file: %w", err)
		}
		fromFile := strings.TrimSpace(string(content))
		if !strings.HasPrefix(fromFile, prefix) {
			return "", fmt.Errorf("token file %s does not contain a %s* token", token, prefix)
		}
		return fromFile, nil
	}

	return "", fmt.Errorf("token must start with %q or be a file path", prefix)
}

// LoadConfig resolves config.json, unmarshals it, and applies environment overrides.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides injects selected env-driven settings on top of file config.
func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if token := strings.TrimSpace(os.Getenv(envSlackBotToken)); token != "" {
		cfg.Slack.BotToken = token
	}

	if token := strings.TrimSpace(os.Getenv(envSlackAppToken)); token != "" {
		cfg.Slack.AppToken = token
	}
}

// findConfigPath resolves the active config file location.
//
// Precedence is CHATBRIDGE_CONFIG first, then cwd-local fallback paths.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv("CHATBRIDGE_CONFIG")); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("CHATBRIDGE_CONFIG does not point to a file: %s", value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "config", "config.json"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("config.json not found (checked %s and %s)", candidates[0], candidates[1])
}

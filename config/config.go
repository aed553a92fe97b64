package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration loaded from YAML. The Gemini API key
// may be absent; generation then surfaces a diagnostic per turn instead of
// failing at boot.
type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Debate struct {
		MaxMessages       int    `yaml:"maxMessages"`
		UserReplyDelayMs  int    `yaml:"userReplyDelayMs"`
		FallbackDelayMs   int    `yaml:"fallbackDelayMs"`
		DefaultSpeedIndex int    `yaml:"defaultSpeedIndex"`
		Speeds            []struct {
			Label   string `yaml:"label"`
			DelayMs int    `yaml:"delayMs"`
		} `yaml:"speeds"`
	} `yaml:"debate"`
}

// LoadConfig reads the configuration file and fills in defaults for anything
// the file leaves out.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// Default returns a configuration with all stock values, used when no config
// file is present.
func Default() *Config {
	var cfg Config
	cfg.ApplyDefaults()
	return &cfg
}

// ApplyDefaults fills zero values with the stock tuning.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.Debate.MaxMessages == 0 {
		c.Debate.MaxMessages = 30
	}
	if c.Debate.UserReplyDelayMs == 0 {
		c.Debate.UserReplyDelayMs = 1500
	}
	if c.Debate.FallbackDelayMs == 0 {
		c.Debate.FallbackDelayMs = 3000
	}
	if len(c.Debate.Speeds) == 0 {
		c.Debate.Speeds = []struct {
			Label   string `yaml:"label"`
			DelayMs int    `yaml:"delayMs"`
		}{
			{Label: "0.5x", DelayMs: 12000},
			{Label: "0.75x", DelayMs: 9000},
			{Label: "1x", DelayMs: 7000},
			{Label: "1.5x", DelayMs: 5000},
			{Label: "2x", DelayMs: 3000},
		}
		c.Debate.DefaultSpeedIndex = 2
	}
	if c.Debate.DefaultSpeedIndex < 0 || c.Debate.DefaultSpeedIndex >= len(c.Debate.Speeds) {
		c.Debate.DefaultSpeedIndex = 0
	}
}

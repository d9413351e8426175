package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"polymer/internal/app"
)

type Config struct {
	Env           string `yaml:"env"`
	Verbose       bool   `yaml:"verbose"`
	Strategy      string `yaml:"strategy"`
	MaxLineLength int    `yaml:"max_line_length"`
	HttpPort      int    `yaml:"http_port"`
}

func Default() *Config {
	return &Config{
		Env:           "local",
		Strategy:      string(app.Rescan),
		MaxLineLength: app.DefaultMaxLineLength,
		HttpPort:      8080,
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := app.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.Env != "local" && c.Env != "prod" {
		return fmt.Errorf("%w: env must be local or prod, got %q", app.ErrInvalidInput, c.Env)
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("%w: max_line_length must be positive, got %d", app.ErrInvalidInput, c.MaxLineLength)
	}
	if c.HttpPort < 0 || c.HttpPort > 65535 {
		return fmt.Errorf("%w: http_port out of range: %d", app.ErrInvalidInput, c.HttpPort)
	}
	return nil
}

// Package config provides configuration management for meal-portion.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/RadixSeven/MealPortionCalculator/internal/models"
)

// Config represents the calculator configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// ServerConfig contains settings for the MCP tool endpoint.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultsConfig holds the mixing limits used when a request leaves them out.
// A zero max portion or ingredient cap means no limit; a zero carb cap
// means carb free.
type DefaultsConfig struct {
	MinPortion         int     `yaml:"min_portion"`
	MaxPortion         int     `yaml:"max_portion"`
	MaxSoylent         float64 `yaml:"max_soylent"`
	MaxHLTHCode        float64 `yaml:"max_hlth_code"`
	MaxCarbsPerPortion float64 `yaml:"max_carbs_per_portion"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8011,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Defaults: DefaultsConfig{
			MinPortion:         models.DefaultMinPortion,
			MaxCarbsPerPortion: models.Soylent.Carbs,
		},
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
// Values from a .env file in the working directory are made available to
// ${VAR} references and the MEAL_PORTION_* overrides.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if host := os.Getenv("MEAL_PORTION_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("MEAL_PORTION_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid MEAL_PORTION_PORT %q: %w", port, err)
		}
		c.Server.Port = p
	}
	if level := os.Getenv("MEAL_PORTION_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

// Validate checks the configuration for values the calculator cannot use.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	d := c.Defaults
	if d.MinPortion < 0 || d.MaxPortion < 0 || d.MaxSoylent < 0 || d.MaxHLTHCode < 0 || d.MaxCarbsPerPortion < 0 {
		return fmt.Errorf("mixing defaults must not be negative")
	}
	if d.MaxPortion > 0 && d.MinPortion > d.MaxPortion {
		return fmt.Errorf("default min portion %d exceeds default max portion %d", d.MinPortion, d.MaxPortion)
	}
	return nil
}

// Request builds a mix request seeded with the configured defaults.
func (d DefaultsConfig) Request(totalCalories, finalPortions int) models.MixRequest {
	req := models.DefaultMixRequest(totalCalories, finalPortions)
	req.MinPortion = d.MinPortion
	req.MaxCarbsPerPortion = d.MaxCarbsPerPortion
	if d.MaxPortion > 0 {
		maxPortion := d.MaxPortion
		req.MaxPortion = &maxPortion
	}
	if d.MaxSoylent > 0 {
		req.MaxSoylent = d.MaxSoylent
	}
	if d.MaxHLTHCode > 0 {
		req.MaxHLTHCode = d.MaxHLTHCode
	}
	return req
}

// Package config loads the optional YAML config file and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/utils"
)

// Config holds user configuration. Secrets are never written to the file.
type Config struct {
	Timezone string      `yaml:"timezone"`
	Store    string      `yaml:"store"`
	Debug    bool        `yaml:"debug"`
	Coach    CoachConfig `yaml:"coach"`
	Share    ShareConfig `yaml:"share"`

	// DBConnection comes from GROWTHLOG_DB_CONNECTION only.
	DBConnection string `yaml:"-"`
}

// CoachConfig configures the Gemini coach.
type CoachConfig struct {
	Model string `yaml:"model"`
	// APIKey comes from GEMINI_API_KEY only.
	APIKey string `yaml:"-"`
}

// ShareConfig configures share links.
type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Timezone: constants.DefaultTimezone,
		Store:    constants.DefaultConfigPath,
		Coach:    CoachConfig{Model: constants.DefaultCoachModel},
		Share:    ShareConfig{BaseURL: constants.DefaultShareBaseURL},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if tz := os.Getenv("GROWTHLOG_TIMEZONE"); tz != "" {
		c.Timezone = tz
	}
	if conn := os.Getenv("GROWTHLOG_DB_CONNECTION"); conn != "" {
		c.DBConnection = conn
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Coach.APIKey = key
	}
}

// applyDefaults fills fields a partial file left blank.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.Store == "" {
		c.Store = def.Store
	}
	if c.Coach.Model == "" {
		c.Coach.Model = def.Coach.Model
	}
	if c.Share.BaseURL == "" {
		c.Share.BaseURL = def.Share.BaseURL
	}
}

// Validate checks the timezone.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// Now returns the current time in the configured timezone.
func (c *Config) Now() time.Time {
	now, err := utils.NowInTimezone(c.Timezone)
	if err != nil {
		return time.Now()
	}
	return now
}

// SPDX-License-Identifier: Apache-2.0

// Package config loads tool configuration from a YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings shared by all report commands. Priority:
// ENV > YAML > defaults. Command-line flags override all of these.
type Config struct {
	// Reader selects the dump parsing strategy: xml, lines or strict.
	Reader string `yaml:"reader" env:"WIKTERS_READER" env-default:"xml"`

	// Languages are the language sections analyzed per page.
	Languages []string `yaml:"languages" env:"WIKTERS_LANGUAGES" env-default:"English"`

	// Limit stops the scan after this many pages; 0 scans everything.
	Limit int `yaml:"limit" env:"WIKTERS_LIMIT" env-default:"0"`

	// ProgressEvery logs ingestion progress after this many pages;
	// 0 disables progress logging.
	ProgressEvery int `yaml:"progress_every" env:"WIKTERS_PROGRESS_EVERY" env-default:"100000"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"WIKTERS_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration the usual way: the YAML file named by
// CONFIG_PATH (fallback "./config.yaml"), then environment variables on
// top. A missing fallback file is fine; a missing explicit CONFIG_PATH is
// an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks field values that cleanenv cannot.
func (c *Config) Validate() error {
	switch c.Reader {
	case "xml", "lines", "strict":
	default:
		return fmt.Errorf("reader must be xml, lines or strict, got %q", c.Reader)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one language is required")
	}
	return nil
}

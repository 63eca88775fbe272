// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for whogrep.
type Config struct {
	// Server configures the chat server connection.
	Server ServerConfig `yaml:"server"`

	// Search configures the enumeration search engine.
	Search SearchConfig `yaml:"search"`
}

// ServerConfig configures the chat server connection.
type ServerConfig struct {
	// Address is the server in host:port form.
	Address string `yaml:"address"`

	// Nick is the nickname to register with.
	Nick string `yaml:"nick"`

	// TLS enables a TLS connection to the server.
	TLS bool `yaml:"tls"`
}

// SearchConfig configures the enumeration search engine.
type SearchConfig struct {
	// CaseSensitive controls pattern compilation. Default: false.
	CaseSensitive bool `yaml:"case_sensitive"`

	// Debug enables debug logging of dropped records. Default: false.
	Debug bool `yaml:"debug"`

	// TimeoutSeconds bounds the wait for the end-of-list marker.
	// Default: 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Fields selects which entity fields the matcher sees: "all", or
	// any combination of "nick", "host", "realname". Default: "all".
	Fields string `yaml:"fields"`
}

// Default returns the default configuration. These defaults are the
// base the config file is merged onto — the connection fields have no
// usable defaults and must come from the file.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			TimeoutSeconds: 30,
			Fields:         "all",
		},
	}
}

// Load loads configuration from the WHOGREP_CONFIG environment
// variable. There are no fallbacks — if WHOGREP_CONFIG is not set,
// this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("WHOGREP_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("WHOGREP_CONFIG environment variable not set; " +
			"set it to the path of your whogrep.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path and validates
// it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("config: server.address is required")
	}
	if c.Server.Nick == "" {
		return fmt.Errorf("config: server.nick is required")
	}
	if c.Search.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: search.timeout_seconds must be positive, got %d", c.Search.TimeoutSeconds)
	}
	return nil
}

// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package cliconfig loads configuration for the gptlink CLI.
//
// Configuration comes from a single YAML file specified by the
// GPTLINK_CONFIG environment variable or the --config flag. There is
// no automatic discovery: every setting has a default that works
// without any file at all, and when a file is given it is the single
// source of truth.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable pointing at the config file.
const EnvVar = "GPTLINK_CONFIG"

// Config holds the CLI settings.
type Config struct {
	// BaseURL is prepended to generated share links. The fragment is
	// appended verbatim, so the value should end where a fragment can
	// start (typically with a trailing slash).
	BaseURL string `yaml:"base_url"`

	// StoreDir is where namespace snapshots are written.
	StoreDir string `yaml:"store_dir"`

	// NamespaceDisplay is how many hex characters of the namespace
	// hash the CLI prints. The full hash still keys the store.
	NamespaceDisplay int `yaml:"namespace_display"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		BaseURL:          "https://chat.example.com/",
		StoreDir:         filepath.Join(homeDir, ".local", "share", "gptlink"),
		NamespaceDisplay: 8,
	}
}

// Load reads configuration from the file named by GPTLINK_CONFIG,
// falling back to defaults when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path, merged over the defaults.
func LoadFile(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	config.StoreDir = expandHome(config.StoreDir)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if strings.Contains(c.BaseURL, "#") {
		return fmt.Errorf("base_url must not contain a fragment")
	}
	if c.StoreDir == "" {
		return fmt.Errorf("store_dir is required")
	}
	if c.NamespaceDisplay < 4 || c.NamespaceDisplay > 128 {
		return fmt.Errorf("namespace_display must be between 4 and 128, got %d", c.NamespaceDisplay)
	}
	return nil
}

// expandHome expands a leading ~ or ${HOME} in a path.
func expandHome(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return strings.ReplaceAll(path, "${HOME}", homeDir)
}

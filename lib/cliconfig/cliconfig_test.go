// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
	if config.NamespaceDisplay != 8 {
		t.Errorf("NamespaceDisplay = %d, want 8", config.NamespaceDisplay)
	}
}

func TestLoad_NoEnvVar(t *testing.T) {
	t.Setenv(EnvVar, "")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if config.BaseURL != Default().BaseURL {
		t.Errorf("BaseURL = %q, want default", config.BaseURL)
	}
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gptlink.yaml")
	content := "base_url: https://my.chat.host/\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	config, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if config.BaseURL != "https://my.chat.host/" {
		t.Errorf("BaseURL = %q, want https://my.chat.host/", config.BaseURL)
	}
	// Unset fields keep their defaults.
	if config.NamespaceDisplay != 8 {
		t.Errorf("NamespaceDisplay = %d, want default 8", config.NamespaceDisplay)
	}
	if config.StoreDir == "" {
		t.Error("StoreDir lost its default")
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gptlink.yaml")
	content := "store_dir: ~/gptlink-store\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	config, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if strings.HasPrefix(config.StoreDir, "~") {
		t.Errorf("StoreDir = %q, want ~ expanded", config.StoreDir)
	}
	if !filepath.IsAbs(config.StoreDir) {
		t.Errorf("StoreDir = %q, want absolute path", config.StoreDir)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile(missing) should return error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"base url with fragment", func(c *Config) { c.BaseURL = "https://x.example/#frag" }},
		{"empty store dir", func(c *Config) { c.StoreDir = "" }},
		{"display too short", func(c *Config) { c.NamespaceDisplay = 2 }},
		{"display too long", func(c *Config) { c.NamespaceDisplay = 256 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := Default()
			tc.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("Validate() should return error")
			}
		})
	}
}

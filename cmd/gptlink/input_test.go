// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gptlink-foundation/gptlink/lib/cliconfig"
	"github.com/gptlink-foundation/gptlink/lib/sharelink"
)

func TestReadPasswordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("  hunter2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	password, err := readPasswordFromPath(path)
	if err != nil {
		t.Fatalf("readPasswordFromPath: %v", err)
	}
	if password != "hunter2" {
		t.Errorf("password = %q, want %q", password, "hunter2")
	}
}

func TestReadPasswordFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := readPasswordFromPath(path); err == nil {
		t.Error("expected error for whitespace-only password file")
	}
}

func TestReadConfigValueJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	input := `{
		// the model to use
		"model": "gpt-4o-mini",
		"temperature": 0.7, // trailing comma below
	}`
	if err := os.WriteFile(path, []byte(input), 0o600); err != nil {
		t.Fatal(err)
	}

	value, err := readConfigValue(path)
	if err != nil {
		t.Fatalf("readConfigValue: %v", err)
	}
	want := map[string]any{"model": "gpt-4o-mini", "temperature": 0.7}
	if !reflect.DeepEqual(value, want) {
		t.Errorf("value = %#v, want %#v", value, want)
	}
}

func TestReadConfigValueRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := readConfigValue(path); err == nil {
		t.Error("expected parse error for invalid input")
	}
}

func TestDisplayNamespace(t *testing.T) {
	namespace := sharelink.Namespace{ID: "0123456789abcdef0123456789abcdef"}

	tests := []struct {
		width int
		want  string
	}{
		{8, "01234567"},
		{12, "0123456789ab"},
		{0, namespace.ID},
		{999, namespace.ID},
	}
	for _, test := range tests {
		config := &cliconfig.Config{NamespaceDisplay: test.width}
		if got := displayNamespace(namespace, config); got != test.want {
			t.Errorf("displayNamespace(width=%d) = %q, want %q", test.width, got, test.want)
		}
	}
}

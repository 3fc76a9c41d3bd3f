// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// runEncode reads a configuration document, encrypts it under a
// password, and prints the resulting share link.
func runEncode(args []string) error {
	flags := pflag.NewFlagSet("encode", pflag.ExitOnError)
	var (
		configPath   string
		fromFile     string
		baseURL      string
		passwordFile string
		verbose      bool
	)
	flags.StringVar(&configPath, "config", "", "path to the gptlink config file")
	flags.StringVar(&fromFile, "from-file", "", "read the configuration from a file instead of stdin (JSON, comments allowed)")
	flags.StringVar(&baseURL, "base-url", "", "base URL for the generated link (overrides the config file)")
	flags.StringVar(&passwordFile, "password-file", "", "read the password from a file ('-' for stdin) instead of prompting")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log pipeline diagnostics to stderr")
	if err := flags.Parse(args); err != nil {
		return err
	}

	toolConfig, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = toolConfig.BaseURL
	}

	value, err := readConfigValue(fromFile)
	if err != nil {
		return err
	}

	// Confirmation only makes sense for an interactive prompt; a
	// password file is already deliberate.
	password, err := readPassword(passwordFile, passwordFile == "")
	if err != nil {
		return err
	}

	logger := newLogger(verbose)
	assembler := newAssembler(logger, verbose)

	link, err := assembler.Encode(value, password, baseURL)
	if err != nil {
		return err
	}

	fmt.Println(link)

	namespace, err := assembler.DeriveNamespace(link, password)
	if err != nil {
		return err
	}
	logger.Info("share link created", "namespace", displayNamespace(namespace, toolConfig))
	return nil
}

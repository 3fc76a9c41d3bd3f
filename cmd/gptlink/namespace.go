// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gptlink-foundation/gptlink/lib/cliconfig"
	"github.com/gptlink-foundation/gptlink/lib/sharelink"
)

// runNamespace derives and prints the storage namespace of a share
// link without decrypting its payload.
func runNamespace(args []string) error {
	flags := pflag.NewFlagSet("namespace", pflag.ExitOnError)
	var (
		configPath    string
		passwordFile  string
		full          bool
		showMasterKey bool
	)
	flags.StringVar(&configPath, "config", "", "path to the gptlink config file")
	flags.StringVar(&passwordFile, "password-file", "", "read the password from a file ('-' for stdin) instead of prompting")
	flags.BoolVar(&full, "full", false, "print the full namespace hash instead of the display form")
	flags.BoolVar(&showMasterKey, "show-master-key", false, "also print the link's master key")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if len(flags.Args()) == 0 {
		if passwordFile == "" {
			return fmt.Errorf("reading the link from stdin requires --password-file")
		}
		if passwordFile == "-" {
			return fmt.Errorf("the link and the password cannot both come from stdin")
		}
	}

	link, err := readLinkArgument(flags.Args())
	if err != nil {
		return err
	}

	toolConfig, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	password, err := readPassword(passwordFile, false)
	if err != nil {
		return err
	}

	namespace, err := sharelink.DeriveNamespace(link, password)
	if err != nil {
		return err
	}

	if full {
		fmt.Println(namespace.ID)
	} else {
		fmt.Println(displayNamespace(namespace, toolConfig))
	}
	if showMasterKey {
		fmt.Println(namespace.MasterKey)
	}
	return nil
}

// displayNamespace truncates the namespace hash to the configured
// display width.
func displayNamespace(namespace sharelink.Namespace, config *cliconfig.Config) string {
	width := config.NamespaceDisplay
	if width <= 0 || width > len(namespace.ID) {
		return namespace.ID
	}
	return namespace.ID[:width]
}

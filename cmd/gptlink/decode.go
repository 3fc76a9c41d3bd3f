// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gptlink-foundation/gptlink/lib/store"
)

// storeConfigKey is the snapshot key under which a decoded
// configuration is saved.
const storeConfigKey = "config"

// runDecode decrypts a share link and prints the configuration as
// indented JSON. With --save the configuration is also written to the
// local store under the link's namespace.
func runDecode(args []string) error {
	flags := pflag.NewFlagSet("decode", pflag.ExitOnError)
	var (
		configPath   string
		passwordFile string
		save         bool
		verbose      bool
	)
	flags.StringVar(&configPath, "config", "", "path to the gptlink config file")
	flags.StringVar(&passwordFile, "password-file", "", "read the password from a file ('-' for stdin) instead of prompting")
	flags.BoolVar(&save, "save", false, "persist the decoded configuration in the local store")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log pipeline diagnostics to stderr")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// The link may arrive on stdin, in which case the password must
	// come from a file: stdin cannot serve both.
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

	logger := newLogger(verbose)
	assembler := newAssembler(logger, verbose)

	value, err := assembler.Decode(link, password)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", output)

	if save {
		namespace, err := assembler.DeriveNamespace(link, password)
		if err != nil {
			return err
		}
		st, err := store.Open(toolConfig.StoreDir)
		if err != nil {
			return err
		}
		if err := st.Set(namespace.ID, storeConfigKey, value); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}
		logger.Info("configuration saved",
			"namespace", displayNamespace(namespace, toolConfig),
			"dir", st.Dir())
	}
	return nil
}

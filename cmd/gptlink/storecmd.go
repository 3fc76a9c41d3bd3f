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

// runStore dispatches the store inspection subcommands.
func runStore(args []string) error {
	if len(args) < 1 {
		printStoreUsage()
		return fmt.Errorf("store subcommand required")
	}

	switch args[0] {
	case "list":
		return runStoreList(args[1:])
	case "keys":
		return runStoreKeys(args[1:])
	case "get":
		return runStoreGet(args[1:])
	case "delete":
		return runStoreDelete(args[1:])
	case "-h", "--help", "help":
		printStoreUsage()
		return nil
	default:
		printStoreUsage()
		return fmt.Errorf("unknown store subcommand: %q", args[0])
	}
}

func printStoreUsage() {
	fmt.Fprintf(os.Stderr, `Usage: gptlink store <subcommand> [flags]

Subcommands:
  list                      List saved namespaces
  keys <namespace>          List keys within a namespace
  get <namespace> <key>     Print a stored value as JSON
  delete <namespace> <key>  Remove a stored value
`)
}

// openStore resolves the store directory from the tool configuration
// and opens it.
func openStore(configPath string) (*store.Store, error) {
	toolConfig, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return store.Open(toolConfig.StoreDir)
}

func runStoreList(args []string) error {
	flags := pflag.NewFlagSet("store list", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to the gptlink config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	st, err := openStore(*configPath)
	if err != nil {
		return err
	}
	namespaces, err := st.Namespaces()
	if err != nil {
		return err
	}
	for _, namespace := range namespaces {
		fmt.Println(namespace)
	}
	return nil
}

func runStoreKeys(args []string) error {
	flags := pflag.NewFlagSet("store keys", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to the gptlink config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: gptlink store keys <namespace>")
	}

	st, err := openStore(*configPath)
	if err != nil {
		return err
	}
	keys, err := st.Keys(flags.Arg(0))
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

func runStoreGet(args []string) error {
	flags := pflag.NewFlagSet("store get", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to the gptlink config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("usage: gptlink store get <namespace> <key>")
	}

	st, err := openStore(*configPath)
	if err != nil {
		return err
	}
	var value any
	found, err := st.Get(flags.Arg(0), flags.Arg(1), &value)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no value for key %q in namespace %s", flags.Arg(1), flags.Arg(0))
	}

	output, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering value: %w", err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", output)
	return nil
}

func runStoreDelete(args []string) error {
	flags := pflag.NewFlagSet("store delete", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to the gptlink config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("usage: gptlink store delete <namespace> <key>")
	}

	st, err := openStore(*configPath)
	if err != nil {
		return err
	}
	return st.Delete(flags.Arg(0), flags.Arg(1))
}

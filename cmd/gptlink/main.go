// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/gptlink-foundation/gptlink/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "encode":
		return runEncode(os.Args[2:])
	case "decode":
		return runDecode(os.Args[2:])
	case "namespace":
		return runNamespace(os.Args[2:])
	case "store":
		return runStore(os.Args[2:])
	case "version":
		fmt.Printf("gptlink %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: gptlink <subcommand> [flags]

Subcommands:
  encode      Encrypt a configuration into a share link
  decode      Decrypt a share link back into its configuration
  namespace   Derive the storage namespace for a share link
  store       Inspect locally saved configurations
  version     Print version information

Run 'gptlink <subcommand> --help' for subcommand flags.
`)
}

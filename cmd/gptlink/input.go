// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
	"golang.org/x/term"

	"github.com/gptlink-foundation/gptlink/lib/cliconfig"
	"github.com/gptlink-foundation/gptlink/lib/sharelink"
)

// loadConfig resolves tool configuration from an explicit --config path,
// the GPTLINK_CONFIG environment variable, or built-in defaults.
func loadConfig(path string) (*cliconfig.Config, error) {
	if path != "" {
		return cliconfig.LoadFile(path)
	}
	return cliconfig.Load()
}

// newLogger builds the stderr logger. Verbose mode lowers the level to
// debug so the assembler's format-negotiation events become visible.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newAssembler wires the share-link assembler to the logger. Without
// --verbose the assembler stays silent.
func newAssembler(logger *slog.Logger, verbose bool) *sharelink.Assembler {
	config := sharelink.AssemblerConfig{}
	if verbose {
		config.Observer = &sharelink.SlogObserver{Logger: logger}
	}
	return sharelink.NewAssembler(config)
}

// readPassword obtains the password from a file ("-" means stdin), or
// interactively with echo disabled when no file is given. Interactive
// reads require a terminal on stdin; confirm asks for the password twice
// and rejects mismatches.
func readPassword(passwordFile string, confirm bool) (string, error) {
	if passwordFile != "" {
		return readPasswordFromPath(passwordFile)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; use --password-file to supply the password")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password is empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, "Confirm password: ")
		second, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password confirmation: %w", err)
		}
		if !bytes.Equal(first, second) {
			return "", fmt.Errorf("passwords do not match")
		}
	}

	return string(first), nil
}

// readPasswordFromPath reads a password from a file path, or from the
// first line of stdin if path is "-". Surrounding whitespace is trimmed.
func readPasswordFromPath(path string) (string, error) {
	if path == "-" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading stdin: %w", err)
			}
			return "", fmt.Errorf("stdin is empty")
		}
		password := strings.TrimSpace(scanner.Text())
		if password == "" {
			return "", fmt.Errorf("password is empty")
		}
		return password, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading password file: %w", err)
	}
	password := strings.TrimSpace(string(data))
	if password == "" {
		return "", fmt.Errorf("password file %s is empty", path)
	}
	return password, nil
}

// readConfigValue reads the configuration document from stdin or a file.
// The input may carry comments and trailing commas (JSONC); it is
// normalized to strict JSON before parsing.
func readConfigValue(fromFile string) (any, error) {
	var reader io.Reader
	if fromFile != "" {
		file, err := os.Open(fromFile)
		if err != nil {
			return nil, fmt.Errorf("opening configuration file: %w", err)
		}
		defer file.Close()
		reader = file
	} else {
		reader = os.Stdin
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("no configuration provided (pipe JSON to stdin or use --from-file)")
	}

	var value any
	if err := json.Unmarshal(jsonc.ToJSON(data), &value); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return value, nil
}

// readLinkArgument takes the share link from the first positional
// argument, or from stdin when no argument is given.
func readLinkArgument(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return "", fmt.Errorf("no share link provided (pass it as an argument or pipe it to stdin)")
	}
	link := strings.TrimSpace(scanner.Text())
	if link == "" {
		return "", fmt.Errorf("share link is empty")
	}
	return link, nil
}

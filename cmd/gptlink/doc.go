// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// gptlink packs chat-application configurations into password-
// protected share links and unpacks them again. See `gptlink help`.
package main

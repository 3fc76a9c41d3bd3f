// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package sharelink

import "log/slog"

// Observer receives diagnostic events from the pipeline. The pipeline
// functions themselves stay pure: every side channel (logging,
// metrics, UI progress) hangs off this interface, injected at
// assembler construction. Implementations must not retain or log the
// password, keys, or plaintext — they are never passed in.
type Observer interface {
	// FormatAttempted is called once per wire format tried during
	// decode negotiation, with nil err on the attempt that won.
	FormatAttempted(format string, err error)

	// TokenEncoded is called after a successful encode with the
	// payload sizes at each pipeline stage: canonical JSON text,
	// compressed bytes, and the final envelope.
	TokenEncoded(textBytes, compressedBytes, envelopeBytes int)
}

// NopObserver discards all events. The default.
type NopObserver struct{}

func (NopObserver) FormatAttempted(string, error) {}

func (NopObserver) TokenEncoded(int, int, int) {}

// SlogObserver forwards pipeline events to a structured logger at
// debug level.
type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) FormatAttempted(format string, err error) {
	if err != nil {
		o.Logger.Debug("wire format rejected", "format", format, "error", err)
		return
	}
	o.Logger.Debug("wire format accepted", "format", format)
}

func (o SlogObserver) TokenEncoded(textBytes, compressedBytes, envelopeBytes int) {
	o.Logger.Debug("token encoded",
		"text_bytes", textBytes,
		"compressed_bytes", compressedBytes,
		"envelope_bytes", envelopeBytes)
}

// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the share-link envelope layout and the
// negotiation across its historical formats.
//
// An envelope is the concatenation [salt][nonce seed][ciphertext],
// self-describing only by total length — there is no version tag. The
// transport form is the envelope in padding-free base64url, safe to
// embed in a URL fragment.
//
// Three formats have ever been produced, and all remain decodable.
// [Negotiate] tries them in fixed priority order (newest first) until
// one authenticates; a wrong total length rejects a candidate before
// any KDF work is spent, and a failed authentication tag moves on to
// the next candidate. When every candidate fails the caller learns
// only that decryption failed, not which assumption broke. Extending
// the protocol means appending a [Format] to [Formats], nothing else.
package wire

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gptlink-foundation/gptlink/lib/aead"
	"github.com/gptlink-foundation/gptlink/lib/keyderive"
)

const (
	// SaltSize is the current-generation salt length.
	SaltSize = 10

	// NonceSeedSize is the current-generation nonce seed length.
	NonceSeedSize = 10

	// LegacySaltSize is the salt length of the first generation.
	LegacySaltSize = 16
)

// ErrDecryptionFailed is returned when no known wire format yields an
// authenticated plaintext: wrong password, corrupted token, or a
// future format this build does not know. The causes are deliberately
// indistinguishable.
var ErrDecryptionFailed = errors.New("wire: decryption failed under every known format")

// Envelope is the parsed byte layout of a share-link token.
type Envelope struct {
	// Salt feeds the password KDF. Freshly random per encode, never
	// reused.
	Salt []byte

	// NonceSeed is the stored artifact from which the cipher nonce is
	// recovered. Under formats that expand, the seed is stretched to
	// the full nonce length by a one-way hash; under the legacy
	// format this field holds the full raw nonce.
	NonceSeed []byte

	// Ciphertext is the sealed payload, authentication tag included.
	Ciphertext []byte
}

// EncodeToken serializes an envelope to its transport form:
// base64url, no padding.
func EncodeToken(envelope Envelope) string {
	raw := make([]byte, 0, len(envelope.Salt)+len(envelope.NonceSeed)+len(envelope.Ciphertext))
	raw = append(raw, envelope.Salt...)
	raw = append(raw, envelope.NonceSeed...)
	raw = append(raw, envelope.Ciphertext...)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeToken reverses the transport encoding. Standard-alphabet
// padding characters are rejected — tokens are produced padding-free
// and anything else did not come from this pipeline.
func DecodeToken(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return raw, nil
}

// Format describes one historical generation of the envelope layout:
// how to split the raw bytes, how to recover the cipher nonce, and
// which KDF produces the key.
type Format struct {
	// Name identifies the format in diagnostics.
	Name string

	// SaltSize and NonceSeedSize fix the envelope split.
	SaltSize      int
	NonceSeedSize int

	// ExpandNonce is true when the stored seed must be stretched to
	// the cipher nonce length; false when it already is the nonce.
	ExpandNonce bool

	// DeriveKey is the generation's password KDF.
	DeriveKey func(password string, salt []byte) [keyderive.KeySize]byte
}

// Formats is the negotiation order: current format first, then each
// older generation. Append new formats at the front when the protocol
// evolves; never remove or reorder existing entries.
var Formats = []Format{
	{
		Name:          "sha512-iterated",
		SaltSize:      SaltSize,
		NonceSeedSize: NonceSeedSize,
		ExpandNonce:   true,
		DeriveKey:     keyderive.DecryptionKey,
	},
	{
		Name:          "pbkdf2",
		SaltSize:      SaltSize,
		NonceSeedSize: NonceSeedSize,
		ExpandNonce:   true,
		DeriveKey:     keyderive.PBKDF2Key,
	},
	{
		Name:          "legacy",
		SaltSize:      LegacySaltSize,
		NonceSeedSize: aead.NonceSize,
		ExpandNonce:   false,
		DeriveKey:     keyderive.LegacyKey,
	},
}

// CurrentFormat is the generation used for all new envelopes.
var CurrentFormat = Formats[0]

// Split partitions raw envelope bytes according to the format's
// layout. Returns false when the total length cannot hold the salt,
// the seed and a minimal authenticated ciphertext — the cheap
// rejection that keeps negotiation from invoking the KDF on
// hopeless candidates.
func (f Format) Split(raw []byte) (Envelope, bool) {
	minimum := f.SaltSize + f.NonceSeedSize + aead.Overhead
	if len(raw) < minimum {
		return Envelope{}, false
	}
	return Envelope{
		Salt:       raw[:f.SaltSize],
		NonceSeed:  raw[f.SaltSize : f.SaltSize+f.NonceSeedSize],
		Ciphertext: raw[f.SaltSize+f.NonceSeedSize:],
	}, true
}

// Nonce recovers the cipher nonce from an envelope under this format.
func (f Format) Nonce(envelope Envelope) [aead.NonceSize]byte {
	if f.ExpandNonce {
		return aead.ExpandNonce(envelope.NonceSeed)
	}
	var nonce [aead.NonceSize]byte
	copy(nonce[:], envelope.NonceSeed)
	return nonce
}

// Open attempts to authenticate and decrypt raw envelope bytes under
// this single format.
func (f Format) Open(raw []byte, password string) ([]byte, Envelope, error) {
	envelope, ok := f.Split(raw)
	if !ok {
		return nil, Envelope{}, fmt.Errorf("envelope too short for %s layout", f.Name)
	}
	key := f.DeriveKey(password, envelope.Salt)
	plaintext, err := aead.Open(envelope.Ciphertext, f.Nonce(envelope), key)
	if err != nil {
		return nil, Envelope{}, err
	}
	return plaintext, envelope, nil
}

// AttemptFunc observes one negotiation attempt: the format tried and
// its outcome (nil on success). Purely diagnostic.
type AttemptFunc func(format string, err error)

// Negotiate tries every known format in priority order and returns
// the first authenticated plaintext along with the parsed envelope
// and the winning format. observe may be nil. When nothing
// authenticates the error is ErrDecryptionFailed, regardless of why
// each candidate failed.
func Negotiate(raw []byte, password string, observe AttemptFunc) ([]byte, Envelope, Format, error) {
	for _, format := range Formats {
		plaintext, envelope, err := format.Open(raw, password)
		if observe != nil {
			observe(format.Name, err)
		}
		if err == nil {
			return plaintext, envelope, format, nil
		}
	}
	return nil, Envelope{}, Format{}, ErrDecryptionFailed
}

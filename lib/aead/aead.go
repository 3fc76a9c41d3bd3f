// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package aead provides the authenticated encryption used for
// share-link payloads. It wraps NaCl secretbox (XSalsa20-Poly1305)
// with the two operations the pipeline needs: seal compressed
// plaintext under a derived key, and open it again.
//
// The cipher needs a 24-byte nonce, but the wire format only carries a
// 10-byte seed to keep links short. [ExpandNonce] stretches the seed
// to the full nonce through a one-way hash; the raw nonce never
// appears in any stored or transmitted artifact.
package aead

import (
	"crypto/sha512"
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the secretbox key size.
	KeySize = 32

	// NonceSize is the secretbox nonce size.
	NonceSize = 24

	// Overhead is the Poly1305 authentication tag appended to every
	// ciphertext. An envelope whose ciphertext is shorter than this
	// cannot possibly authenticate.
	Overhead = secretbox.Overhead
)

// ErrAuthentication is returned by Open when the ciphertext does not
// authenticate under the given key and nonce. Wrong key, wrong nonce
// and tampered ciphertext are indistinguishable, deliberately.
var ErrAuthentication = errors.New("aead: message authentication failed")

// ExpandNonce derives the full 24-byte cipher nonce from a stored
// seed: the leading bytes of SHA-512 over the seed. One-way, so the
// seed reveals nothing about unused digest bytes, and deterministic,
// so encoder and decoder agree without transmitting the nonce itself.
func ExpandNonce(seed []byte) [NonceSize]byte {
	digest := sha512.Sum512(seed)
	var nonce [NonceSize]byte
	copy(nonce[:], digest[:NonceSize])
	return nonce
}

// Seal encrypts and authenticates plaintext. The returned ciphertext
// is Overhead bytes longer than the plaintext.
func Seal(plaintext []byte, nonce [NonceSize]byte, key [KeySize]byte) []byte {
	return secretbox.Seal(nil, plaintext, &nonce, &key)
}

// Open authenticates and decrypts ciphertext, returning
// ErrAuthentication if the tag does not verify.
func Open(ciphertext []byte, nonce [NonceSize]byte, key [KeySize]byte) ([]byte, error) {
	plaintext, ok := secretbox.Open(nil, ciphertext, &nonce, &key)
	if !ok {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

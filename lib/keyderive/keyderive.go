// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package keyderive turns share-link passwords into symmetric keys.
//
// Three generations of derivation exist, all still decodable (see
// lib/wire for the negotiation order):
//
//   - [DecryptionKey] / [MasterKey] -- current generation: iterated
//     SHA-512 with full 64-byte chaining, truncated to 32 bytes only
//     after the final round
//   - [PBKDF2Key] -- prior generation: PBKDF2-HMAC-SHA512
//   - [LegacyKey] -- first generation: iterated SHA-512 truncated to
//     32 bytes every round
//
// [NamespaceHash] derives the storage-partition identifier from a
// decryption key, master key and nonce seed. Two sessions holding the
// same link and password compute the same hash without exchanging any
// secret.
//
// Every function here is a pure, deterministic, CPU-bound
// transformation. The iterated loops cost thousands of hash
// invocations; interactive callers should run them off the input-
// handling path.
package keyderive

import (
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the size of every derived symmetric key.
	KeySize = 32

	// Iterations is the round count of the current-generation KDF.
	// A protocol constant: changing it orphans every existing link.
	Iterations = 8192

	// PBKDF2Iterations is the iteration count used by the prior
	// wire format.
	PBKDF2Iterations = 10000

	// LegacyIterations is the round count of the first-generation
	// truncate-each-round scheme.
	LegacyIterations = 10000
)

// DecryptionKey derives the 32-byte symmetric key for the current wire
// format from a password and salt. Each round hashes the full 64-byte
// running state concatenated with the salt; truncating before the
// final round would measurably weaken the construction, so the state
// is only cut to KeySize at the very end.
func DecryptionKey(password string, salt []byte) [KeySize]byte {
	return iterate([]byte(password), Iterations, salt)
}

// MasterKey derives the secondary 32-byte secret used for namespace
// derivation. The loop is identical to DecryptionKey except that every
// round also absorbs the nonce seed, which guarantees the two keys
// differ even though both start from the same password and salt.
func MasterKey(password string, salt, nonceSeed []byte) [KeySize]byte {
	return iterate([]byte(password), Iterations, salt, nonceSeed)
}

// iterate runs the full-width iterated-SHA-512 loop: each round hashes
// the running 64-byte state followed by every extra input, and the
// first KeySize bytes of the final state become the key.
func iterate(seed []byte, rounds int, extra ...[]byte) [KeySize]byte {
	state := seed
	for round := 0; round < rounds; round++ {
		hasher := sha512.New()
		hasher.Write(state)
		for _, input := range extra {
			hasher.Write(input)
		}
		state = hasher.Sum(nil)
	}
	var key [KeySize]byte
	copy(key[:], state)
	return key
}

// PBKDF2Key derives a key the way the prior wire format did:
// PBKDF2-HMAC-SHA512 over the password and salt.
func PBKDF2Key(password string, salt []byte) [KeySize]byte {
	var key [KeySize]byte
	copy(key[:], pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, KeySize, sha512.New))
	return key
}

// LegacyKey derives a key the way the first wire format did: iterated
// SHA-512 with the state truncated to 32 bytes after every round.
func LegacyKey(password string, salt []byte) [KeySize]byte {
	state := []byte(password)
	for round := 0; round < LegacyIterations; round++ {
		digest := sha512.Sum512(append(append([]byte(nil), state...), salt...))
		state = digest[:KeySize]
	}
	var key [KeySize]byte
	copy(key[:], state)
	return key
}

// NamespaceHash computes the storage-partition identifier: a single
// SHA-512 over the decryption key, the master key and the nonce seed,
// hex encoded. Callers wanting a short display identifier truncate the
// returned string themselves.
func NamespaceHash(decryptionKey, masterKey [KeySize]byte, nonceSeed []byte) string {
	hasher := sha512.New()
	hasher.Write(decryptionKey[:])
	hasher.Write(masterKey[:])
	hasher.Write(nonceSeed)
	return hex.EncodeToString(hasher.Sum(nil))
}

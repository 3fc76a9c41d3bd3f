// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package sharelink is the public entry point of the share-link
// pipeline: it bundles a JSON-serializable chat-application
// configuration into a password-protected token embedded in a URL
// fragment, and reconstitutes it on the other side.
//
// Encoding runs canonicalization (lib/canonical), compression
// (lib/lzstring), key derivation (lib/keyderive), authenticated
// encryption (lib/aead) and envelope framing (lib/wire) in that
// order; decoding reverses it, negotiating across every wire format
// ever produced so old links keep working. All guarantees come from
// client-side cryptography — the fragment is never transmitted.
//
// Key exports:
//
//   - [Encode] -- configuration + password + base URL to share link
//   - [Decode] -- link (or fragment, or bare token) + password back
//     to the configuration
//   - [DeriveNamespace] -- the storage-partition identifier and
//     master key for a link, computed without decrypting the payload
//   - [Assembler] -- the same three operations with an injectable
//     [Observer] event sink and randomness source
//
// Errors split three ways: [ErrNotSerializable] (bad input to
// Encode), [ErrDecryptionFailed] (wrong password, corrupted link, or
// unknown format — deliberately indistinguishable), and
// [ErrMalformedPayload] (authenticated but structurally invalid,
// indicating a codec bug rather than user error).
//
// Every operation is a synchronous, CPU-bound pure function of its
// inputs plus fresh randomness on encode. The iterated KDF costs
// thousands of hash invocations; schedule encode/decode off any
// interactive path.
package sharelink

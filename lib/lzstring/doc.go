// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package lzstring implements the dictionary-substitution compression
// codec used for share-link payloads. The bitstream format is a
// protocol constant: every link ever produced decompresses with this
// codec, so the growth rules below must never change.
//
// The codec operates on UTF-16 code units of the input string. Each
// token is either a back-reference into a growing dictionary of
// previously seen substrings, or a literal introduction of a new code
// unit: a marker (code 0 for units below 256, code 1 for the rest)
// followed by the raw 8- or 16-bit unit. Token width starts at 2 bits
// and grows by one bit each time the running entry count exhausts the
// current addressable space, and the decompressor reconstructs the
// identical dictionary by replaying the same growth rule.
//
// Output is byte-packed: the bitstream is accumulated into 16-bit
// units which are serialized big-endian, two bytes per unit. The
// compressed form of a small input is frequently larger than the
// input — the codec earns its keep on the repetitive JSON this module
// feeds it, not on arbitrary data.
//
// Key exports:
//
//   - [Compress] -- string to compressed bytes
//   - [Decompress] -- compressed bytes back to the original string
//
// Empty input yields empty output in both directions, by contract.
// This package has no dependencies on other gptlink packages.
package lzstring

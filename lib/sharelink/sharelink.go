// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package sharelink

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gptlink-foundation/gptlink/lib/aead"
	"github.com/gptlink-foundation/gptlink/lib/canonical"
	"github.com/gptlink-foundation/gptlink/lib/keyderive"
	"github.com/gptlink-foundation/gptlink/lib/lzstring"
	"github.com/gptlink-foundation/gptlink/lib/wire"
)

// FragmentPrefix is the URL fragment key carrying the token:
// <baseURL>#gpt=<token>. Fragments are never sent to a server, which
// is the entire point.
const FragmentPrefix = "gpt="

var (
	// ErrNotSerializable is returned by Encode when the configuration
	// cannot be represented as JSON (cyclic references, channels,
	// NaN floats). Nothing is produced.
	ErrNotSerializable = errors.New("sharelink: configuration is not JSON-serializable")

	// ErrDecryptionFailed is returned by Decode when no known wire
	// format authenticates: wrong password, corrupted link, or a
	// future format. Surface it to users as "wrong password or
	// invalid link" and nothing more specific.
	ErrDecryptionFailed = wire.ErrDecryptionFailed

	// ErrMalformedPayload is returned by Decode when authentication
	// succeeded but the plaintext does not decompress or parse. This
	// is a codec bug or a hand-crafted envelope, never a wrong
	// password, so it stays distinguishable from ErrDecryptionFailed.
	ErrMalformedPayload = errors.New("sharelink: authenticated payload is malformed")
)

// Namespace identifies the local-storage partition shared by every
// session that opens the same link with the same password. Neither
// field is ever transmitted or persisted by this package.
type Namespace struct {
	// ID is the full hex namespace hash. Partition keys use the full
	// value; displays usually truncate (see ShortID).
	ID string

	// MasterKey is the hex-encoded 32-byte re-derivable secret
	// associated with the link. It is independent of the decryption
	// key and usable by collaborators that need a per-link secret
	// without holding the password.
	MasterKey string
}

// ShortID returns the conventional 8-character display form of the
// namespace identifier.
func (n Namespace) ShortID() string {
	if len(n.ID) < 8 {
		return n.ID
	}
	return n.ID[:8]
}

// Assembler runs the share-link pipeline. The zero-config assembler
// (see package-level Encode/Decode/DeriveNamespace) uses crypto/rand
// and discards diagnostics; construct one explicitly to observe
// pipeline events or to pin randomness in tests.
type Assembler struct {
	observer Observer
	random   io.Reader
}

// AssemblerConfig configures an Assembler. Zero values select the
// defaults: a no-op observer and crypto/rand randomness.
type AssemblerConfig struct {
	// Observer receives diagnostic pipeline events. Optional.
	Observer Observer

	// Random supplies the salt and nonce seed for Encode. Only tests
	// should override it: reusing a (salt, nonce seed) pair under the
	// same password is a protocol violation.
	Random io.Reader
}

// NewAssembler constructs an Assembler.
func NewAssembler(config AssemblerConfig) *Assembler {
	assembler := &Assembler{
		observer: config.Observer,
		random:   config.Random,
	}
	if assembler.observer == nil {
		assembler.observer = NopObserver{}
	}
	if assembler.random == nil {
		assembler.random = rand.Reader
	}
	return assembler
}

// defaultAssembler backs the package-level convenience functions.
var defaultAssembler = NewAssembler(AssemblerConfig{})

// Encode runs the full pipeline over a JSON-serializable configuration
// value and returns the complete share link. baseURL is used verbatim;
// the fragment is appended as "#gpt=<token>".
func Encode(config any, password, baseURL string) (string, error) {
	return defaultAssembler.Encode(config, password, baseURL)
}

// Decode reverses Encode. input may be a full URL, a "gpt="-prefixed
// fragment, or a bare token.
func Decode(input, password string) (any, error) {
	return defaultAssembler.Decode(input, password)
}

// DeriveNamespace computes the namespace for a link without
// decrypting its payload.
func DeriveNamespace(input, password string) (Namespace, error) {
	return defaultAssembler.DeriveNamespace(input, password)
}

// Encode canonicalizes, compresses, encrypts and frames config,
// returning baseURL + "#gpt=" + token.
func (a *Assembler) Encode(config any, password, baseURL string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	serialized, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	// Round-trip through the generic JSON shape so canonicalization
	// sees plain maps and slices regardless of the caller's types.
	var value any
	if err := json.Unmarshal(serialized, &value); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	text, err := json.Marshal(canonical.MapKeys(value))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	compressed := lzstring.Compress(string(text))

	salt := make([]byte, wire.SaltSize)
	if _, err := io.ReadFull(a.random, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	nonceSeed := make([]byte, wire.NonceSeedSize)
	if _, err := io.ReadFull(a.random, nonceSeed); err != nil {
		return "", fmt.Errorf("generating nonce seed: %w", err)
	}

	key := wire.CurrentFormat.DeriveKey(password, salt)
	ciphertext := aead.Seal(compressed, aead.ExpandNonce(nonceSeed), key)

	envelope := wire.Envelope{Salt: salt, NonceSeed: nonceSeed, Ciphertext: ciphertext}
	token := wire.EncodeToken(envelope)

	a.observer.TokenEncoded(len(text), len(compressed), len(salt)+len(nonceSeed)+len(ciphertext))
	return baseURL + "#" + FragmentPrefix + token, nil
}

// Decode extracts the token from input, negotiates the wire format,
// and reverses the pipeline back to the original configuration value.
func (a *Assembler) Decode(input, password string) (any, error) {
	token, err := ExtractToken(input)
	if err != nil {
		return nil, err
	}

	raw, err := wire.DecodeToken(token)
	if err != nil {
		// Transport-level garbage is indistinguishable from a
		// corrupted link; report it the same way.
		return nil, ErrDecryptionFailed
	}

	plaintext, _, _, err := wire.Negotiate(raw, password, a.observer.FormatAttempted)
	if err != nil {
		return nil, err
	}

	text, err := lzstring.Decompress(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return canonical.UnmapKeys(value), nil
}

// DeriveNamespace extracts the salt and nonce seed from a link's token
// and derives the namespace and master key without decrypting the
// payload. The current-generation layout is assumed — every
// generation keeps the salt and seed at the front of the envelope, so
// the derivation is stable for any given link.
func (a *Assembler) DeriveNamespace(input, password string) (Namespace, error) {
	if password == "" {
		return Namespace{}, fmt.Errorf("password must not be empty")
	}

	token, err := ExtractToken(input)
	if err != nil {
		return Namespace{}, err
	}
	raw, err := wire.DecodeToken(token)
	if err != nil {
		return Namespace{}, ErrDecryptionFailed
	}
	envelope, ok := wire.CurrentFormat.Split(raw)
	if !ok {
		return Namespace{}, ErrDecryptionFailed
	}

	decryptionKey := keyderive.DecryptionKey(password, envelope.Salt)
	masterKey := keyderive.MasterKey(password, envelope.Salt, envelope.NonceSeed)

	return Namespace{
		ID:        keyderive.NamespaceHash(decryptionKey, masterKey, envelope.NonceSeed),
		MasterKey: hex.EncodeToString(masterKey[:]),
	}, nil
}

// ExtractToken normalizes the three accepted input shapes — full URL
// with fragment, "gpt="-prefixed fragment, bare token — down to the
// bare token.
func ExtractToken(input string) (string, error) {
	token := strings.TrimSpace(input)
	if fragmentStart := strings.IndexByte(token, '#'); fragmentStart >= 0 {
		token = token[fragmentStart+1:]
	}
	token = strings.TrimPrefix(token, FragmentPrefix)
	if token == "" {
		return "", fmt.Errorf("input contains no token")
	}
	return token, nil
}

// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package store implements the local storage collaborator of the
// share-link pipeline: a key-value store partitioned by namespace
// hash, so every session that opens the same link with the same
// password converges on the same partition without exchanging
// secrets.
//
// Each namespace lives in one snapshot file:
//
//	[Magic: 4 bytes "GLS\x01"] [Digest: 16 bytes] [Payload: zstd(CBOR map)]
//
// The digest is truncated BLAKE3 over the compressed payload and
// detects torn or corrupted files on load; it is an integrity check,
// not an authenticity one — the store holds whatever the caller
// decoded and never holds keys or passwords. Writes go through a
// temporary file and rename, so a crash never leaves a partially
// written snapshot behind.
//
// The store does no locking. Concurrent writers to the same namespace
// (two processes decoding the same link) race at whole-snapshot
// granularity, last rename wins — the same contract a browser's
// localStorage gives the original web client.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/gptlink-foundation/gptlink/lib/codec"
)

// snapshotMagic identifies a snapshot file; the trailing byte is the
// format version.
var snapshotMagic = []byte{'G', 'L', 'S', 0x01}

// digestSize is the truncated BLAKE3 digest length stored in the
// snapshot header.
const digestSize = 16

// snapshotSuffix is the filename extension for namespace snapshots.
const snapshotSuffix = ".snap"

// ErrCorruptSnapshot is returned when a snapshot file exists but its
// header, digest or payload does not check out.
var ErrCorruptSnapshot = errors.New("store: snapshot file is corrupt")

// Shared zstd encoder/decoder, initialized once. Both are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("store: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("store: zstd decoder initialization failed: " + err.Error())
	}
}

// Store is a directory of namespace snapshots.
type Store struct {
	dir string
}

// Open prepares a store rooted at dir, creating the directory if
// needed. Snapshots may contain decoded configurations (credentials
// included), so the directory is owner-only.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// validateNamespace rejects identifiers that could escape the store
// directory or collide with snapshot housekeeping. Namespace hashes
// are lowercase hex, so anything else is a caller bug.
func validateNamespace(namespace string) error {
	if len(namespace) < 8 {
		return fmt.Errorf("namespace %q is too short", namespace)
	}
	for _, c := range namespace {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("namespace %q is not lowercase hex", namespace)
		}
	}
	return nil
}

func (s *Store) snapshotPath(namespace string) string {
	return filepath.Join(s.dir, namespace+snapshotSuffix)
}

// snapshot is the decoded content of one namespace file. Values stay
// raw until a caller asks for them under a concrete type.
type snapshot map[string]codec.RawMessage

// load reads and verifies a namespace snapshot. A missing file is an
// empty snapshot, not an error.
func (s *Store) load(namespace string) (snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	if len(data) < len(snapshotMagic)+digestSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptSnapshot, len(data))
	}
	if !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}

	storedDigest := data[len(snapshotMagic) : len(snapshotMagic)+digestSize]
	payload := data[len(snapshotMagic)+digestSize:]

	digest := blake3.Sum256(payload)
	if !bytes.Equal(storedDigest, digest[:digestSize]) {
		return nil, fmt.Errorf("%w: digest mismatch", ErrCorruptSnapshot)
	}

	decompressed, err := zstdDecoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing payload: %v", ErrCorruptSnapshot, err)
	}

	var snap snapshot
	if err := codec.Unmarshal(decompressed, &snap); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrCorruptSnapshot, err)
	}
	if snap == nil {
		snap = snapshot{}
	}
	return snap, nil
}

// save writes a namespace snapshot atomically.
func (s *Store) save(namespace string, snap snapshot) error {
	encoded, err := codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	payload := zstdEncoder.EncodeAll(encoded, nil)

	digest := blake3.Sum256(payload)
	file := make([]byte, 0, len(snapshotMagic)+digestSize+len(payload))
	file = append(file, snapshotMagic...)
	file = append(file, digest[:digestSize]...)
	file = append(file, payload...)

	temp, err := os.CreateTemp(s.dir, "."+namespace+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(file); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Chmod(tempPath, 0o600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("setting snapshot permissions: %w", err)
	}
	if err := os.Rename(tempPath, s.snapshotPath(namespace)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("installing snapshot: %w", err)
	}
	return nil
}

// Get reads the value stored under key in the given namespace into
// value. Returns false when the key (or the whole namespace) is
// absent.
func (s *Store) Get(namespace, key string, value any) (bool, error) {
	if err := validateNamespace(namespace); err != nil {
		return false, err
	}
	snap, err := s.load(namespace)
	if err != nil {
		return false, err
	}
	raw, present := snap[key]
	if !present {
		return false, nil
	}
	if err := codec.Unmarshal(raw, value); err != nil {
		return false, fmt.Errorf("decoding value for %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key in the given namespace, creating the
// namespace snapshot if needed.
func (s *Store) Set(namespace, key string, value any) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	snap, err := s.load(namespace)
	if err != nil {
		return err
	}
	raw, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %q: %w", key, err)
	}
	snap[key] = raw
	return s.save(namespace, snap)
}

// Delete removes key from the namespace. Deleting an absent key is
// not an error.
func (s *Store) Delete(namespace, key string) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	snap, err := s.load(namespace)
	if err != nil {
		return err
	}
	if _, present := snap[key]; !present {
		return nil
	}
	delete(snap, key)
	return s.save(namespace, snap)
}

// Keys lists the keys present in a namespace, sorted.
func (s *Store) Keys(namespace string) ([]string, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	snap, err := s.load(namespace)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(snap))
	for key := range snap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Namespaces lists every namespace with a snapshot on disk, sorted.
func (s *Store) Namespaces() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing store directory: %w", err)
	}
	var namespaces []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, snapshotSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		namespaces = append(namespaces, strings.TrimSuffix(name, snapshotSuffix))
	}
	sort.Strings(namespaces)
	return namespaces, nil
}

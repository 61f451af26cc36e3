// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

// Package contenthash derives content addresses from canonical CBOR.
//
// Because the encoder is deterministic, the BLAKE3 digest of a
// value's encoding is a stable identity for the value itself: equal
// trees produce equal addresses regardless of how they were built.
// Hashing only makes sense over canonical bytes — hashing two
// different encodings of the same data would mint two addresses for
// one value.
package contenthash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/detcbor/detcbor/lib/codec"
	"github.com/detcbor/detcbor/lib/value"
)

// Hash is a 32-byte BLAKE3 digest of a canonical CBOR encoding.
type Hash [32]byte

// Digest encodes v canonically and returns the BLAKE3 digest of the
// encoding. Encoding failures (depth, duplicate keys) propagate.
func Digest(v value.Value) (Hash, error) {
	data, err := codec.Marshal(v)
	if err != nil {
		return Hash{}, fmt.Errorf("encoding for content hash: %w", err)
	}
	return Sum(data), nil
}

// Sum returns the BLAKE3 digest of already-encoded bytes. The
// caller is responsible for the bytes being canonical; use Digest
// when starting from a value tree.
func Sum(data []byte) Hash {
	return blake3.Sum256(data)
}

// Format returns the hex string form of a hash. This is the
// canonical rendering for CLI output and log lines.
func Format(h Hash) string {
	return hex.EncodeToString(h[:])
}

// Parse parses a 64-character hex string back into a Hash.
func Parse(hexString string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return h, fmt.Errorf("parsing content hash: %w", err)
	}
	if len(decoded) != len(h) {
		return h, fmt.Errorf("content hash is %d bytes, want %d", len(decoded), len(h))
	}
	copy(h[:], decoded)
	return h, nil
}

// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"testing"
)

func TestCompressRoundtrip(t *testing.T) {
	payload := bytes.Repeat([]byte("canonical cbor "), 100)

	for _, algorithm := range []string{"zstd", "lz4"} {
		t.Run(algorithm, func(t *testing.T) {
			compressed, err := compressOutput(payload, algorithm)
			if err != nil {
				t.Fatalf("compressOutput: %v", err)
			}
			if len(compressed) >= len(payload) {
				t.Errorf("repetitive payload did not shrink: %d -> %d", len(payload), len(compressed))
			}

			decompressed, err := maybeDecompress(compressed)
			if err != nil {
				t.Fatalf("maybeDecompress: %v", err)
			}
			if !bytes.Equal(decompressed, payload) {
				t.Error("round-trip corrupted payload")
			}
		})
	}
}

func TestCompressNoneIsPassthrough(t *testing.T) {
	payload := []byte{0xA1, 0x61, 0x61, 0x01}
	out, err := compressOutput(payload, "")
	if err != nil {
		t.Fatalf("compressOutput: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Error("empty algorithm should pass data through")
	}
}

func TestMaybeDecompressPassesPlainCBOR(t *testing.T) {
	payload := []byte{0xA1, 0x61, 0x61, 0x01}
	out, err := maybeDecompress(payload)
	if err != nil {
		t.Fatalf("maybeDecompress: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Error("plain CBOR should pass through untouched")
	}
}

func TestCompressRejectsUnknownAlgorithm(t *testing.T) {
	if _, err := compressOutput([]byte{0x00}, "brotli"); err == nil {
		t.Fatal("compressOutput should reject unknown algorithm")
	}
}

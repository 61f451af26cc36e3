// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Frame magic numbers, used to recognize compressed input on decode
// so the user never has to announce the algorithm.
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// zstdEncoder and zstdDecoder are reused across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("detcbor: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("detcbor: zstd decoder initialization failed: " + err.Error())
	}
}

// compressOutput wraps data in a compression frame. The algorithm is
// the --compress flag value; "" means no compression.
func compressOutput(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "":
		return data, nil

	case "zstd":
		return zstdEncoder.EncodeAll(data, nil), nil

	case "lz4":
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown compression algorithm %q (want zstd or lz4)", algorithm)
	}
}

// maybeDecompress unwraps a zstd or lz4 frame when the input starts
// with the corresponding 4-byte magic. Anything else passes through
// untouched.
func maybeDecompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		decompressed, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return decompressed, nil

	case bytes.HasPrefix(data, lz4Magic):
		decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return decompressed, nil

	default:
		return data, nil
	}
}

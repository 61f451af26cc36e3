// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

// Package value defines the in-memory CBOR value tree.
//
// A [Value] is one node of a dynamically-typed tree mirroring the
// eight CBOR major types (RFC 8949 §3), minus floating point: the
// value model deliberately has no float variant, so every tree this
// package can express has exactly one deterministic encoding.
//
// Variants are plain Go types (Unsigned, Negative, ByteString,
// TextString, Array, Map, Tag, Simple) implementing the sealed Value
// interface. Construct them directly, or through the builders
// ([Int], [Uint], [Bool], [Bytes], [Text], [NewArray], [NewMap],
// [NewTag]):
//
//	value.Map{
//		{Key: value.TextString("name"), Value: value.TextString("detcbor")},
//		{Key: value.TextString("version"), Value: value.Int(3)},
//	}
//
// A Map is an unordered pair sequence: insertion order is irrelevant
// (the encoder sorts by encoded key bytes) and duplicate keys are
// representable but rejected at encode time.
package value

// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts between [value.Value] trees and canonical
// CBOR bytes.
//
// The encoder produces Core Deterministic Encoding (RFC 8949 §4.2):
// smallest-form integer and length headers, map keys sorted by their
// encoded bytes, duplicate keys rejected, no indefinite-length
// items. Same logical tree always produces identical bytes, which is
// what makes the output safe to sign, hash, and content-address.
//
// The decoder is strict: it accepts exactly the encoder's output
// language. Non-minimal headers, out-of-order or duplicate map keys,
// indefinite-length items, floats, and invalid UTF-8 are all
// rejected with a sentinel error identifying the violation. This
// means Unmarshal∘Marshal and Marshal∘Unmarshal are both identities
// over their respective domains.
//
// Both directions bound nesting depth (default [MaxNesting]) so
// adversarial input cannot drive unbounded recursion.
//
//	data, err := codec.Marshal(tree)
//	tree, err := codec.Unmarshal(data)
package codec

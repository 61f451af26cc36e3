// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package codec

// CBOR item header layout (RFC 8949 §3): major type in the top 3
// bits of the first byte, additional information in the low 5 bits.
// Additional information 0–23 is an inline value; 24–27 announce a
// 1/2/4/8-byte big-endian value following the header.
const (
	majorShift  = 5
	addInfoMask = 0x1f

	maxInlineValue   = 23
	oneByteFollows   = 24
	twoBytesFollow   = 25
	fourBytesFollow  = 26
	eightBytesFollow = 27

	// 28–30 are reserved, 31 marks indefinite-length items. Neither
	// appears in deterministic encoding.
	indefiniteLength = 31
)

// Smallest magnitude representable by each multi-byte header width.
// Anything below the threshold has a shorter form, so a deterministic
// decoder must reject it.
const (
	minOneByte    = 24
	minTwoBytes   = 1 << 8
	minFourBytes  = 1 << 16
	minEightBytes = 1 << 32
)

// Simple values 0–23 encode inline; the two-byte form (additional
// information 24) is reserved for codes 32–255. Codes 24–31 have no
// valid encoding at all (RFC 8949 §3.3).
const minTwoByteSimple = 32

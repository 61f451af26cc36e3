// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "bytes"

// MajorType is the 3-bit CBOR item category occupying the top bits
// of an item header (RFC 8949 §3).
type MajorType byte

const (
	MajorUnsigned   MajorType = 0
	MajorNegative   MajorType = 1
	MajorByteString MajorType = 2
	MajorTextString MajorType = 3
	MajorArray      MajorType = 4
	MajorMap        MajorType = 5
	MajorTag        MajorType = 6
	MajorSimple     MajorType = 7
)

// Value is one node of a CBOR value tree. The interface is sealed:
// the eight variants in this package are the only implementations.
type Value interface {
	// Major returns the CBOR major type that encodes this variant.
	Major() MajorType

	isValue()
}

// Unsigned is a non-negative integer, 0 through 2^64−1.
type Unsigned uint64

// Negative is a negative integer stored as its wire magnitude n,
// representing the semantic value −(n+1). The full CBOR negative
// range −2^64 through −1 is expressible, wider than int64.
type Negative uint64

// ByteString is an opaque byte sequence.
type ByteString []byte

// TextString is a UTF-8 string. Construction from Go string literals
// and valid Go strings is always correct; the encoder trusts the
// bytes and does not re-validate.
type TextString string

// Array is an ordered sequence of values. Element order is
// preserved in the encoding.
type Array []Value

// Pair is one map entry.
type Pair struct {
	Key   Value
	Value Value
}

// Map is a sequence of key/value pairs in no particular order. Keys
// need not be pre-sorted and need not be unique; canonical ordering
// and duplicate rejection happen at encode time.
type Map []Pair

// Tag wraps one value with a numeric tag (RFC 8949 §3.4).
type Tag struct {
	Number  uint64
	Content Value
}

// Simple is a simple value code (RFC 8949 §3.3). Codes 20 through
// 23 are the named constants below. Codes 24 through 31 are
// representable but have no well-formed encoding; the encoder
// rejects them.
type Simple byte

// Named simple values.
const (
	False     Simple = 20
	True      Simple = 21
	Null      Simple = 22
	Undefined Simple = 23
)

func (Unsigned) Major() MajorType   { return MajorUnsigned }
func (Negative) Major() MajorType   { return MajorNegative }
func (ByteString) Major() MajorType { return MajorByteString }
func (TextString) Major() MajorType { return MajorTextString }
func (Array) Major() MajorType      { return MajorArray }
func (Map) Major() MajorType        { return MajorMap }
func (Tag) Major() MajorType        { return MajorTag }
func (Simple) Major() MajorType     { return MajorSimple }

func (Unsigned) isValue()   {}
func (Negative) isValue()   {}
func (ByteString) isValue() {}
func (TextString) isValue() {}
func (Array) isValue()      {}
func (Map) isValue()        {}
func (Tag) isValue()        {}
func (Simple) isValue()     {}

// Int returns the Value for a signed integer: Unsigned for i >= 0,
// otherwise Negative with the wire magnitude −(i+1).
func Int(i int64) Value {
	if i >= 0 {
		return Unsigned(i)
	}
	// Wire magnitude is −(i+1). Computed before conversion so the
	// negation stays in int64 range even for math.MinInt64.
	return Negative(uint64(-(i + 1)))
}

// Uint returns the Value for an unsigned integer.
func Uint(u uint64) Value {
	return Unsigned(u)
}

// Bool returns the simple value True or False.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Bytes returns the ByteString for b. The slice is not copied.
func Bytes(b []byte) Value {
	return ByteString(b)
}

// Text returns the TextString for s.
func Text(s string) Value {
	return TextString(s)
}

// NewArray returns an Array of the given elements.
func NewArray(elems ...Value) Value {
	return Array(elems)
}

// NewMap returns a Map of the given pairs.
func NewMap(pairs ...Pair) Value {
	return Map(pairs)
}

// NewTag wraps content with the given tag number.
func NewTag(number uint64, content Value) Value {
	return Tag{Number: number, Content: content}
}

// Equal reports whether two value trees are structurally equal. A
// nil and an empty ByteString, Array, or Map compare equal; map
// pairs are compared positionally (two maps with the same pairs in
// different order are not Equal — encode them to compare
// canonically).
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Unsigned:
		b, ok := b.(Unsigned)
		return ok && a == b
	case Negative:
		b, ok := b.(Negative)
		return ok && a == b
	case ByteString:
		b, ok := b.(ByteString)
		return ok && bytes.Equal(a, b)
	case TextString:
		b, ok := b.(TextString)
		return ok && a == b
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case Map:
		b, ok := b.(Map)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i].Key, b[i].Key) || !Equal(a[i].Value, b[i].Value) {
				return false
			}
		}
		return true
	case Tag:
		b, ok := b.(Tag)
		return ok && a.Number == b.Number && Equal(a.Content, b.Content)
	case Simple:
		b, ok := b.(Simple)
		return ok && a == b
	case nil:
		return b == nil
	}
	return false
}

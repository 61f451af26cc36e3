// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/detcbor/detcbor/lib/value"
)

// MaxNesting is the default nesting depth limit. A value at depth 0
// is the root; descending into an array element, a map key, a map
// value, or tagged content consumes one level.
const MaxNesting = 127

// Encoding errors. Both abort the whole encode call; on error the
// output is unusable and must be discarded.
var (
	// ErrTooMuchNesting reports that the input tree is deeper than
	// the configured limit allows.
	ErrTooMuchNesting = errors.New("codec: nesting depth exceeds limit")

	// ErrDuplicateMapKey reports that two keys within one map encode
	// to identical bytes. Canonical CBOR requires unique keys.
	ErrDuplicateMapKey = errors.New("codec: duplicate map key")

	// ErrReservedSimple reports a simple value with code 24 through
	// 31. Those codes have no well-formed encoding (RFC 8949 §3.3):
	// their headers are claimed by the two-byte simple form and the
	// floating-point forms.
	ErrReservedSimple = errors.New("codec: reserved simple value")
)

// Marshal encodes v to canonical CBOR with the default nesting
// limit.
func Marshal(v value.Value) ([]byte, error) {
	return Append(nil, v)
}

// Append appends the canonical CBOR encoding of v to dst and returns
// the extended slice, using the default nesting limit.
func Append(dst []byte, v value.Value) ([]byte, error) {
	return AppendDepth(dst, v, MaxNesting)
}

// AppendDepth is Append with an explicit nesting limit. A negative
// maxNesting means unlimited (bounded only by the process stack).
//
// On error the returned slice is nil and any bytes the failed call
// appended past len(dst) are unspecified; dst's original contents
// are untouched.
func AppendDepth(dst []byte, v value.Value, maxNesting int) ([]byte, error) {
	if maxNesting < 0 {
		maxNesting = math.MaxInt
	}
	w := writer{out: dst}
	if err := w.encode(v, maxNesting); err != nil {
		return nil, err
	}
	return w.out, nil
}

// writer appends encoded items to out. Map key pre-encoding creates
// short-lived nested writers sharing this type.
type writer struct {
	out []byte
}

// encode appends the encoding of v. remaining is the number of
// further nesting levels permitted below v; the check runs once per
// call, before variant dispatch, so over-nesting is caught the
// moment any variant descends too far.
func (w *writer) encode(v value.Value, remaining int) error {
	if remaining < 0 {
		return ErrTooMuchNesting
	}
	switch v := v.(type) {
	case value.Unsigned:
		w.writeHeader(value.MajorUnsigned, uint64(v))
	case value.Negative:
		w.writeHeader(value.MajorNegative, uint64(v))
	case value.ByteString:
		w.writeHeader(value.MajorByteString, uint64(len(v)))
		w.out = append(w.out, v...)
	case value.TextString:
		w.writeHeader(value.MajorTextString, uint64(len(v)))
		w.out = append(w.out, v...)
	case value.Array:
		w.writeHeader(value.MajorArray, uint64(len(v)))
		for _, element := range v {
			if err := w.encode(element, remaining-1); err != nil {
				return err
			}
		}
	case value.Map:
		return w.encodeMap(v, remaining)
	case value.Tag:
		w.writeHeader(value.MajorTag, v.Number)
		return w.encode(v.Content, remaining-1)
	case value.Simple:
		if v >= oneByteFollows && v < minTwoByteSimple {
			return fmt.Errorf("%w: %d", ErrReservedSimple, v)
		}
		w.writeHeader(value.MajorSimple, uint64(v))
	default:
		// value.Value is sealed; only a nil interface reaches here.
		panic(fmt.Sprintf("codec: cannot encode %T", v))
	}
	return nil
}

// encodeMap writes a map in canonical order. Canonical order is
// defined over each key's encoded bytes (not its native value), so
// every key must be fully encoded into a scratch buffer before its
// position in the map is knowable. Values stay unencoded until
// their sorted slot comes up.
func (w *writer) encodeMap(m value.Map, remaining int) error {
	type entry struct {
		key []byte
		val value.Value
	}
	entries := make([]entry, 0, len(m))
	for _, pair := range m {
		keyWriter := writer{}
		if err := keyWriter.encode(pair.Key, remaining-1); err != nil {
			return err
		}
		entries = append(entries, entry{key: keyWriter.out, val: pair.Value})
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	for i := 1; i < len(entries); i++ {
		if bytes.Equal(entries[i-1].key, entries[i].key) {
			return ErrDuplicateMapKey
		}
	}

	w.writeHeader(value.MajorMap, uint64(len(entries)))
	for _, e := range entries {
		w.out = append(w.out, e.key...)
		if err := w.encode(e.val, remaining-1); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader appends the canonical item header for the given major
// type and magnitude: the magnitude inline when it fits in 5 bits,
// otherwise the smallest of the 1/2/4/8-byte big-endian forms.
func (w *writer) writeHeader(major value.MajorType, magnitude uint64) {
	typeBits := byte(major) << majorShift
	switch {
	case magnitude <= maxInlineValue:
		w.out = append(w.out, typeBits|byte(magnitude))
	case magnitude <= math.MaxUint8:
		w.out = append(w.out, typeBits|oneByteFollows, byte(magnitude))
	case magnitude <= math.MaxUint16:
		w.out = append(w.out, typeBits|twoBytesFollow)
		w.out = binary.BigEndian.AppendUint16(w.out, uint16(magnitude))
	case magnitude <= math.MaxUint32:
		w.out = append(w.out, typeBits|fourBytesFollow)
		w.out = binary.BigEndian.AppendUint32(w.out, uint32(magnitude))
	default:
		w.out = append(w.out, typeBits|eightBytesFollow)
		w.out = binary.BigEndian.AppendUint64(w.out, magnitude)
	}
}

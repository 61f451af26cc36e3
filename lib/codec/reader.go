// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/detcbor/detcbor/lib/value"
)

// Decoding errors. Each names one way input can fall outside the
// deterministic profile; all abort the whole decode call.
var (
	// ErrTruncated reports that the input ended inside an item.
	ErrTruncated = errors.New("codec: truncated CBOR data")

	// ErrExtraneousData reports bytes remaining after the top-level
	// item. Use DecodeFirst to read CBOR sequences item by item.
	ErrExtraneousData = errors.New("codec: extraneous bytes after top-level item")

	// ErrUnsupportedValue reports an item outside the value model:
	// indefinite-length items, floating-point values, or reserved
	// header forms.
	ErrUnsupportedValue = errors.New("codec: unsupported CBOR item")

	// ErrNonMinimalEncoding reports a header whose magnitude has a
	// shorter valid form. Deterministic encoding requires the
	// smallest form.
	ErrNonMinimalEncoding = errors.New("codec: non-minimal header encoding")

	// ErrInvalidUTF8 reports a text string whose bytes are not valid
	// UTF-8.
	ErrInvalidUTF8 = errors.New("codec: text string is not valid UTF-8")

	// ErrOutOfOrderKey reports map keys not in strictly increasing
	// encoded-byte order.
	ErrOutOfOrderKey = errors.New("codec: map keys out of canonical order")
)

// Unmarshal decodes exactly one canonical CBOR item spanning all of
// data, with the default nesting limit. The returned tree does not
// alias data.
func Unmarshal(data []byte) (value.Value, error) {
	return UnmarshalDepth(data, MaxNesting)
}

// UnmarshalDepth is Unmarshal with an explicit nesting limit. A
// negative maxNesting means unlimited.
func UnmarshalDepth(data []byte, maxNesting int) (value.Value, error) {
	v, rest, err := decodeFirst(data, maxNesting)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrExtraneousData, len(rest))
	}
	return v, nil
}

// DecodeFirst decodes the first item of a CBOR sequence (RFC 8742)
// and returns the remaining bytes. The default nesting limit
// applies to the decoded item.
func DecodeFirst(data []byte) (value.Value, []byte, error) {
	return decodeFirst(data, MaxNesting)
}

func decodeFirst(data []byte, maxNesting int) (value.Value, []byte, error) {
	if maxNesting < 0 {
		maxNesting = math.MaxInt
	}
	r := reader{data: data}
	v, err := r.decode(maxNesting)
	if err != nil {
		return nil, nil, err
	}
	return v, data[r.pos:], nil
}

// reader is a cursor over the input bytes. It never mutates or
// retains data; decoded strings are copied out.
type reader struct {
	data []byte
	pos  int
}

// decode reads one item. remaining follows the same accounting as
// the encoder: checked once per call, one unit consumed per descent.
func (r *reader) decode(remaining int) (value.Value, error) {
	if remaining < 0 {
		return nil, ErrTooMuchNesting
	}

	major, addInfo, magnitude, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	if major == value.MajorSimple {
		return r.decodeSimple(addInfo, magnitude)
	}
	if addInfo > maxInlineValue && magnitude < minimumMagnitude(addInfo) {
		return nil, fmt.Errorf("%w: magnitude %d in %s form", ErrNonMinimalEncoding, magnitude, headerFormName(addInfo))
	}

	switch major {
	case value.MajorUnsigned:
		return value.Unsigned(magnitude), nil

	case value.MajorNegative:
		return value.Negative(magnitude), nil

	case value.MajorByteString:
		raw, err := r.take(magnitude)
		if err != nil {
			return nil, err
		}
		return value.ByteString(bytes.Clone(raw)), nil

	case value.MajorTextString:
		raw, err := r.take(magnitude)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(raw) {
			return nil, ErrInvalidUTF8
		}
		return value.TextString(raw), nil

	case value.MajorArray:
		if err := r.checkCount(magnitude); err != nil {
			return nil, err
		}
		elements := make(value.Array, 0, magnitude)
		for i := uint64(0); i < magnitude; i++ {
			element, err := r.decode(remaining - 1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return elements, nil

	case value.MajorMap:
		return r.decodeMap(magnitude, remaining)

	case value.MajorTag:
		content, err := r.decode(remaining - 1)
		if err != nil {
			return nil, err
		}
		return value.Tag{Number: magnitude, Content: content}, nil
	}
	panic(fmt.Sprintf("codec: impossible major type %d", major))
}

// decodeMap reads count pairs, enforcing strictly increasing
// encoded-key order. Each key's encoded span is compared against
// the previous key's span, so ordering and duplicate detection use
// exactly the bytes the canonical encoder would have emitted.
func (r *reader) decodeMap(count uint64, remaining int) (value.Value, error) {
	if err := r.checkCount(count); err != nil {
		return nil, err
	}

	pairs := make(value.Map, 0, count)
	var previousKey []byte
	for i := uint64(0); i < count; i++ {
		keyStart := r.pos
		key, err := r.decode(remaining - 1)
		if err != nil {
			return nil, err
		}
		encodedKey := r.data[keyStart:r.pos]

		if i > 0 {
			switch bytes.Compare(previousKey, encodedKey) {
			case 0:
				return nil, ErrDuplicateMapKey
			case 1:
				return nil, ErrOutOfOrderKey
			}
		}
		previousKey = encodedKey

		val, err := r.decode(remaining - 1)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, value.Pair{Key: key, Value: val})
	}
	return pairs, nil
}

// decodeSimple handles major type 7, whose additional-information
// space is split between simple values and floats.
func (r *reader) decodeSimple(addInfo byte, magnitude uint64) (value.Value, error) {
	switch {
	case addInfo <= maxInlineValue:
		return value.Simple(magnitude), nil
	case addInfo == oneByteFollows:
		// Codes 0-23 must use the inline form; 24-31 have no valid
		// encoding at all.
		if magnitude < minTwoByteSimple {
			return nil, fmt.Errorf("%w: simple value %d in two-byte form", ErrNonMinimalEncoding, magnitude)
		}
		return value.Simple(magnitude), nil
	default:
		return nil, fmt.Errorf("%w: floating-point item", ErrUnsupportedValue)
	}
}

// readHeader reads one item header: major type, raw additional
// information, and the decoded magnitude. Minimality is the
// caller's concern (major type 7 splits its space differently).
func (r *reader) readHeader() (value.MajorType, byte, uint64, error) {
	first, err := r.takeByte()
	if err != nil {
		return 0, 0, 0, err
	}
	major := value.MajorType(first >> majorShift)
	addInfo := first & addInfoMask

	switch {
	case addInfo <= maxInlineValue:
		return major, addInfo, uint64(addInfo), nil
	case addInfo <= eightBytesFollow:
		width := 1 << (addInfo - oneByteFollows)
		raw, err := r.take(uint64(width))
		if err != nil {
			return 0, 0, 0, err
		}
		var magnitude uint64
		for _, b := range raw {
			magnitude = magnitude<<8 | uint64(b)
		}
		return major, addInfo, magnitude, nil
	case addInfo == indefiniteLength:
		return 0, 0, 0, fmt.Errorf("%w: indefinite-length item", ErrUnsupportedValue)
	default:
		return 0, 0, 0, fmt.Errorf("%w: reserved additional information %d", ErrUnsupportedValue, addInfo)
	}
}

// take consumes n bytes, returning a sub-slice of the input.
func (r *reader) take(n uint64) ([]byte, error) {
	if n > uint64(len(r.data)-r.pos) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, len(r.data)-r.pos)
	}
	raw := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return raw, nil
}

func (r *reader) takeByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrTruncated)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// checkCount rejects container counts that exceed the remaining
// input. Every element needs at least one byte, so this caps the
// slice pre-allocation a hostile header could otherwise inflate.
func (r *reader) checkCount(count uint64) error {
	if count > uint64(len(r.data)-r.pos) {
		return fmt.Errorf("%w: %d elements announced, %d bytes remain", ErrTruncated, count, len(r.data)-r.pos)
	}
	return nil
}

// minimumMagnitude returns the smallest magnitude the given
// multi-byte header form is allowed to carry.
func minimumMagnitude(addInfo byte) uint64 {
	switch addInfo {
	case oneByteFollows:
		return minOneByte
	case twoBytesFollow:
		return minTwoBytes
	case fourBytesFollow:
		return minFourBytes
	default:
		return minEightBytes
	}
}

// headerFormName names a multi-byte header form for error messages.
func headerFormName(addInfo byte) string {
	return fmt.Sprintf("%d-byte", 1<<(addInfo-oneByteFollows))
}

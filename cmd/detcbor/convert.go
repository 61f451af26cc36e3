// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/detcbor/detcbor/lib/value"
)

// valueFromJSON parses JSON (already stripped of comments) into a
// value tree. Numbers must be integers: the value model has no float
// variant, so 1.5 or 1e-3 is a conversion error rather than a silent
// precision loss.
func valueFromJSON(data []byte) (value.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("parse JSON: multiple top-level values")
	}
	return valueFromNative(parsed)
}

// valueFromNative converts a decoded JSON or YAML structure into a
// value tree.
func valueFromNative(v any) (value.Value, error) {
	switch v := v.(type) {
	case nil:
		return value.Null, nil
	case bool:
		return value.Bool(v), nil
	case string:
		return value.TextString(v), nil

	case json.Number:
		if integer, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return value.Int(integer), nil
		}
		if unsigned, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return value.Uint(unsigned), nil
		}
		return nil, fmt.Errorf("number %s is not an integer (floats have no canonical encoding)", v)

	// YAML scalars arrive as concrete Go types.
	case int:
		return value.Int(int64(v)), nil
	case int64:
		return value.Int(v), nil
	case uint64:
		return value.Uint(v), nil
	case float64:
		return nil, fmt.Errorf("number %v is not an integer (floats have no canonical encoding)", v)

	case []any:
		elements := make(value.Array, 0, len(v))
		for _, element := range v {
			converted, err := valueFromNative(element)
			if err != nil {
				return nil, err
			}
			elements = append(elements, converted)
		}
		return elements, nil

	case map[string]any:
		pairs := make(value.Map, 0, len(v))
		for key, element := range v {
			converted, err := valueFromNative(element)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, value.Pair{Key: value.TextString(key), Value: converted})
		}
		return pairs, nil

	default:
		return nil, fmt.Errorf("cannot convert %T to a CBOR value", v)
	}
}

// jsonFromValue converts a value tree to JSON-compatible types for
// display. CBOR constructs JSON cannot express get conventional
// renderings: byte strings become base64, integer map keys become
// decimal strings, undefined becomes null, and tags are unwrapped to
// their content (use diag to see tag numbers).
func jsonFromValue(v value.Value) (any, error) {
	switch v := v.(type) {
	case value.Unsigned:
		return uint64(v), nil

	case value.Negative:
		// Semantic value is −(n+1); beyond int64 range it needs a
		// big integer to render exactly.
		if uint64(v) < 1<<63 {
			return -int64(v) - 1, nil
		}
		magnitude := new(big.Int).SetUint64(uint64(v))
		return new(big.Int).Neg(magnitude.Add(magnitude, big.NewInt(1))), nil

	case value.ByteString:
		return base64.StdEncoding.EncodeToString(v), nil

	case value.TextString:
		return string(v), nil

	case value.Array:
		elements := make([]any, 0, len(v))
		for _, element := range v {
			converted, err := jsonFromValue(element)
			if err != nil {
				return nil, err
			}
			elements = append(elements, converted)
		}
		return elements, nil

	case value.Map:
		// Distinct CBOR keys can render to the same JSON key (the
		// integer 1 and the text "1" both become "1"). Refuse rather
		// than let one pair silently shadow the other.
		result := make(map[string]any, len(v))
		for _, pair := range v {
			key, err := jsonKey(pair.Key)
			if err != nil {
				return nil, err
			}
			if _, exists := result[key]; exists {
				return nil, fmt.Errorf("map keys collide as JSON key %q (use diag)", key)
			}
			converted, err := jsonFromValue(pair.Value)
			if err != nil {
				return nil, err
			}
			result[key] = converted
		}
		return result, nil

	case value.Tag:
		return jsonFromValue(v.Content)

	case value.Simple:
		switch v {
		case value.False:
			return false, nil
		case value.True:
			return true, nil
		case value.Null, value.Undefined:
			return nil, nil
		default:
			return nil, fmt.Errorf("simple value %d has no JSON form", v)
		}
	}
	return nil, fmt.Errorf("cannot convert %T to JSON", v)
}

// jsonKey renders a map key as a JSON object key.
func jsonKey(key value.Value) (string, error) {
	switch key := key.(type) {
	case value.TextString:
		return string(key), nil
	case value.Unsigned:
		return strconv.FormatUint(uint64(key), 10), nil
	case value.Negative:
		converted, err := jsonFromValue(key)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(converted), nil
	case value.ByteString:
		return base64.StdEncoding.EncodeToString(key), nil
	default:
		return "", fmt.Errorf("map key of type %T has no JSON form (use diag)", key)
	}
}

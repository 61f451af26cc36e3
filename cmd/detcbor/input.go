// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// input is raw bytes read from one source, tracked by name so that
// failures later in the pipeline can say where the bytes came from.
type input struct {
	Data   []byte
	Source string
}

// readInput resolves command input. A trailing argument naming a
// regular file is consumed and read; otherwise the bytes come from
// stdin. When hexMode is true the bytes are decoded from
// whitespace-tolerant hex before returning.
//
// Returns the input and args with any consumed file path removed;
// the caller validates that the remaining args are acceptable.
func readInput(args []string, hexMode bool) (input, []string, error) {
	in, remainingArgs, err := readRaw(args)
	if err != nil {
		return input{}, nil, err
	}
	if hexMode {
		decoded, err := decodeHexInput(in.Data)
		if err != nil {
			return input{}, nil, fmt.Errorf("%s: %w", in.Source, err)
		}
		in.Data = decoded
	}
	return in, remainingArgs, nil
}

func readRaw(args []string) (input, []string, error) {
	if n := len(args); n > 0 {
		path := args[n-1]
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			data, err := os.ReadFile(path)
			if err != nil {
				return input{}, nil, fmt.Errorf("read %s: %w", path, err)
			}
			return input{Data: data, Source: path}, args[:n-1], nil
		}
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return input{}, nil, fmt.Errorf("read stdin: %w", err)
	}
	return input{Data: data, Source: "stdin"}, args, nil
}

// decodeHexInput decodes hex with whitespace allowed between digits
// ("a1 00 61 61" or "a1006161").
func decodeHexInput(data []byte) ([]byte, error) {
	digits := make([]byte, 0, len(data))
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return nil, fmt.Errorf("no hex digits in input")
	}
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits (%d)", len(digits))
	}
	decoded := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(decoded, digits); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

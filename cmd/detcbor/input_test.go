// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.cbor")
	if err := os.WriteFile(path, []byte{0xF6}, 0o644); err != nil {
		t.Fatal(err)
	}

	in, remainingArgs, err := readInput([]string{path}, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if in.Source != path {
		t.Errorf("Source = %q, want %q", in.Source, path)
	}
	if !bytes.Equal(in.Data, []byte{0xF6}) {
		t.Errorf("Data = % X, want F6", in.Data)
	}
	if len(remainingArgs) != 0 {
		t.Errorf("remaining args = %q, want none", remainingArgs)
	}
}

func TestReadInputHexErrorNamesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.hex")
	if err := os.WriteFile(path, []byte("a1 0"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := readInput([]string{path}, true)
	if err == nil {
		t.Fatal("readInput accepted odd-length hex")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the input file", err)
	}
}

func TestDecodeHexInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"plain", "a1006161", []byte{0xA1, 0x00, 0x61, 0x61}},
		{"spaced pairs", "a1 00 61 61", []byte{0xA1, 0x00, 0x61, 0x61}},
		{"trailing newline", "a1006161\n", []byte{0xA1, 0x00, 0x61, 0x61}},
		{"mixed whitespace", " a1\t00\n61 61 ", []byte{0xA1, 0x00, 0x61, 0x61}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeHexInput([]byte(test.input))
			if err != nil {
				t.Fatalf("decodeHexInput(%q): %v", test.input, err)
			}
			if !bytes.Equal(got, test.want) {
				t.Errorf("decodeHexInput(%q) = % X, want % X", test.input, got, test.want)
			}
		})
	}
}

func TestDecodeHexInputRejects(t *testing.T) {
	bad := []string{"", "   ", "xyz", "a1 0"}
	for _, input := range bad {
		if _, err := decodeHexInput([]byte(input)); err == nil {
			t.Errorf("decodeHexInput(%q) succeeded, want error", input)
		}
	}
}

// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/detcbor/detcbor/cmd/detcbor/cli"
	"github.com/detcbor/detcbor/lib/codec"
)

func decodeCommand() *cli.Command {
	var (
		compact  bool
		hexInput bool
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert canonical CBOR to JSON",
		Description: `Read CBOR data and write the equivalent JSON to stdout, pretty-
printed with 2-space indentation (use -c for compact output).

Decoding is strict: input that deviates from canonical form
(unsorted map keys, non-minimal headers, duplicates, indefinite
lengths, floats) is rejected with the specific violation. zstd and
lz4 compressed input (as produced by "encode --compress") is
detected by frame magic and decompressed transparently.

CBOR constructs without a JSON equivalent get conventional
renderings: byte strings become base64, integer map keys become
string keys, undefined becomes null, and tags are unwrapped. Use
"detcbor diag" for a rendering that preserves CBOR types.`,
		Usage: "detcbor decode [-c] [-x] [file]",
		Examples: []cli.Example{
			{Description: "Decode a CBOR file to pretty JSON", Command: "detcbor decode message.cbor"},
			{Description: "Decode hex-encoded CBOR", Command: "echo 'a2006161206162' | detcbor decode --hex"},
			{Description: "Round-trip through encode", Command: "echo '{\"count\":42}' | detcbor encode | detcbor decode"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact JSON output (no indentation)")
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			in, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if err := decodeToJSON(in.Data, os.Stdout, compact); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			return nil
		},
	}
}

// decodeToJSON strictly decodes CBOR data and writes it as JSON.
func decodeToJSON(data []byte, w io.Writer, compact bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	tree, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}

	converted, err := jsonFromValue(tree)
	if err != nil {
		return err
	}
	return writeJSON(w, converted, compact)
}

// writeJSON encodes v as JSON to w with a trailing newline,
// pretty-printed unless compact.
func writeJSON(w io.Writer, v any, compact bool) error {
	var output []byte
	var err error
	if compact {
		output, err = json.Marshal(v)
	} else {
		output, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/detcbor/detcbor/cmd/detcbor/cli"
	"github.com/detcbor/detcbor/lib/codec"
	"github.com/detcbor/detcbor/lib/value"
)

func encodeCommand() *cli.Command {
	var (
		yamlInput bool
		hexOutput bool
		compress  string
	)

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON or YAML to canonical CBOR",
		Description: `Read JSON from stdin (or a file argument) and write the canonical
CBOR encoding to stdout. Comments and trailing commas in the input
are allowed (JSONC). With --yaml, the input is parsed as YAML.

Numbers must be integers: the value model is float-free so that
every input has exactly one encoding. Map keys are sorted by their
encoded bytes regardless of input order, which is what makes the
output reproducible and safe to hash or sign.

The output is binary; writing it to a terminal is refused unless
--hex-out is given. Pipe to "detcbor diag" or redirect to a file.`,
		Usage: "detcbor encode [--yaml] [--hex-out] [--compress zstd|lz4] [file]",
		Examples: []cli.Example{
			{Description: "Encode JSON to CBOR", Command: "echo '{\"action\":\"status\"}' | detcbor encode > request.cbor"},
			{Description: "Inspect the encoding as hex", Command: "echo '{\"count\":42}' | detcbor encode --hex-out"},
			{Description: "Encode and compress a YAML document", Command: "detcbor encode --yaml --compress zstd config.yaml > config.cbor.zst"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flagSet.BoolVar(&yamlInput, "yaml", false, "parse input as YAML instead of JSON")
			flagSet.BoolVar(&hexOutput, "hex-out", false, "write hex instead of raw binary")
			flagSet.StringVar(&compress, "compress", "", "compress output (zstd or lz4)")
			return flagSet
		},
		Run: func(args []string) error {
			in, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if err := encodeToCBOR(in.Data, os.Stdout, yamlInput, hexOutput, compress); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			return nil
		},
	}
}

// encodeToCBOR converts JSON or YAML input to canonical CBOR and
// writes it to w.
func encodeToCBOR(data []byte, w io.Writer, yamlInput, hexOutput bool, compress string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected %s data", inputName(yamlInput))
	}

	tree, err := parseInput(data, yamlInput)
	if err != nil {
		return err
	}

	encoded, err := codec.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}

	encoded, err = compressOutput(encoded, compress)
	if err != nil {
		return err
	}

	if hexOutput {
		_, err := fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	}

	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return fmt.Errorf("refusing to write binary CBOR to a terminal (use --hex-out or redirect)")
	}
	_, err = w.Write(encoded)
	return err
}

func parseInput(data []byte, yamlInput bool) (value.Value, error) {
	if yamlInput {
		var parsed any
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		return valueFromNative(parsed)
	}
	return valueFromJSON(jsonc.ToJSON(data))
}

func inputName(yamlInput bool) string {
	if yamlInput {
		return "YAML"
	}
	return "JSON"
}

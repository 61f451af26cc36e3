// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

// Command detcbor inspects, produces, and verifies canonical CBOR
// data from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/detcbor/detcbor/cmd/detcbor/cli"
)

func main() {
	if err := rootCommand().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cli.Command {
	var (
		compact  bool
		hexInput bool
	)

	return &cli.Command{
		Name:    "detcbor",
		Summary: "Deterministic CBOR tooling",
		Description: `Tools for producing and inspecting canonical CBOR (RFC 8949 Core
Deterministic Encoding: smallest-form headers, map keys sorted by
encoded bytes, unique keys, no indefinite-length items).

With no arguments, decodes CBOR on stdin to pretty-printed JSON on
stdout (equivalent to "detcbor decode").

All subcommands accept an optional trailing file path argument; when
provided, input is read from the file instead of stdin. With --hex,
input is treated as hex-encoded CBOR (whitespace ignored).`,
		Subcommands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			diagCommand(),
			validateCommand(),
			hashCommand(),
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("detcbor", pflag.ContinueOnError)
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
				return fmt.Errorf("unknown command %q\n\nRun 'detcbor --help' for usage.", remainingArgs[0])
			}
			if err := decodeToJSON(in.Data, os.Stdout, compact); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			return nil
		},
		Examples: []cli.Example{
			{Description: "Decode CBOR to pretty JSON", Command: "detcbor < message.cbor"},
			{Description: "Encode JSON to canonical CBOR", Command: "echo '{\"count\":42}' | detcbor encode > message.cbor"},
			{Description: "Check that a file is canonically encoded", Command: "detcbor validate message.cbor"},
			{Description: "Content-address a canonical item", Command: "detcbor hash message.cbor"},
			{Description: "Inspect structure with diagnostic notation", Command: "detcbor diag --hex <<< 'a10061 61'"},
		},
	}
}

// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"

	"github.com/detcbor/detcbor/cmd/detcbor/cli"
)

func diagCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "diag",
		Summary: "Convert CBOR to diagnostic notation",
		Description: `Read CBOR and write RFC 8949 Extended Diagnostic Notation (EDN) to
stdout.

Unlike JSON output, diagnostic notation preserves CBOR type
information: byte strings vs text strings, integer map keys, tag
numbers, and undefined. This shows the exact wire structure.

Examples of diagnostic notation:

  {"action": "status", "count": 42}    text keys, integer value
  {0: "a", -1: "b"}                    integer keys
  6(66)                                tag 6 around integer 66
  h'01020304'                          byte string in hex

For CBOR sequences, each item is printed on its own line.`,
		Usage: "detcbor diag [-x] [file]",
		Examples: []cli.Example{
			{Description: "Show diagnostic notation for a CBOR file", Command: "detcbor diag message.cbor"},
			{Description: "Encode JSON and inspect the structure", Command: "echo '{\"count\":42}' | detcbor encode | detcbor diag"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			in, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if err := diagnose(in.Data, os.Stdout); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			return nil
		},
	}
}

// diagnose writes diagnostic notation for each item of data,
// decompressing framed input first.
func diagnose(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := cbor.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return fmt.Errorf("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}

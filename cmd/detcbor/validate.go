// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/detcbor/detcbor/cmd/detcbor/cli"
	"github.com/detcbor/detcbor/lib/codec"
)

func validateCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether CBOR is canonically encoded",
		Description: `Read CBOR data and verify it is a single canonical item. Prints
"valid" and exits 0 on success; prints the violation and exits 1
otherwise.

Validation decodes with the strict decoder (which already rejects
unsorted keys, duplicates, non-minimal headers, indefinite lengths,
and floats), then re-encodes and byte-compares as a defense against
decoder/encoder disagreement.`,
		Usage: "detcbor validate [-x] [file]",
		Examples: []cli.Example{
			{Description: "Validate output of a pipeline", Command: "echo '{\"count\":42}' | detcbor encode | detcbor validate"},
			{Description: "Validate hex-encoded CBOR", Command: "echo 'a2006161206162' | detcbor validate --hex"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			in, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("validate takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if err := validateCanonical(in.Data, os.Stdout); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			return nil
		},
	}
}

// validateCanonical checks that data is exactly one canonical CBOR
// item.
func validateCanonical(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	tree, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("not canonical: %w", err)
	}

	reencoded, err := codec.Marshal(tree)
	if err != nil {
		return fmt.Errorf("re-encode: %w", err)
	}
	if !bytes.Equal(data, reencoded) {
		return describeMismatch(data, reencoded)
	}

	_, err = fmt.Fprintln(w, "valid")
	return err
}

// describeMismatch reports the first byte where input and canonical
// re-encoding diverge.
func describeMismatch(data, reencoded []byte) error {
	limit := min(len(data), len(reencoded))
	for i := 0; i < limit; i++ {
		if data[i] != reencoded[i] {
			return fmt.Errorf("not canonical: byte %d is 0x%02X, canonical form has 0x%02X", i, data[i], reencoded[i])
		}
	}
	return fmt.Errorf("not canonical: input is %d bytes, canonical form is %d", len(data), len(reencoded))
}

// Copyright 2026 The detcbor Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/detcbor/detcbor/cmd/detcbor/cli"
	"github.com/detcbor/detcbor/lib/codec"
	"github.com/detcbor/detcbor/lib/contenthash"
)

func hashCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "hash",
		Summary: "Print the BLAKE3 content address of a canonical item",
		Description: `Read one CBOR item and print the hex BLAKE3-256 digest of its
encoding.

The input must be canonical: hashing non-canonical bytes would give
the same logical value multiple addresses, defeating the point of
content addressing. Non-canonical input is rejected with the
specific violation.`,
		Usage: "detcbor hash [-x] [file]",
		Examples: []cli.Example{
			{Description: "Content-address a message", Command: "detcbor hash message.cbor"},
			{Description: "Address a JSON document via encode", Command: "echo '{\"count\":42}' | detcbor encode | detcbor hash"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("hash", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			in, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("hash takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if err := hashCanonical(in.Data, os.Stdout); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			return nil
		},
	}
}

// hashCanonical verifies that data is one canonical item and prints
// its content address.
func hashCanonical(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	if _, err := codec.Unmarshal(data); err != nil {
		return fmt.Errorf("refusing to hash non-canonical input: %w", err)
	}

	_, err := fmt.Fprintln(w, contenthash.Format(contenthash.Sum(data)))
	return err
}

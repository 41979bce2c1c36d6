/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"fmt"
	"io"

	"github.com/botobag/helios/crunch"
	"github.com/botobag/helios/internal/input"

	"github.com/spf13/cobra"
)

func newCrunchCmd(a *app) *cobra.Command {
	var (
		format   string
		stats    bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "crunch [file]",
		Short: "Compact a JSON or YAML document into a pool",
		Long: `Compact a JSON or YAML document into a pool. The document is read from stdin if file is
omitted or "-". Files ending with .yaml or .yml are read as YAML unless --format is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			f := input.FormatOfFile(name)
			if len(format) > 0 {
				if f, err = input.ParseFormat(format); err != nil {
					return err
				}
			}

			pool, err := crunchDocument(data, f, crunch.MaxDepth(maxDepth))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := pool.WriteTo(out); err != nil {
				return err
			}
			fmt.Fprintln(out)

			s := pool.Stats()
			a.logger.Debug("crunched document",
				"file", name,
				"format", f,
				"bytes", len(data),
				"slots", s.Slots,
				"shared_references", s.SharedReferences)

			if stats {
				printStats(cmd.ErrOrStderr(), s)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Format of the document (json or yaml)")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print statistics of the pool to stderr")
	cmd.Flags().IntVar(&maxDepth, "max-depth", crunch.DefaultMaxDepth,
		"Maximum nesting of arrays and objects (0 for no limit)")

	return cmd
}

func crunchDocument(data []byte, format input.Format, opts ...crunch.Option) (crunch.Pool, error) {
	if format == input.FormatJSON {
		return crunch.CrunchJSON(data, opts...)
	}

	value, err := input.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return crunch.Crunch(value, opts...)
}

func printStats(w io.Writer, s crunch.PoolStats) {
	fmt.Fprintf(w, "slots: %d\n", s.Slots)
	fmt.Fprintf(w, "primitives: %d\n", s.Primitives)
	fmt.Fprintf(w, "arrays: %d\n", s.Arrays)
	fmt.Fprintf(w, "objects: %d\n", s.Objects)
	fmt.Fprintf(w, "references: %d\n", s.References)
	fmt.Fprintf(w, "shared references: %d\n", s.SharedReferences)
}

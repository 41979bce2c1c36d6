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
	"github.com/botobag/helios/crunch"

	"github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

// defaultMaxNodes bounds the output of decompact unless --max-nodes says otherwise.
const defaultMaxNodes = 1 << 24

func newDecompactCmd(a *app) *cobra.Command {
	var (
		indent   bool
		maxDepth int
		maxNodes int
	)

	cmd := &cobra.Command{
		Use:   "decompact [file]",
		Short: "Rebuild the JSON document from a pool",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var pool crunch.Pool
			if err := pool.UnmarshalJSON(data); err != nil {
				return err
			}

			value, err := crunch.Decompact(pool, crunch.MaxDepth(maxDepth), crunch.MaxNodes(maxNodes))
			if err != nil {
				return err
			}

			encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
			if indent {
				encoder.SetIndent("", "  ")
			}
			if err := encoder.Encode(value); err != nil {
				return err
			}

			a.logger.Debug("decompacted pool", "file", name, "slots", len(pool))
			return nil
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the output")
	cmd.Flags().IntVar(&maxDepth, "max-depth", crunch.DefaultMaxDepth,
		"Maximum nesting of arrays and objects (0 for no limit)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", defaultMaxNodes,
		"Maximum number of values to rebuild (0 for no limit)")

	return cmd
}

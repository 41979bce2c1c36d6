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
	"context"
	"fmt"
	"strings"

	"github.com/botobag/helios/crunch"
	"github.com/botobag/helios/internal/util"
	"github.com/botobag/helios/schema"

	"github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

// builtinSchema creates a schema whose query type has a field for each built-in scalar. Each field
// takes an argument of the same type.
func builtinSchema() (*schema.Schema, error) {
	query := schema.NewObject("Query").WithDescription("Fields of built-in scalar types")

	for _, scalar := range schema.BuiltinScalars() {
		name := scalar.Name()
		if name == strings.ToUpper(name) {
			name = strings.ToLower(name)
		}
		query.Field(util.SnakeCase(name), schema.FieldConfig{
			Type:        scalar,
			Description: fmt.Sprintf("Echo the given %s value", scalar.Name()),
			Args: []schema.ArgumentConfig{
				{
					Name:         "value",
					Type:         scalar,
					DefaultValue: schema.NilDefaultValue,
				},
			},
			Resolver: schema.FieldResolverFunc(echo),
		})
	}

	return schema.NewSchema(schema.SchemaConfig{
		Query: query,
	})
}

func newDescribeCmd(a *app) *cobra.Command {
	var crunched bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the description of the schema of built-in scalars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := builtinSchema()
			if err != nil {
				return err
			}

			description := schema.Describe(s)
			out := cmd.OutOrStdout()

			if crunched {
				pool, err := crunch.Crunch(description)
				if err != nil {
					return err
				}
				if _, err := pool.WriteTo(out); err != nil {
					return err
				}
				fmt.Fprintln(out)

				stats := pool.Stats()
				a.logger.Debug("crunched schema description",
					"types", len(s.Types()),
					"slots", stats.Slots,
					"shared_references", stats.SharedReferences)
				return nil
			}

			data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(description, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\n", data)
			return err
		},
	}

	cmd.Flags().BoolVar(&crunched, "crunch", false, "Print the description crunched into a pool")

	return cmd
}

func echo(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	return args["value"], nil
}

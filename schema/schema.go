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

package schema

import (
	"fmt"
	"sort"
)

// SchemaConfig contains the root types of a schema.
type SchemaConfig struct {
	// Query is the root type of query operations (required).
	Query *Object

	// Mutation is the root type of mutation operations (optional).
	Mutation *Object

	// Types that are not reachable from the root types but should be included in the schema
	Types []NamedType
}

// Schema is a validated collection of types.
type Schema struct {
	query    *Object
	mutation *Object
	typeMap  map[string]NamedType
}

// NewSchema collects types reachable from the root types given in config and checks them. Lazy
// types are resolved.
func NewSchema(config SchemaConfig) (*Schema, error) {
	const op Op = "schema.NewSchema"

	if config.Query == nil {
		return nil, NewError("Schema query must be Object Type but got: nil.", op, ErrKindDefinition)
	}

	c := &typeCollector{
		typeMap: map[string]NamedType{},
	}

	roots := []NamedType{config.Query}
	if config.Mutation != nil {
		roots = append(roots, config.Mutation)
	}
	roots = append(roots, config.Types...)

	for _, t := range roots {
		if err := c.collect(t); err != nil {
			return nil, NewError("", op, err)
		}
	}

	return &Schema{
		query:    config.Query,
		mutation: config.Mutation,
		typeMap:  c.typeMap,
	}, nil
}

// Query returns the root type of query operations.
func (s *Schema) Query() *Object {
	return s.query
}

// Mutation returns the root type of mutation operations or nil if the schema doesn't support
// mutations.
func (s *Schema) Mutation() *Object {
	return s.mutation
}

// Type returns the type with the given name or nil if there's no such type in the schema.
func (s *Schema) Type(name string) NamedType {
	return s.typeMap[name]
}

// Types returns all types in the schema sorted by name.
func (s *Schema) Types() []NamedType {
	types := make([]NamedType, 0, len(s.typeMap))
	for _, t := range s.typeMap {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].Name() < types[j].Name()
	})
	return types
}

type typeCollector struct {
	typeMap map[string]NamedType
}

func (c *typeCollector) collect(t Type) error {
	named, err := namedTypeOf(t)
	if err != nil {
		return err
	}

	name := named.Name()
	if prev, exists := c.typeMap[name]; exists {
		if prev == named {
			return nil
		}
		return NewError(fmt.Sprintf(
			`Schema must contain unique named types but contains multiple types named "%s".`, name),
			ErrKindDefinition)
	}
	c.typeMap[name] = named

	switch named := named.(type) {
	case *Object:
		if err := named.Err(); err != nil {
			return err
		}
		for _, field := range named.Fields() {
			if err := c.collectFieldType(named, field.Name(), field.Type(), IsOutputType, "Output"); err != nil {
				return err
			}
			for i := range field.Args() {
				arg := &field.Args()[i]
				if err := c.collectFieldType(named, field.Name()+"("+arg.Name()+":)", arg.Type(), IsInputType, "Input"); err != nil {
					return err
				}
			}
		}

	case *InputObject:
		if err := named.Err(); err != nil {
			return err
		}
		for _, field := range named.Fields() {
			if err := c.collectFieldType(named, field.Name(), field.Type(), IsInputType, "Input"); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *typeCollector) collectFieldType(parent NamedType, name string, t Type, check func(Type) bool, expected string) error {
	if err := c.collect(t); err != nil {
		return err
	}
	if !check(t) {
		return NewError(fmt.Sprintf("The type of %s.%s must be %s Type but got: %s.",
			parent.Name(), name, expected, t), ErrKindDefinition)
	}
	return nil
}

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

	"github.com/json-iterator/go"
)

// Describe returns a description of the schema in the shape of an introspection query result. It
// is made of maps, slices, strings, booleans and nils only.
func Describe(s *Schema) map[string]interface{} {
	types := make([]interface{}, 0, len(s.typeMap))
	for _, t := range s.Types() {
		types = append(types, describeType(t))
	}

	var mutationType interface{}
	if s.mutation != nil {
		mutationType = map[string]interface{}{"name": s.mutation.Name()}
	}

	return map[string]interface{}{
		"queryType":    map[string]interface{}{"name": s.query.Name()},
		"mutationType": mutationType,
		"types":        types,
	}
}

func optionalString(s string) interface{} {
	if len(s) == 0 {
		return nil
	}
	return s
}

// printDefaultValue serializes a default value to JSON.
func printDefaultValue(value interface{}) interface{} {
	s, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return s
}

func describeType(t NamedType) map[string]interface{} {
	result := map[string]interface{}{
		"kind":        t.Kind().String(),
		"name":        t.Name(),
		"description": optionalString(t.Description()),
	}

	switch t := t.(type) {
	case *Object:
		fields := make([]interface{}, len(t.Fields()))
		for i, field := range t.Fields() {
			fields[i] = describeField(field)
		}
		result["fields"] = fields

	case *InputObject:
		fields := make([]interface{}, len(t.Fields()))
		for i, field := range t.Fields() {
			var defaultValue interface{}
			if field.HasDefaultValue() {
				defaultValue = printDefaultValue(field.DefaultValue())
			}
			fields[i] = map[string]interface{}{
				"name":              field.Name(),
				"description":       optionalString(field.Description()),
				"type":              describeTypeRef(field.Type()),
				"defaultValue":      defaultValue,
				"isDeprecated":      field.IsDeprecated(),
				"deprecationReason": optionalString(field.DeprecationReason()),
			}
		}
		result["inputFields"] = fields
	}

	return result
}

func describeField(field *Field) map[string]interface{} {
	args := make([]interface{}, len(field.Args()))
	for i := range field.Args() {
		arg := &field.Args()[i]
		var defaultValue interface{}
		if arg.HasDefaultValue() {
			defaultValue = printDefaultValue(arg.DefaultValue())
		}
		args[i] = map[string]interface{}{
			"name":         arg.Name(),
			"description":  optionalString(arg.Description()),
			"type":         describeTypeRef(arg.Type()),
			"defaultValue": defaultValue,
		}
	}

	return map[string]interface{}{
		"name":              field.Name(),
		"description":       optionalString(field.Description()),
		"args":              args,
		"type":              describeTypeRef(field.Type()),
		"isDeprecated":      field.IsDeprecated(),
		"deprecationReason": optionalString(field.DeprecationReason()),
	}
}

func describeTypeRef(t Type) map[string]interface{} {
	if wrapping, ok := t.(WrappingType); ok {
		return map[string]interface{}{
			"kind":   wrapping.Kind().String(),
			"name":   nil,
			"ofType": describeTypeRef(wrapping.OfType()),
		}
	}

	t = UnderlyingType(t)
	var name interface{}
	if named, ok := t.(NamedType); ok {
		name = named.Name()
	}
	return map[string]interface{}{
		"kind":   t.Kind().String(),
		"name":   name,
		"ofType": nil,
	}
}

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
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/botobag/helios/internal/util"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// DefaultResolver returns a resolver that reads the attribute attname from the source value:
//
//   - a map is indexed with attname;
//   - otherwise a method whose name is the exported camel case of attname ("first_name" gives
//     "FirstName") is called; It may take a context.Context and may return an error as second
//     result;
//   - otherwise a struct field is looked up, either tagged with `graphql:"<attname>"` or named like
//     the method above (case-insensitive).
//
// defaultValue is returned when the attribute is absent.
func DefaultResolver(attname string, defaultValue interface{}) FieldResolver {
	goName := exportedName(attname)
	return FieldResolverFunc(func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return resolveAttribute(ctx, source, attname, goName, defaultValue)
	})
}

// exportedName converts a snake_case name into an exported Go identifier.
func exportedName(name string) string {
	name = util.CamelCase(name)
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func resolveAttribute(ctx context.Context, source interface{}, attname string, goName string, defaultValue interface{}) (interface{}, error) {
	switch s := source.(type) {
	case nil:
		return defaultValue, nil

	case map[string]interface{}:
		if value, exists := s[attname]; exists {
			return value, nil
		}
		return defaultValue, nil
	}

	value := reflect.ValueOf(source)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return defaultValue, nil
	}

	// Look up method before dereferencing pointer to find methods with pointer receiver.
	if method := value.MethodByName(goName); method.IsValid() {
		return callResolverMethod(ctx, method, goName)
	}

	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return defaultValue, nil
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Map:
		keyType := value.Type().Key()
		if keyType.Kind() == reflect.String {
			if v := value.MapIndex(reflect.ValueOf(attname).Convert(keyType)); v.IsValid() {
				return v.Interface(), nil
			}
		}

	case reflect.Struct:
		if method := value.MethodByName(goName); method.IsValid() {
			return callResolverMethod(ctx, method, goName)
		}
		if v, ok := structField(value, attname, goName); ok {
			return v.Interface(), nil
		}
	}

	return defaultValue, nil
}

// structField finds the field for an attribute in a struct value. Fields of embedded structs are
// included.
func structField(value reflect.Value, attname string, goName string) (reflect.Value, bool) {
	var candidate []int
	for _, field := range reflect.VisibleFields(value.Type()) {
		if !field.IsExported() || field.Anonymous {
			continue
		}

		if tag, ok := field.Tag.Lookup("graphql"); ok {
			if name, _, _ := strings.Cut(tag, ","); name == attname {
				candidate = field.Index
				break
			}
			continue
		}

		if candidate == nil && strings.EqualFold(field.Name, goName) {
			candidate = field.Index
		}
	}

	if candidate == nil {
		return reflect.Value{}, false
	}

	v, err := value.FieldByIndexErr(candidate)
	if err != nil {
		// Embedded through a nil pointer
		return reflect.Value{}, false
	}
	return v, true
}

// callResolverMethod calls a method found by DefaultResolver. The method may take a
// context.Context and returns either a value or a value and an error.
func callResolverMethod(ctx context.Context, method reflect.Value, name string) (interface{}, error) {
	const op Op = "schema.DefaultResolver"

	methodType := method.Type()

	var in []reflect.Value
	switch {
	case methodType.NumIn() == 0:
	case methodType.NumIn() == 1 && methodType.In(0) == contextType:
		in = []reflect.Value{reflect.ValueOf(&ctx).Elem()}
	default:
		return nil, NewError(fmt.Sprintf("method %s has unsupported parameters %s", name, methodType), op)
	}

	switch {
	case methodType.NumOut() == 1:
		return method.Call(in)[0].Interface(), nil

	case methodType.NumOut() == 2 && methodType.Out(1) == errorType:
		out := method.Call(in)
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}

	return nil, NewError(fmt.Sprintf("method %s has unsupported results %s", name, methodType), op)
}

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

package crunch

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"

	"github.com/json-iterator/go"
)

// DefaultMaxDepth is the nesting limit applied by Crunch when MaxDepth is not given.
const DefaultMaxDepth = 10000

type config struct {
	maxDepth int
	maxNodes int
}

// Option configures Crunch and Decompact.
type Option func(c *config)

// MaxDepth sets the maximum number of nested arrays and objects allowed in the input of Crunch and
// in the output of Decompact. Values smaller than 1 disable the limit.
func MaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// MaxNodes sets the maximum number of values (primitives, arrays and objects) Decompact may
// rebuild. A pool shares slots, so a small pool can expand to a tree exponentially larger than
// itself. Values smaller than 1 (the default) disable the limit. Crunch ignores it.
func MaxNodes(nodes int) Option {
	return func(c *config) {
		c.maxNodes = nodes
	}
}

func newConfig(opts []Option) config {
	c := config{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// visitKey identifies a map, slice or pointer that is being visited.
type visitKey struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

// encoder holds the states of a single Crunch call.
type encoder struct {
	config config

	// The pool being built
	pool Pool

	// Map dedup key of every slot in pool to its index
	index map[string]int

	// Scratch buffer for building dedup keys
	keyBuf []byte

	// Composites (and pointers) on the current descent path; Used for detecting cycles.
	visiting map[visitKey]struct{}
}

func newEncoder(config config) *encoder {
	return &encoder{
		config:   config,
		index:    make(map[string]int),
		keyBuf:   make([]byte, 0, 64),
		visiting: make(map[visitKey]struct{}),
	}
}

// Crunch compacts data into a Pool. data is a value tree made of nil, booleans, numbers
// (including json.Number), strings, slices or arrays of value trees and maps from strings to value
// trees. Pointers and interfaces to such values are followed. Nil slices, maps and pointers are
// treated as null and byte slices are encoded as base64 strings, as encoding/json does.
//
// Anything else (structs, channels, functions, complex numbers, maps with non-string keys, NaN or
// infinite floats) fails with an Error of ErrKindEncoding. A value that contains itself fails with
// ErrKindCycle.
func Crunch(data interface{}, opts ...Option) (Pool, error) {
	const op Op = "crunch.Crunch"

	enc := newEncoder(newConfig(opts))
	if _, err := enc.encode(data, 0); err != nil {
		return nil, NewError("", op, err)
	}
	return enc.pool, nil
}

// jsonAPI decodes JSON input. Numbers are kept in json.Number to not lose precision.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// CrunchJSON decodes the JSON text in data and compacts the decoded value.
func CrunchJSON(data []byte, opts ...Option) (Pool, error) {
	const op Op = "crunch.CrunchJSON"

	var value interface{}
	if err := jsonAPI.Unmarshal(data, &value); err != nil {
		return nil, NewError("invalid JSON input", op, ErrKindEncoding, err)
	}

	enc := newEncoder(newConfig(opts))
	if _, err := enc.encode(value, 0); err != nil {
		return nil, NewError("", op, err)
	}
	return enc.pool, nil
}

// Marshal compacts an arbitrary Go value. The value is first serialized to JSON (honoring struct
// tags and json.Marshaler) and then crunched.
func Marshal(v interface{}, opts ...Option) (Pool, error) {
	const op Op = "crunch.Marshal"

	data, err := jsonAPI.Marshal(v)
	if err != nil {
		return nil, NewError(fmt.Sprintf("cannot serialize %T", v), op, ErrKindEncoding, err)
	}

	pool, err := CrunchJSON(data, opts...)
	if err != nil {
		return nil, NewError("", op, err)
	}
	return pool, nil
}

// intern returns the index of the slot for a normalized primitive, adding the slot if it's new.
func (enc *encoder) intern(p interface{}) int {
	enc.keyBuf = appendPrimitiveKey(enc.keyBuf[:0], p)
	if index, exists := enc.index[string(enc.keyBuf)]; exists {
		return index
	}
	return enc.add(Slot{
		kind:  SlotKindPrimitive,
		value: p,
	})
}

// internArray returns the index of the array slot with the given elements.
func (enc *encoder) internArray(elements []int) int {
	enc.keyBuf = appendArrayKey(enc.keyBuf[:0], elements)
	if index, exists := enc.index[string(enc.keyBuf)]; exists {
		return index
	}
	return enc.add(Slot{
		kind:     SlotKindArray,
		elements: elements,
	})
}

// internObject returns the index of the object slot with the given sorted fields.
func (enc *encoder) internObject(fields []ObjectField) int {
	enc.keyBuf = appendObjectKey(enc.keyBuf[:0], fields)
	if index, exists := enc.index[string(enc.keyBuf)]; exists {
		return index
	}
	return enc.add(Slot{
		kind:   SlotKindObject,
		fields: fields,
	})
}

// add appends s whose key is in enc.keyBuf to the pool.
func (enc *encoder) add(s Slot) int {
	index := len(enc.pool)
	enc.pool = append(enc.pool, s)
	enc.index[string(enc.keyBuf)] = index
	return index
}

// enter marks key as being visited. It fails if the key is already on the descent path.
func (enc *encoder) enter(key visitKey) error {
	if _, exists := enc.visiting[key]; exists {
		return NewError("value contains itself", ErrKindCycle)
	}
	enc.visiting[key] = struct{}{}
	return nil
}

func (enc *encoder) leave(key visitKey) {
	delete(enc.visiting, key)
}

// checkDepth fails if a composite at the given depth exceeds the limit.
func (enc *encoder) checkDepth(depth int) error {
	if maxDepth := enc.config.maxDepth; maxDepth > 0 && depth >= maxDepth {
		return NewError(fmt.Sprintf("exceeded maximum depth %d", maxDepth), ErrKindDepth)
	}
	return nil
}

// encode adds v and all its descendants to the pool and returns the index of the slot for v.
func (enc *encoder) encode(v interface{}, depth int) (int, error) {
	// Fast path for trees decoded by encoding/json or jsoniter.
	switch v := v.(type) {
	case []interface{}:
		if v == nil {
			return enc.intern(nil), nil
		}
		return enc.encodeArray(reflect.ValueOf(v), len(v), func(i int) interface{} {
			return v[i]
		}, depth)

	case map[string]interface{}:
		if v == nil {
			return enc.intern(nil), nil
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		return enc.encodeObject(reflect.ValueOf(v), keys, func(key string) interface{} {
			return v[key]
		}, depth)
	}

	p, ok, err := normalizePrimitive(v)
	if err != nil {
		return 0, NewError(err.Error(), ErrKindEncoding)
	} else if ok {
		return enc.intern(p), nil
	}

	return enc.encodeReflect(reflect.ValueOf(v), depth)
}

// encodeReflect handles composites and pointers of arbitrary types.
func (enc *encoder) encodeReflect(value reflect.Value, depth int) (int, error) {
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return enc.intern(nil), nil
		}
		key := visitKey{kind: reflect.Ptr, ptr: value.Pointer()}
		if err := enc.enter(key); err != nil {
			return 0, err
		}
		index, err := enc.encode(value.Elem().Interface(), depth)
		enc.leave(key)
		return index, err

	case reflect.Interface:
		if value.IsNil() {
			return enc.intern(nil), nil
		}
		return enc.encode(value.Elem().Interface(), depth)

	case reflect.Slice:
		if value.IsNil() {
			return enc.intern(nil), nil
		}
		if value.Type().Elem().Kind() == reflect.Uint8 {
			// Same as encoding/json.
			return enc.intern(base64.StdEncoding.EncodeToString(value.Bytes())), nil
		}
		return enc.encodeArray(value, value.Len(), func(i int) interface{} {
			return value.Index(i).Interface()
		}, depth)

	case reflect.Array:
		return enc.encodeArray(value, value.Len(), func(i int) interface{} {
			return value.Index(i).Interface()
		}, depth)

	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return 0, NewError(fmt.Sprintf("unsupported map key type %s", value.Type().Key()), ErrKindEncoding)
		}
		if value.IsNil() {
			return enc.intern(nil), nil
		}
		keys := make([]string, 0, value.Len())
		for _, key := range value.MapKeys() {
			keys = append(keys, key.String())
		}
		keyType := value.Type().Key()
		return enc.encodeObject(value, keys, func(key string) interface{} {
			return value.MapIndex(reflect.ValueOf(key).Convert(keyType)).Interface()
		}, depth)
	}

	return 0, NewError(fmt.Sprintf("unsupported type %s", typeName(value)), ErrKindEncoding)
}

func typeName(value reflect.Value) string {
	if !value.IsValid() {
		return "<invalid>"
	}
	return value.Type().String()
}

// encodeArray encodes an array of n elements. value is the array itself and is used for cycle
// detection.
func (enc *encoder) encodeArray(value reflect.Value, n int, elementAt func(i int) interface{}, depth int) (int, error) {
	if err := enc.checkDepth(depth); err != nil {
		return 0, err
	}

	if n == 0 {
		return enc.internArray([]int{}), nil
	}

	if value.Kind() == reflect.Slice {
		key := visitKey{kind: reflect.Slice, ptr: value.Pointer(), len: n}
		if err := enc.enter(key); err != nil {
			return 0, err
		}
		defer enc.leave(key)
	}

	elements := make([]int, n)
	for i := 0; i < n; i++ {
		index, err := enc.encode(elementAt(i), depth+1)
		if err != nil {
			return 0, prependPath(err, i)
		}
		elements[i] = index
	}

	return enc.internArray(elements), nil
}

// encodeObject encodes an object with the given keys in arbitrary order. value is the map itself
// and is used for cycle detection.
func (enc *encoder) encodeObject(value reflect.Value, keys []string, valueOf func(key string) interface{}, depth int) (int, error) {
	if err := enc.checkDepth(depth); err != nil {
		return 0, err
	}

	if len(keys) == 0 {
		return enc.internObject([]ObjectField{}), nil
	}

	key := visitKey{kind: reflect.Map, ptr: value.Pointer()}
	if err := enc.enter(key); err != nil {
		return 0, err
	}
	defer enc.leave(key)

	sort.Strings(keys)
	fields := make([]ObjectField, len(keys))
	for i, k := range keys {
		index, err := enc.encode(valueOf(k), depth+1)
		if err != nil {
			return 0, prependPath(err, k)
		}
		fields[i] = ObjectField{
			Key:   k,
			Index: index,
		}
	}

	return enc.internObject(fields), nil
}

// prependPath adds key to the front of the path in err.
func prependPath(err error, key interface{}) error {
	if e, ok := err.(*Error); ok {
		keys := make([]interface{}, 0, len(e.Path.keys)+1)
		keys = append(keys, key)
		e.Path = Path{append(keys, e.Path.keys...)}
	}
	return err
}

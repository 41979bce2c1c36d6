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
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

var errNonFiniteNumber = errors.New("NaN and infinite numbers are not supported")

// normalizePrimitive turns a primitive value into its canonical representation held by a Slot: nil,
// bool, int64, uint64 (only for values above math.MaxInt64), float64, string or json.Number (only
// for numbers that don't fit into either int64 or float64.) ok is false if v is not a primitive.
func normalizePrimitive(v interface{}) (p interface{}, ok bool, err error) {
	switch v := v.(type) {
	case nil:
		return nil, true, nil
	case bool:
		return v, true, nil
	case string:
		return v, true, nil
	case int:
		return int64(v), true, nil
	case int8:
		return int64(v), true, nil
	case int16:
		return int64(v), true, nil
	case int32:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case uint:
		return normalizeUint(uint64(v)), true, nil
	case uint8:
		return int64(v), true, nil
	case uint16:
		return int64(v), true, nil
	case uint32:
		return int64(v), true, nil
	case uint64:
		return normalizeUint(v), true, nil
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case json.Number:
		return normalizeNumber(v)
	}

	// Named types like "type Color string".
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Bool:
		return value.Bool(), true, nil
	case reflect.String:
		return value.String(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return normalizeUint(value.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		return normalizeFloat(value.Float())
	}

	return nil, false, nil
}

func normalizeUint(u uint64) interface{} {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return u
}

func normalizeFloat(f float64) (interface{}, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false, errNonFiniteNumber
	}
	return f, true, nil
}

// isIntegerLiteral returns true if s has neither fraction nor exponent.
func isIntegerLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}

func normalizeNumber(n json.Number) (interface{}, bool, error) {
	s := string(n)
	if !isValidNumber(s) {
		return nil, false, fmt.Errorf("invalid number literal %q", s)
	}

	if isIntegerLiteral(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, true, nil
		}
		// Too large for any of Go's integer types.
		return n, true, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		// Out of the range of float64.
		return n, true, nil
	}
	return f, true, nil
}

// isValidNumber reports whether s is a valid JSON number literal.
//
// Implementation mirrored from https://go.googlesource.com/go/+/5fae09b/src/encoding/json/encode.go.
func isValidNumber(s string) bool {
	if s == "" {
		return false
	}

	// Optional -
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}

	// Digits
	switch {
	default:
		return false

	case s[0] == '0':
		s = s[1:]

	case '1' <= s[0] && s[0] <= '9':
		s = s[1:]
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}

	// . followed by 1 or more digits.
	if len(s) >= 2 && s[0] == '.' && '0' <= s[1] && s[1] <= '9' {
		s = s[2:]
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}

	// e or E followed by an optional - or + and
	// 1 or more digits.
	if len(s) >= 2 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if s[0] == '+' || s[0] == '-' {
			s = s[1:]
			if s == "" {
				return false
			}
		}
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}

	// Make sure we are at the end.
	return s == ""
}

// Dedup keys start with a tag byte that tells the kind of slot (and, for primitives, the type of
// the value) followed by an encoding that is injective within the tag.
const (
	keyTagNull   = 'z'
	keyTagTrue   = 't'
	keyTagFalse  = 'f'
	keyTagInt    = 'i'
	keyTagUint   = 'u'
	keyTagFloat  = 'd'
	keyTagNumber = 'n'
	keyTagString = 's'
	keyTagArray  = 'a'
	keyTagObject = 'o'
)

// appendPrimitiveKey appends the dedup key of a normalized primitive to buf.
func appendPrimitiveKey(buf []byte, p interface{}) []byte {
	switch p := p.(type) {
	case nil:
		return append(buf, keyTagNull)
	case bool:
		if p {
			return append(buf, keyTagTrue)
		}
		return append(buf, keyTagFalse)
	case int64:
		return strconv.AppendInt(append(buf, keyTagInt), p, 10)
	case uint64:
		return strconv.AppendUint(append(buf, keyTagUint), p, 10)
	case float64:
		return strconv.AppendFloat(append(buf, keyTagFloat), p, 'g', -1, 64)
	case json.Number:
		return append(append(buf, keyTagNumber), p...)
	case string:
		return append(append(buf, keyTagString), p...)
	}
	panic(fmt.Sprintf("crunch: unexpected primitive of type %T", p))
}

// appendArrayKey appends the dedup key of an array slot to buf.
func appendArrayKey(buf []byte, elements []int) []byte {
	buf = append(buf, keyTagArray)
	for _, index := range elements {
		buf = strconv.AppendInt(buf, int64(index), 10)
		buf = append(buf, ',')
	}
	return buf
}

// appendObjectKey appends the dedup key of an object slot to buf. Fields must be sorted.
func appendObjectKey(buf []byte, fields []ObjectField) []byte {
	buf = append(buf, keyTagObject)
	for _, field := range fields {
		buf = strconv.AppendQuote(buf, field.Key)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(field.Index), 10)
		buf = append(buf, ',')
	}
	return buf
}

// appendSlotKey appends the dedup key of s to buf.
func appendSlotKey(buf []byte, s Slot) []byte {
	switch s.kind {
	case SlotKindArray:
		return appendArrayKey(buf, s.elements)
	case SlotKindObject:
		return appendObjectKey(buf, s.fields)
	}
	return appendPrimitiveKey(buf, s.value)
}

func sortFields(fields []ObjectField) {
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key < fields[j].Key
	})
}

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
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Range of values representable by Int
const (
	MaxInt = math.MaxInt32
	MinInt = math.MinInt32
)

func floatToInteger(f float64) (*big.Int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	// Truncate toward zero.
	n, _ := big.NewFloat(f).Int(nil)
	return n, true
}

// integerOf converts value into an integer. Floats are truncated; Strings must be integer literals.
func integerOf(value interface{}) (*big.Int, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false

	case bool:
		if v {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true

	case json.Number:
		if n, ok := new(big.Int).SetString(string(v), 10); ok {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return floatToInteger(f)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return floatToInteger(rv.Float())
	case reflect.String:
		return new(big.Int).SetString(strings.TrimSpace(rv.String()), 10)
	}

	return nil, false
}

func coerceInt(value interface{}) interface{} {
	n, ok := integerOf(value)
	if !ok || !n.IsInt64() {
		return nil
	}
	i := n.Int64()
	if i > MaxInt || i < MinInt {
		return nil
	}
	return int(i)
}

// coerceBigInt returns an int64 or, for integers beyond its range, a json.Number.
func coerceBigInt(value interface{}) interface{} {
	n, ok := integerOf(value)
	if !ok {
		return nil
	}
	if n.IsInt64() {
		return n.Int64()
	}
	return json.Number(n.String())
}

func coerceFloat(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil

	case bool:
		if v {
			return float64(1)
		}
		return float64(0)

	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return f
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return nil
		}
		return f
	}

	return nil
}

func coerceString(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.String:
		return rv.String()
	}

	return fmt.Sprint(value)
}

// truthy tells whether value counts as true: false, zero numbers, empty strings and empty
// collections count as false.
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func coerceBoolean(value interface{}) interface{} {
	return truthy(value)
}

// Int represents non-fractional signed whole numeric values between MinInt and MaxInt.
var Int = MustNewScalar(ScalarConfig{
	Name: "Int",
	Description: "The `Int` scalar type represents non-fractional signed whole numeric " +
		"values. Int can represent values between -(2^31) and 2^31 - 1.",
	Serialize:  coerceInt,
	ParseValue: coerceInt,
	ParseLiteral: func(literal Literal) interface{} {
		if literal.Kind == LiteralKindInt {
			return coerceInt(literal.Value)
		}
		return nil
	},
})

// BigInt represents non-fractional whole numeric values without the 32-bit limit of Int.
var BigInt = MustNewScalar(ScalarConfig{
	Name: "BigInt",
	Description: "The `BigInt` scalar type represents non-fractional whole numeric values. " +
		"`BigInt` is not constrained to 32-bit like the `Int` type and thus is a less " +
		"compatible type.",
	Serialize:  coerceBigInt,
	ParseValue: coerceBigInt,
	ParseLiteral: func(literal Literal) interface{} {
		if literal.Kind == LiteralKindInt {
			return coerceBigInt(literal.Value)
		}
		return nil
	},
})

// Float represents signed double-precision fractional values.
var Float = MustNewScalar(ScalarConfig{
	Name: "Float",
	Description: "The `Float` scalar type represents signed double-precision fractional " +
		"values as specified by [IEEE 754](http://en.wikipedia.org/wiki/IEEE_floating_point).",
	Serialize:  coerceFloat,
	ParseValue: coerceFloat,
	ParseLiteral: func(literal Literal) interface{} {
		switch literal.Kind {
		case LiteralKindInt, LiteralKindFloat:
			return coerceFloat(literal.Value)
		}
		return nil
	},
})

// String represents textual data.
var String = MustNewScalar(ScalarConfig{
	Name: "String",
	Description: "The `String` scalar type represents textual data, represented as UTF-8 " +
		"character sequences. The String type is most often used by GraphQL to represent " +
		"free-form human-readable text.",
	Serialize:  coerceString,
	ParseValue: coerceString,
	ParseLiteral: func(literal Literal) interface{} {
		if literal.Kind == LiteralKindString {
			return literal.Value
		}
		return nil
	},
})

// Boolean represents true or false.
var Boolean = MustNewScalar(ScalarConfig{
	Name:        "Boolean",
	Description: "The `Boolean` scalar type represents `true` or `false`.",
	Serialize:   coerceBoolean,
	ParseValue:  coerceBoolean,
	ParseLiteral: func(literal Literal) interface{} {
		if literal.Kind == LiteralKindBoolean {
			return literal.Value == "true"
		}
		return nil
	},
})

// ID represents a unique identifier. It is serialized as a string and accepts both strings and
// integers as input.
var ID = MustNewScalar(ScalarConfig{
	Name: "ID",
	Description: "The `ID` scalar type represents a unique identifier, often used to " +
		"refetch an object or as key for a cache. The ID type appears in a JSON response as a " +
		"String; however, it is not intended to be human-readable. When expected as an input " +
		"type, any string (such as `\"4\"`) or integer (such as `4`) input value will be " +
		"accepted as an ID.",
	Serialize:  coerceString,
	ParseValue: coerceString,
	ParseLiteral: func(literal Literal) interface{} {
		switch literal.Kind {
		case LiteralKindString, LiteralKindInt:
			return literal.Value
		}
		return nil
	},
})

// BuiltinScalars returns the scalars defined by this package.
func BuiltinScalars() []*Scalar {
	return []*Scalar{Int, BigInt, Float, String, Boolean, ID}
}

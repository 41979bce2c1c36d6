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
	"strconv"
)

// LiteralKind tells the syntactic kind of a Literal.
type LiteralKind uint8

// Enumeration of LiteralKind
const (
	LiteralKindNull LiteralKind = iota
	LiteralKindInt
	LiteralKindFloat
	LiteralKindString
	LiteralKindBoolean
	LiteralKindEnum
)

// Literal is a value written in a query document. Value is the source text of the value except for
// strings whose Value is the string content.
type Literal struct {
	Kind  LiteralKind
	Value string
}

// CoerceFunc converts a value for a scalar. It returns nil if the value cannot be represented by
// the scalar.
type CoerceFunc func(value interface{}) interface{}

// ParseLiteralFunc converts a literal for a scalar. It returns nil if the literal cannot be
// represented by the scalar.
type ParseLiteralFunc func(literal Literal) interface{}

// ScalarConfig defines a scalar type.
type ScalarConfig struct {
	// Name of the scalar type
	Name string

	// Description of the scalar type
	Description string

	// Serialize converts a resolved value for the response.
	Serialize CoerceFunc

	// ParseValue converts a value given in variables (optional; values are taken as is when not
	// given).
	ParseValue CoerceFunc

	// ParseLiteral converts a value written in a query document (optional).
	ParseLiteral ParseLiteralFunc
}

// Scalar is a leaf type.
type Scalar struct {
	config ScalarConfig
}

var _ NamedType = (*Scalar)(nil)

// NewScalar defines a scalar type.
func NewScalar(config ScalarConfig) (*Scalar, error) {
	const op Op = "schema.NewScalar"

	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Scalar.", op, ErrKindDefinition)
	}

	if config.Serialize == nil {
		return nil, NewError(fmt.Sprintf(
			`%s must provide Serialize. If this custom Scalar is also used as an input type, `+
				`ensure ParseValue and ParseLiteral are also provided.`, config.Name), op, ErrKindDefinition)
	}

	return &Scalar{config: config}, nil
}

// MustNewScalar is a convenience function equivalent to NewScalar but panics on failure instead of
// returning an error.
func MustNewScalar(config ScalarConfig) *Scalar {
	s, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind implements Type.
func (s *Scalar) Kind() TypeKind {
	return TypeKindScalar
}

// String implements Type.
func (s *Scalar) String() string {
	return s.config.Name
}

// Name implements NamedType.
func (s *Scalar) Name() string {
	return s.config.Name
}

// Description implements NamedType.
func (s *Scalar) Description() string {
	return s.config.Description
}

// Serialize converts value with the scalar's Serialize function.
func (s *Scalar) Serialize(value interface{}) interface{} {
	return s.config.Serialize(value)
}

// ParseValue converts value with the scalar's ParseValue function.
func (s *Scalar) ParseValue(value interface{}) interface{} {
	if s.config.ParseValue == nil {
		return value
	}
	return s.config.ParseValue(value)
}

// ParseLiteral converts literal with the scalar's ParseLiteral function.
func (s *Scalar) ParseLiteral(literal Literal) interface{} {
	if s.config.ParseLiteral == nil {
		return defaultParseLiteral(literal)
	}
	return s.config.ParseLiteral(literal)
}

// defaultParseLiteral converts a literal into the Go value it denotes.
func defaultParseLiteral(literal Literal) interface{} {
	switch literal.Kind {
	case LiteralKindInt:
		if i, err := strconv.ParseInt(literal.Value, 10, 64); err == nil {
			return i
		}
	case LiteralKindFloat:
		if f, err := strconv.ParseFloat(literal.Value, 64); err == nil {
			return f
		}
	case LiteralKindBoolean:
		return literal.Value == "true"
	case LiteralKindString, LiteralKindEnum:
		return literal.Value
	}
	return nil
}

// CoerceResult serializes value and fails if the scalar cannot represent it. nil is passed through.
func (s *Scalar) CoerceResult(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if result := s.Serialize(value); result != nil {
		return result, nil
	}
	return nil, NewError(fmt.Sprintf("%s cannot represent value: %v", s.Name(), value),
		Op("schema.Scalar.CoerceResult"), ErrKindCoercion)
}

// CoerceInput parses value given in variables and fails if the scalar cannot represent it. nil is
// passed through.
func (s *Scalar) CoerceInput(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if result := s.ParseValue(value); result != nil {
		return result, nil
	}
	return nil, NewError(fmt.Sprintf("%s cannot represent value: %v", s.Name(), value),
		Op("schema.Scalar.CoerceInput"), ErrKindCoercion)
}

// CoerceLiteral parses literal and fails if the scalar cannot represent it. A null literal gives
// nil.
func (s *Scalar) CoerceLiteral(literal Literal) (interface{}, error) {
	if literal.Kind == LiteralKindNull {
		return nil, nil
	}
	if result := s.ParseLiteral(literal); result != nil {
		return result, nil
	}
	return nil, NewError(fmt.Sprintf("%s cannot represent literal: %s", s.Name(), literal.Value),
		Op("schema.Scalar.CoerceLiteral"), ErrKindCoercion)
}

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
)

// TypeKind tells what a Type is.
type TypeKind uint8

// Enumeration of TypeKind
const (
	TypeKindInvalid TypeKind = iota // Kind of a LazyType that cannot be resolved
	TypeKindScalar
	TypeKindObject
	TypeKindInputObject
	TypeKindList
	TypeKindNonNull
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindScalar:
		return "SCALAR"
	case TypeKindObject:
		return "OBJECT"
	case TypeKindInputObject:
		return "INPUT_OBJECT"
	case TypeKindList:
		return "LIST"
	case TypeKindNonNull:
		return "NON_NULL"
	}
	return "INVALID"
}

// Type is implemented by every type in a schema.
type Type interface {
	Kind() TypeKind

	// String returns the type in the notation of the schema language such as "[Int!]".
	String() string
}

// NamedType is a Type that has a name: Scalar, Object, InputObject and LazyType.
type NamedType interface {
	Type
	Name() string
	Description() string
}

// WrappingType wraps another type: List and NonNull.
type WrappingType interface {
	Type
	OfType() Type
}

// List is a type whose values are sequences of values of the element type.
type List struct {
	ofType Type
}

var _ WrappingType = (*List)(nil)

// ListOf returns a List of the given element type.
func ListOf(elementType Type) Type {
	return &List{ofType: elementType}
}

// Kind implements Type.
func (l *List) Kind() TypeKind {
	return TypeKindList
}

// String implements Type.
func (l *List) String() string {
	return "[" + l.ofType.String() + "]"
}

// OfType implements WrappingType.
func (l *List) OfType() Type {
	return l.ofType
}

// NonNull is a type whose values are never null.
type NonNull struct {
	ofType Type
}

var _ WrappingType = (*NonNull)(nil)

// NonNullOf returns the non-null variant of t. It returns t itself when t is already a NonNull.
func NonNullOf(t Type) Type {
	if nonNull, ok := t.(*NonNull); ok {
		return nonNull
	}
	return &NonNull{ofType: t}
}

// Kind implements Type.
func (n *NonNull) Kind() TypeKind {
	return TypeKindNonNull
}

// String implements Type.
func (n *NonNull) String() string {
	return n.ofType.String() + "!"
}

// OfType implements WrappingType.
func (n *NonNull) OfType() Type {
	return n.ofType
}

// UnderlyingType strips List and NonNull from t. A LazyType is replaced by the type it refers to
// when it can be resolved.
func UnderlyingType(t Type) Type {
	for {
		switch typ := t.(type) {
		case WrappingType:
			t = typ.OfType()
		case *LazyType:
			resolved, err := typ.Resolve()
			if err != nil {
				return typ
			}
			return resolved
		default:
			return t
		}
	}
}

// namedTypeOf is like UnderlyingType but fails when t refers to a LazyType that cannot be resolved.
func namedTypeOf(t Type) (NamedType, error) {
	for {
		switch typ := t.(type) {
		case WrappingType:
			t = typ.OfType()
		case *LazyType:
			return typ.Resolve()
		case NamedType:
			return typ, nil
		default:
			return nil, NewError(fmt.Sprintf("unsupported type %T", t), ErrKindDefinition)
		}
	}
}

// IsInputType returns true if values of t can be given as arguments.
func IsInputType(t Type) bool {
	switch UnderlyingType(t).Kind() {
	case TypeKindScalar, TypeKindInputObject:
		return true
	}
	return false
}

// IsOutputType returns true if t can be the type of an object field.
func IsOutputType(t Type) bool {
	switch UnderlyingType(t).Kind() {
	case TypeKindScalar, TypeKindObject:
		return true
	}
	return false
}

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
	"errors"
	"fmt"
	"strings"
)

// Op describes an operation, usually as the package and method, such as "schema.NewSchema".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther      ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindDefinition                // A type or field is defined incorrectly or refers to something unknown.
	ErrKindCoercion                  // A value cannot be represented by a type.
)

var errKindNames = [...]string{
	ErrKindOther:      "other error",
	ErrKindDefinition: "definition error",
	ErrKindCoercion:   "coercion error",
}

func (k ErrKind) String() string {
	if int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return "unknown error kind"
}

// An Error describes a failure to define a schema or to coerce a value.
type Error struct {
	// Message describes the error for debugging purposes
	Message string

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Each argument is one of Op, ErrKind or error. Kind
// is pulled from the underlying error when not given.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case ErrKind:
			e.Kind = arg
		case error:
			e.Err = arg
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if prev, ok := e.Err.(*Error); ok && e.Kind == ErrKindOther {
		e.Kind = prev.Kind
	}

	return e
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.format(&b, nil)
	return b.String()
}

func (e *Error) format(b *strings.Builder, outer *Error) {
	start := b.Len()
	separate := func() {
		if b.Len() > start {
			b.WriteString(": ")
		}
	}

	b.WriteString(string(e.Op))

	if len(e.Message) > 0 {
		separate()
		b.WriteString(e.Message)
	}

	if e.Kind != ErrKindOther && (outer == nil || outer.Kind != e.Kind) {
		separate()
		b.WriteString(e.Kind.String())
	}

	switch inner := e.Err.(type) {
	case nil:
	case *Error:
		separate()
		inner.format(b, e)
	default:
		separate()
		b.WriteString(inner.Error())
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind returns true if err is an Error (or wraps one) of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

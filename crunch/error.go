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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "crunch.Crunch".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther    ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindEncoding                // The value is outside the value tree grammar and cannot be crunched.
	ErrKindCycle                   // The value contains itself.
	ErrKindDepth                   // The value nests deeper than the configured limit.
	ErrKindDecoding                // A malformed pool was given for decoding.
)

var errKindNames = [...]string{
	ErrKindOther:    "other error",
	ErrKindEncoding: "encoding error",
	ErrKindCycle:    "cycle error",
	ErrKindDepth:    "depth error",
	ErrKindDecoding: "decoding error",
}

func (k ErrKind) String() string {
	if int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return "unknown error kind"
}

// Path is a list of keys leading from the root of a value tree to one of its descendants. Each key
// is either a string (indicating an object key) or an int (indicating an array index.)
type Path struct {
	keys []interface{}
}

// Empty returns true if the path doesn't contain any keys.
func (path Path) Empty() bool {
	return len(path.keys) == 0
}

func (path Path) equal(other Path) bool {
	if len(path.keys) != len(other.keys) {
		return false
	}
	for i, key := range path.keys {
		if key != other.keys[i] {
			return false
		}
	}
	return true
}

// Keys returns the keys in the path.
func (path Path) Keys() []interface{} {
	return path.keys
}

// String serializes a Path into the form of "a.b[0].c".
func (path Path) String() string {
	var b strings.Builder
	for _, key := range path.keys {
		switch key := key.(type) {
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(key)

		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// pathMarshaller implements jsoniter.ValEncoder to encode Path to JSON.
type pathMarshaller struct{}

var _ jsoniter.ValEncoder = pathMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (pathMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return len((*Path)(ptr).keys) == 0
}

// Encode implements jsoniter.ValEncoder.
func (pathMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	path := (*Path)(ptr)
	stream.WriteArrayStart()
	for i, key := range path.keys {
		if i > 0 {
			stream.WriteMore()
		}
		switch key := key.(type) {
		case string:
			stream.WriteString(key)
		case int:
			stream.WriteInt(key)
		default:
			stream.Error = fmt.Errorf(`unsupported type "%T" of key in path`, key)
			return
		}
	}
	stream.WriteArrayEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("crunch.Path", pathMarshaller{})
}

// MarshalJSON serializes path keys to JSON.
func (path Path) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(&path)
}

// An Error describes a failure to crunch a value tree or to decode a pool. Inspired by the design
// of upspin.io/errors [0].
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
type Error struct {
	// Message describes the error for debugging purposes
	Message string

	// Path points to the value in the input tree that triggered the error; It is empty for errors
	// that are not associated with a particular value.
	Path Path

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Each argument is one of Op, ErrKind, Path or
// error. Kind and Path are pulled from the underlying error when not given.
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
		case Path:
			e.Path = arg
		case error:
			e.Err = arg
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if prev, ok := e.Err.(*Error); ok {
		if e.Kind == ErrKindOther {
			e.Kind = prev.Kind
		}
		if e.Path.Empty() {
			e.Path = prev.Path
		}
	}

	return e
}

// Error implements Go's error interface. The message chains the errors from outermost to
// innermost, omitting paths and kinds repeated from the wrapping error.
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

	if !e.Path.Empty() && (outer == nil || !outer.Path.equal(e.Path)) {
		if b.Len() > start {
			b.WriteString(" at value in the path ")
		} else {
			b.WriteString("At value in the path ")
		}
		b.WriteString(e.Path.String())
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

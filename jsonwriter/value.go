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

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"maps"
	"reflect"
	"slices"

	"github.com/json-iterator/go"
)

// ValueMarshaler is implemented by types that write their JSON encoding directly into a Stream.
type ValueMarshaler interface {
	MarshalJSONTo(stream *Stream) error
}

// Marshal returns the JSON encoding of v. It's meant for implementing json.Marshaler on top of
// ValueMarshaler, so the error returned by v is passed through unwrapped.
func Marshal(v ValueMarshaler) ([]byte, error) {
	var buf bytes.Buffer
	stream := NewStream(&buf)

	if isNilPointer(v) {
		stream.WriteNil()
	} else if err := v.MarshalJSONTo(stream); err != nil {
		return nil, err
	}

	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteValue writes v by calling its MarshalJSONTo. A nil pointer is written as null. An error from
// v is recorded on the stream as a *json.MarshalerError.
func (stream *Stream) WriteValue(v ValueMarshaler) {
	switch {
	case stream.err != nil:
		return
	case isNilPointer(v):
		stream.WriteNil()
		return
	}

	if err := v.MarshalJSONTo(stream); err != nil {
		stream.setError(&json.MarshalerError{Type: reflect.TypeOf(v), Err: err})
	}
}

func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// WriteInterface writes v. The types produced by decoding JSON into an interface{} (plus int,
// int64, uint64 and ValueMarshaler) are written by the stream itself. Map keys are sorted. Any
// other type is encoded by jsoniter in its encoding/json compatible mode.
func (stream *Stream) WriteInterface(v interface{}) {
	if stream.err != nil {
		return
	}

	switch v := v.(type) {
	case nil:
		stream.WriteNil()
	case bool:
		stream.WriteBool(v)
	case string:
		stream.WriteString(v)
	case int:
		stream.WriteInt(v)
	case int64:
		stream.WriteInt64(v)
	case uint64:
		stream.WriteUint64(v)
	case float64:
		stream.WriteFloat64(v)
	case json.Number:
		stream.WriteNumber(v)
	case []interface{}:
		stream.writeArray(v)
	case map[string]interface{}:
		stream.writeObject(v)
	case ValueMarshaler:
		stream.WriteValue(v)
	default:
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
		if err != nil {
			stream.setError(err)
			return
		}
		stream.WriteRaw(b)
	}
}

func (stream *Stream) writeArray(elements []interface{}) {
	stream.WriteArrayStart()
	for i, element := range elements {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteInterface(element)
	}
	stream.WriteArrayEnd()
}

func (stream *Stream) writeObject(m map[string]interface{}) {
	stream.WriteObjectStart()
	for i, key := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		stream.WriteInterface(m[key])
	}
	stream.WriteObjectEnd()
}

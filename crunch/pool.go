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
	"fmt"
	"io"
	"strconv"

	"github.com/botobag/helios/jsonwriter"

	"github.com/json-iterator/go"
)

// Pool is the compacted form of a value tree. See package documentation for the layout.
type Pool []Slot

var (
	_ jsonwriter.ValueMarshaler = Pool(nil)
	_ json.Marshaler            = Pool(nil)
	_ json.Unmarshaler          = (*Pool)(nil)
)

// Root returns the slot of the root value (i.e., the last slot). ok is false for an empty pool.
func (pool Pool) Root() (root Slot, ok bool) {
	if len(pool) == 0 {
		return Slot{}, false
	}
	return pool[len(pool)-1], true
}

// PoolStats summarizes the content of a Pool.
type PoolStats struct {
	// Number of slots by kind
	Slots      int
	Primitives int
	Arrays     int
	Objects    int

	// Number of references from array and object slots to other slots
	References int

	// Number of references that point to a slot which is also referenced elsewhere; That is, the
	// number of values that didn't need a slot of their own.
	SharedReferences int
}

// Stats computes statistics of the pool.
func (pool Pool) Stats() PoolStats {
	stats := PoolStats{
		Slots: len(pool),
	}

	for _, s := range pool {
		switch s.kind {
		case SlotKindPrimitive:
			stats.Primitives++
		case SlotKindArray:
			stats.Arrays++
			stats.References += len(s.elements)
		case SlotKindObject:
			stats.Objects++
			stats.References += len(s.fields)
		}
	}

	// Every slot except the root is referenced at least once.
	if len(pool) > 1 {
		stats.SharedReferences = stats.References - (len(pool) - 1)
	}

	return stats
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler. A pool is written as a JSON array of slots.
// Primitive slots are written as their values, array slots as arrays of indices and object slots
// as objects mapping keys to indices.
func (pool Pool) MarshalJSONTo(stream *jsonwriter.Stream) error {
	if len(pool) == 0 {
		stream.WriteEmptyArray()
		return nil
	}

	stream.WriteArrayStart()
	for i, s := range pool {
		if i > 0 {
			stream.WriteMore()
		}
		if err := writeSlot(stream, s); err != nil {
			return err
		}
	}
	stream.WriteArrayEnd()

	return stream.Error()
}

func writeSlot(stream *jsonwriter.Stream, s Slot) error {
	switch s.kind {
	case SlotKindArray:
		if len(s.elements) == 0 {
			stream.WriteEmptyArray()
			return nil
		}
		stream.WriteArrayStart()
		for i, index := range s.elements {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteInt(index)
		}
		stream.WriteArrayEnd()

	case SlotKindObject:
		if len(s.fields) == 0 {
			stream.WriteEmptyObject()
			return nil
		}
		stream.WriteObjectStart()
		for i, field := range s.fields {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(field.Key)
			stream.WriteInt(field.Index)
		}
		stream.WriteObjectEnd()

	default:
		switch v := s.value.(type) {
		case nil:
			stream.WriteNil()
		case bool:
			stream.WriteBool(v)
		case int64:
			stream.WriteInt64(v)
		case uint64:
			stream.WriteUint64(v)
		case float64:
			stream.WriteFloat64(v)
		case json.Number:
			stream.WriteNumber(v)
		case string:
			stream.WriteString(v)
		default:
			return fmt.Errorf("unexpected primitive of type %T in slot", v)
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (pool Pool) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(pool)
}

// WriteTo writes the JSON encoding of the pool to w.
func (pool Pool) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	stream := jsonwriter.NewStream(cw)
	stream.WriteValue(pool)
	if err := stream.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// UnmarshalJSON implements json.Unmarshaler. It parses the format written by MarshalJSONTo.
// References are checked for being non-negative integers but not for pointing to valid slots;
// Decompact does that.
func (pool *Pool) UnmarshalJSON(data []byte) error {
	const op Op = "crunch.Pool.UnmarshalJSON"

	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	if next := iter.WhatIsNext(); next != jsoniter.ArrayValue {
		return NewError("pool must be a JSON array", op, ErrKindDecoding)
	}

	result := Pool{}
	for i := 0; iter.ReadArray(); i++ {
		s, err := readSlot(iter)
		if err != nil {
			return NewError(fmt.Sprintf("invalid slot %d", i), op, ErrKindDecoding, err)
		}
		result = append(result, s)
	}

	if iter.Error != nil && iter.Error != io.EOF {
		return NewError("malformed pool", op, ErrKindDecoding, iter.Error)
	}

	// Only whitespace may follow the pool. WhatIsNext reports io.EOF once the input is drained.
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return NewError("unexpected data after pool", op, ErrKindDecoding)
	}

	*pool = result
	return nil
}

func readSlot(iter *jsoniter.Iterator) (Slot, error) {
	switch iter.WhatIsNext() {
	case jsoniter.ArrayValue:
		elements := []int{}
		for iter.ReadArray() {
			index, err := readIndex(iter)
			if err != nil {
				return Slot{}, err
			}
			elements = append(elements, index)
		}
		if iter.Error != nil {
			return Slot{}, iter.Error
		}
		return ArraySlot(elements...), nil

	case jsoniter.ObjectValue:
		var (
			fields = []ObjectField{}
			seen   = map[string]bool{}
			err    error
		)
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
			if seen[key] {
				err = fmt.Errorf("duplicated key %q", key)
				return false
			}
			seen[key] = true

			var index int
			index, err = readIndex(iter)
			if err != nil {
				return false
			}
			fields = append(fields, ObjectField{
				Key:   key,
				Index: index,
			})
			return true
		})
		if err != nil {
			return Slot{}, err
		} else if iter.Error != nil {
			return Slot{}, iter.Error
		}
		return ObjectSlot(fields...), nil

	case jsoniter.NumberValue:
		p, _, err := normalizeNumber(iter.ReadNumber())
		if err != nil {
			return Slot{}, err
		}
		return Slot{kind: SlotKindPrimitive, value: p}, iter.Error

	case jsoniter.StringValue:
		return Slot{kind: SlotKindPrimitive, value: iter.ReadString()}, iter.Error

	case jsoniter.BoolValue:
		return Slot{kind: SlotKindPrimitive, value: iter.ReadBool()}, iter.Error

	case jsoniter.NilValue:
		iter.ReadNil()
		return Slot{kind: SlotKindPrimitive}, iter.Error
	}

	if iter.Error != nil {
		return Slot{}, iter.Error
	}
	return Slot{}, fmt.Errorf("unexpected token")
}

// readIndex reads a slot reference.
func readIndex(iter *jsoniter.Iterator) (int, error) {
	if iter.WhatIsNext() != jsoniter.NumberValue {
		return 0, fmt.Errorf("slot reference must be a number")
	}
	n := iter.ReadNumber()
	if iter.Error != nil {
		return 0, iter.Error
	}
	index, err := strconv.Atoi(string(n))
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid slot reference %s", n)
	}
	return index, nil
}

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
	"fmt"
)

// SlotKind tells what a Slot holds.
type SlotKind uint8

// Enumeration of SlotKind
const (
	SlotKindPrimitive SlotKind = iota // null, boolean, number or string
	SlotKindArray                     // list of element indices
	SlotKindObject                    // key-sorted list of (key, index) pairs
)

func (k SlotKind) String() string {
	switch k {
	case SlotKindPrimitive:
		return "primitive"
	case SlotKindArray:
		return "array"
	case SlotKindObject:
		return "object"
	}
	return "unknown slot kind"
}

// ObjectField associates an object key with the pool index of its value.
type ObjectField struct {
	Key   string
	Index int
}

// Slot is one entry in a Pool.
type Slot struct {
	kind SlotKind

	// For SlotKindPrimitive; One of nil, bool, int64, uint64, float64, string or json.Number.
	value interface{}

	// For SlotKindArray
	elements []int

	// For SlotKindObject; Sorted by Key.
	fields []ObjectField
}

// PrimitiveSlot creates a slot for a primitive value. The value is normalized in the same way as
// Crunch does. It panics if value is not a primitive.
func PrimitiveSlot(value interface{}) Slot {
	p, ok, err := normalizePrimitive(value)
	if err != nil {
		panic(err)
	} else if !ok {
		panic(fmt.Sprintf("crunch: %T is not a primitive", value))
	}
	return Slot{
		kind:  SlotKindPrimitive,
		value: p,
	}
}

// ArraySlot creates a slot for an array whose elements are stored at the given indices.
func ArraySlot(elements ...int) Slot {
	if elements == nil {
		elements = []int{}
	}
	return Slot{
		kind:     SlotKindArray,
		elements: elements,
	}
}

// ObjectSlot creates a slot for an object. Fields are sorted by key; Duplicated keys are not
// checked.
func ObjectSlot(fields ...ObjectField) Slot {
	sorted := make([]ObjectField, len(fields))
	copy(sorted, fields)
	sortFields(sorted)
	return Slot{
		kind:   SlotKindObject,
		fields: sorted,
	}
}

// Kind returns the kind of value held by the slot.
func (s Slot) Kind() SlotKind {
	return s.kind
}

// IsPrimitive returns true if the slot holds a primitive value.
func (s Slot) IsPrimitive() bool {
	return s.kind == SlotKindPrimitive
}

// IsArray returns true if the slot holds an array.
func (s Slot) IsArray() bool {
	return s.kind == SlotKindArray
}

// IsObject returns true if the slot holds an object.
func (s Slot) IsObject() bool {
	return s.kind == SlotKindObject
}

// Value returns the primitive value held by the slot. It returns nil for composite slots.
func (s Slot) Value() interface{} {
	return s.value
}

// Elements returns the element indices of an array slot.
func (s Slot) Elements() []int {
	return s.elements
}

// Fields returns the key-sorted fields of an object slot.
func (s Slot) Fields() []ObjectField {
	return s.fields
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	switch s.kind {
	case SlotKindArray:
		return fmt.Sprint(s.elements)
	case SlotKindObject:
		return fmt.Sprint(s.fields)
	}
	return fmt.Sprintf("%#v", s.value)
}

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

// Decompact rebuilds the value tree from a pool produced by Crunch. Arrays are returned as
// []interface{} and objects as map[string]interface{}. Primitives are returned in their normalized
// form (see Slot).
//
// Every reference in the pool must point to a slot that comes before the referencing one. Shared
// slots are rebuilt for each reference so the returned tree never aliases. MaxDepth (DefaultMaxDepth
// if not given) and MaxNodes bound the size of the result. Exceeding either fails with an Error of
// ErrKindDecoding before the whole tree is built.
func Decompact(pool Pool, opts ...Option) (interface{}, error) {
	const op Op = "crunch.Decompact"

	if len(pool) == 0 {
		return nil, NewError("empty pool", op, ErrKindDecoding)
	}

	d := decoder{
		pool:   pool,
		config: newConfig(opts),
	}
	value, err := d.decode(len(pool)-1, 0)
	if err != nil {
		return nil, NewError("", op, err)
	}
	return value, nil
}

type decoder struct {
	pool   Pool
	config config

	// Number of values rebuilt so far
	nodes int
}

// resolve checks that ref made by the slot at index from is valid.
func (d *decoder) resolve(from int, ref int) error {
	if ref < 0 || ref >= from {
		return NewError(fmt.Sprintf("slot %d has invalid reference %d", from, ref), ErrKindDecoding)
	}
	return nil
}

// visit counts a value about to be rebuilt at the given depth against the limits.
func (d *decoder) visit(s Slot, depth int) error {
	d.nodes++
	if maxNodes := d.config.maxNodes; maxNodes > 0 && d.nodes > maxNodes {
		return NewError(fmt.Sprintf("pool expands to more than %d values", maxNodes), ErrKindDecoding)
	}
	if maxDepth := d.config.maxDepth; maxDepth > 0 && depth >= maxDepth && !s.IsPrimitive() {
		return NewError(fmt.Sprintf("exceeded maximum depth %d", maxDepth), ErrKindDecoding)
	}
	return nil
}

func (d *decoder) decode(index int, depth int) (interface{}, error) {
	s := d.pool[index]
	if err := d.visit(s, depth); err != nil {
		return nil, err
	}

	switch s.kind {
	case SlotKindArray:
		array := make([]interface{}, len(s.elements))
		for i, ref := range s.elements {
			if err := d.resolve(index, ref); err != nil {
				return nil, prependPath(err, i)
			}
			value, err := d.decode(ref, depth+1)
			if err != nil {
				return nil, prependPath(err, i)
			}
			array[i] = value
		}
		return array, nil

	case SlotKindObject:
		object := make(map[string]interface{}, len(s.fields))
		for _, field := range s.fields {
			if err := d.resolve(index, field.Index); err != nil {
				return nil, prependPath(err, field.Key)
			}
			value, err := d.decode(field.Index, depth+1)
			if err != nil {
				return nil, prependPath(err, field.Key)
			}
			object[field.Key] = value
		}
		return object, nil
	}

	return s.value, nil
}

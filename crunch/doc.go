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

// Package crunch compacts JSON-like value trees for transmission. Repeated substructures are
// stored once in a Pool and referenced by their position.
//
// Pool Layout
//
// A Pool is an ordered list of Slot's. A slot is either a primitive value (null, boolean, number
// or string), an array slot holding the pool indices of its elements, or an object slot holding a
// key-sorted mapping from key to pool index. Children always precede their parents, so the root of
// a crunched composite is the last slot. A bare primitive crunches into a single-slot pool.
//
// For example,
//
//	[[1, 2], [1, 2]]
//
// crunches into
//
//	[1, 2, [0, 1], [2, 2]]
//
// Slots are tagged with their SlotKind. A string that starts with "[" or "{" is never confused
// with an array or an object. Two slots that are structurally equal always share the same index.
package crunch

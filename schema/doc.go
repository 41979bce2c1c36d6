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

// Package schema declares the types of a query schema through an explicit builder API and produces
// a JSON-compatible description of them.
//
// Object and input object types are built by adding fields one at a time, in the order they should
// appear:
//
//	person := schema.NewObject("Person").
//		Field("first_name", schema.FieldConfig{Type: schema.NonNullOf(schema.String)}).
//		Field("age", schema.FieldConfig{Type: schema.Int})
//
// Field names are converted to camelCase ("first_name" becomes "firstName") unless AutoCamelCase
// is turned off. Fields can also be declared ahead of time through a Session and mounted as a
// group; the sequence numbers handed out by the session decide their order.
//
// Describe turns a Schema into a tree of maps, slices and strings that can be given to
// crunch.Crunch.
package schema

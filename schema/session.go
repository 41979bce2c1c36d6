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
	"sync/atomic"
)

// Session hands out sequence numbers to fields declared ahead of their types. Fields mounted to a
// type are ordered by these numbers, which makes the order in which they were declared the order
// in which they appear in the type regardless of how they were collected. A Session is safe for
// concurrent use.
type Session struct {
	counter uint64
}

// NewSession creates a Session whose first sequence number is 1.
func NewSession() *Session {
	return &Session{}
}

// Next returns the next sequence number.
func (s *Session) Next() uint64 {
	return atomic.AddUint64(&s.counter, 1)
}

// Field declares a field to be mounted to an object with Object.Mount.
func (s *Session) Field(config FieldConfig) *Field {
	return newField(config, s.Next())
}

// InputField declares a field to be mounted to an input object with InputObject.Mount.
func (s *Session) InputField(config InputFieldConfig) *InputField {
	return newInputField(config, s.Next())
}

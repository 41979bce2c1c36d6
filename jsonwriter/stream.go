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
	"encoding/json"
	"io"
	"unicode/utf8"
)

// Tokens are accumulated in memory and handed to the underlying writer once this many bytes are
// pending.
const flushThreshold = 4096

// Stream writes JSON tokens to an io.Writer. It doesn't validate the structure of the output; The
// caller is responsible for balancing brackets and placing separators.
//
// The first error (from the writer or from an unsupported value) is sticky: subsequent writes are
// discarded and the error is returned from Flush and Error.
type Stream struct {
	w   io.Writer
	buf []byte

	// Buffer for formatting numbers
	scratch [64]byte

	err error
}

// NewStream creates a Stream that writes to w. Call Flush when done.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		w:   w,
		buf: make([]byte, 0, flushThreshold+256),
	}
}

// Error returns the first error occurred on the stream.
func (stream *Stream) Error() error {
	return stream.err
}

func (stream *Stream) setError(err error) {
	if stream.err == nil {
		stream.err = err
	}
}

// Flush hands pending output to the underlying writer.
func (stream *Stream) Flush() error {
	if stream.err == nil && len(stream.buf) > 0 {
		_, err := stream.w.Write(stream.buf)
		stream.setError(err)
	}
	stream.buf = stream.buf[:0]
	return stream.err
}

// commit is called after appending to buf.
func (stream *Stream) commit() {
	if stream.err != nil {
		stream.buf = stream.buf[:0]
	} else if len(stream.buf) >= flushThreshold {
		stream.Flush()
	}
}

func (stream *Stream) write(b []byte) {
	stream.buf = append(stream.buf, b...)
	stream.commit()
}

func (stream *Stream) writeByte(c byte) {
	stream.buf = append(stream.buf, c)
	stream.commit()
}

// WriteRaw writes b as is. b is assumed to be valid JSON.
func (stream *Stream) WriteRaw(b []byte) {
	stream.write(b)
}

// WriteMore writes the separator between array elements or object fields.
func (stream *Stream) WriteMore() { stream.writeByte(',') }

// WriteArrayStart writes "[".
func (stream *Stream) WriteArrayStart() { stream.writeByte('[') }

// WriteArrayEnd writes "]".
func (stream *Stream) WriteArrayEnd() { stream.writeByte(']') }

// WriteEmptyArray writes "[]".
func (stream *Stream) WriteEmptyArray() {
	stream.WriteArrayStart()
	stream.WriteArrayEnd()
}

// WriteObjectStart writes "{".
func (stream *Stream) WriteObjectStart() { stream.writeByte('{') }

// WriteObjectEnd writes "}".
func (stream *Stream) WriteObjectEnd() { stream.writeByte('}') }

// WriteEmptyObject writes "{}".
func (stream *Stream) WriteEmptyObject() {
	stream.WriteObjectStart()
	stream.WriteObjectEnd()
}

// WriteObjectField writes key followed by a colon.
func (stream *Stream) WriteObjectField(key string) {
	stream.WriteString(key)
	stream.writeByte(':')
}

var (
	literalNull  = []byte("null")
	literalTrue  = []byte("true")
	literalFalse = []byte("false")
)

// WriteNil writes null.
func (stream *Stream) WriteNil() {
	stream.write(literalNull)
}

// WriteBool writes true or false.
func (stream *Stream) WriteBool(b bool) {
	if b {
		stream.write(literalTrue)
	} else {
		stream.write(literalFalse)
	}
}

// WriteNumber writes the literal of n verbatim. An empty Number is written as 0.
func (stream *Stream) WriteNumber(n json.Number) {
	if n == "" {
		n = "0"
	}
	stream.buf = append(stream.buf, n...)
	stream.commit()
}

const hexDigits = "0123456789abcdef"

// shortEscapes maps the control characters that have a two-character escape sequence.
var shortEscapes = [utf8.RuneSelf]byte{
	'"':  '"',
	'\\': '\\',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

// WriteString writes s as a JSON string. Invalid UTF-8 sequences are replaced with U+FFFD. U+2028
// and U+2029 are escaped so the output is also valid JavaScript.
func (stream *Stream) WriteString(s string) {
	buf := append(stream.buf, '"')

	// s[done:i] is the pending run of bytes that need no escaping.
	done := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' && c < utf8.RuneSelf {
			i++
			continue
		}

		if c < utf8.RuneSelf {
			buf = append(buf, s[done:i]...)
			if e := shortEscapes[c]; e != 0 {
				buf = append(buf, '\\', e)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			}
			i++
			done = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf = append(buf, s[done:i]...)
			buf = append(buf, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			buf = append(buf, s[done:i]...)
			buf = append(buf, '\\', 'u', '2', '0', '2', hexDigits[r&0xf])
		default:
			i += size
			continue
		}
		i += size
		done = i
	}

	buf = append(buf, s[done:]...)
	stream.buf = append(buf, '"')
	stream.commit()
}

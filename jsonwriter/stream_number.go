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
	"math"
	"reflect"
	"strconv"
)

// WriteInt writes an int.
func (stream *Stream) WriteInt(i int) {
	stream.WriteInt64(int64(i))
}

// WriteInt64 writes an int64 in decimal.
func (stream *Stream) WriteInt64(i int64) {
	stream.write(strconv.AppendInt(stream.scratch[:0], i, 10))
}

// WriteUint64 writes an uint64 in decimal.
func (stream *Stream) WriteUint64(i uint64) {
	stream.write(strconv.AppendUint(stream.scratch[:0], i, 10))
}

// WriteFloat64 writes a float64 in the shortest form that parses back to the same value. The
// output always reads as a float: integral values get a ".0" suffix (e.g., 1.0 is written as "1.0"
// instead of "1") so readers that distinguish integers from floats by their literals see a float.
//
// NaN and infinities have no JSON representation and put the stream into error state.
func (stream *Stream) WriteFloat64(f float64) {
	if stream.err != nil {
		return
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		stream.err = &json.UnsupportedValueError{
			Value: reflect.ValueOf(f),
			Str:   strconv.FormatFloat(f, 'g', -1, 64),
		}
		return
	}

	stream.write(appendFloat64(stream.scratch[:0], f))
}

// appendFloat64 uses exponent notation for very small and very large magnitudes only, like
// encoding/json.
func appendFloat64(b []byte, f float64) []byte {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		b = strconv.AppendFloat(b, f, 'e', -1, 64)
		return trimExponent(b)
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	for _, c := range b[start:] {
		if c == '.' {
			return b
		}
	}
	return append(b, '.', '0')
}

// trimExponent drops the leading zero of a two-digit negative exponent ("e-07" becomes "e-7").
func trimExponent(b []byte) []byte {
	n := len(b)
	if n < 4 || b[n-4] != 'e' || b[n-3] != '-' || b[n-2] != '0' {
		return b
	}
	b[n-2] = b[n-1]
	return b[:n-1]
}

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

package jsonwriter_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/botobag/helios/jsonwriter"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// write runs f on a stream over a string buffer and returns the output.
func write(f func(stream *jsonwriter.Stream)) string {
	var buf strings.Builder
	stream := jsonwriter.NewStream(&buf)
	f(stream)
	Expect(stream.Flush()).Should(Succeed())
	return buf.String()
}

func writeInterface(v interface{}) string {
	return write(func(stream *jsonwriter.Stream) {
		stream.WriteInterface(v)
	})
}

// expectSameAsEncodingJSON checks that v encodes to the same JSON value as encoding/json produces.
func expectSameAsEncodingJSON(v interface{}) {
	expected, err := json.Marshal(v)
	Expect(err).ShouldNot(HaveOccurred())
	Expect(writeInterface(v)).Should(MatchJSON(expected), "value = %#v", v)
}

type Color int

const (
	Red Color = iota
	Green
)

func (c Color) MarshalJSONTo(stream *jsonwriter.Stream) error {
	switch c {
	case Red:
		stream.WriteString("red")
	case Green:
		stream.WriteString("green")
	default:
		return fmt.Errorf("invalid color %d", int(c))
	}
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(c)
}

type neverCalled struct{}

func (*neverCalled) MarshalJSONTo(stream *jsonwriter.Stream) error {
	panic("MarshalJSONTo called on nil pointer")
}

type brokenWriter struct {
	writes int
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("broken pipe")
}

var _ = Describe("Stream", func() {
	Describe("WriteString", func() {
		It("escapes quotes, backslashes and control characters", func() {
			for in, out := range map[string]string{
				"":       `""`,
				"plain":  `"plain"`,
				`a"b`:    `"a\"b"`,
				`a\b`:    `"a\\b"`,
				"\x00":   `"\u0000"`,
				"\x07":   `"\u0007"`,
				"\b\f":   `"\b\f"`,
				"\t\n\r": `"\t\n\r"`,
				"\x1f":   `"\u001f"`,
				"'":      `"'"`,
			} {
				Expect(write(func(stream *jsonwriter.Stream) {
					stream.WriteString(in)
				})).Should(Equal(out), "in = %q", in)
			}
		})

		It("keeps HTML characters and non-ASCII text", func() {
			Expect(writeInterface("<a href='x'>&</a> ünïcødé 漢字")).Should(
				Equal(`"<a href='x'>&</a> ünïcødé 漢字"`))
		})

		It("escapes line and paragraph separators", func() {
			Expect(writeInterface("a\u2028b\u2029c")).Should(Equal(`"a\u2028b\u2029c"`))
		})

		It("replaces invalid UTF-8", func() {
			Expect(writeInterface("ok\xff\xfe!")).Should(Equal(`"ok\ufffd\ufffd!"`))

			var runes []rune
			for r := rune(0); r < 0x10ffff; r += 101 {
				runes = append(runes, r)
			}
			expectSameAsEncodingJSON(string(runes) + "\xc3\x28 tail")
		})

		It("writes text that looks like JSON as a string", func() {
			Expect(writeInterface(`[0,{"a":1}]`)).Should(Equal(`"[0,{\"a\":1}]"`))
		})
	})

	Describe("numbers", func() {
		It("writes integers", func() {
			Expect(write(func(stream *jsonwriter.Stream) {
				stream.WriteInt(0)
				stream.WriteMore()
				stream.WriteInt(-42)
				stream.WriteMore()
				stream.WriteInt64(math.MinInt64)
				stream.WriteMore()
				stream.WriteUint64(math.MaxUint64)
			})).Should(Equal("0,-42,-9223372036854775808,18446744073709551615"))
		})

		It("writes floats in the shortest form", func() {
			for _, f := range []float64{0.1, 3.14, -0.5, 1e-9, 1e21, 123456.789, math.MaxFloat64, math.SmallestNonzeroFloat64} {
				expectSameAsEncodingJSON(f)
			}
			Expect(writeInterface(1e-9)).Should(Equal("1e-9"))
			Expect(writeInterface(2.5e-7)).Should(Equal("2.5e-7"))
			Expect(writeInterface(0.000001)).Should(Equal("0.000001"))
		})

		It("keeps integral floats distinguishable from integers", func() {
			for value, expected := range map[float64]string{
				1:     "1.0",
				-3:    "-3.0",
				0:     "0.0",
				1e20:  "100000000000000000000.0",
				1e21:  "1e+21",
				1e-7:  "1e-7",
				12.25: "12.25",
			} {
				Expect(writeInterface(value)).Should(Equal(expected), "value = %v", value)
			}
		})

		It("writes json.Number verbatim", func() {
			Expect(writeInterface(json.Number("123456789012345678901234567890"))).Should(
				Equal("123456789012345678901234567890"))
			Expect(writeInterface(json.Number("1.50"))).Should(Equal("1.50"))
			Expect(writeInterface(json.Number(""))).Should(Equal("0"))
		})

		It("fails on NaN and infinities", func() {
			for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				stream := jsonwriter.NewStream(&strings.Builder{})
				stream.WriteFloat64(f)
				var unsupported *json.UnsupportedValueError
				Expect(errors.As(stream.Flush(), &unsupported)).Should(BeTrue(), "value = %v", f)
			}
		})
	})

	Describe("WriteInterface", func() {
		It("writes literals", func() {
			Expect(writeInterface(nil)).Should(Equal("null"))
			Expect(writeInterface(true)).Should(Equal("true"))
			Expect(writeInterface(false)).Should(Equal("false"))
		})

		It("writes arrays", func() {
			Expect(writeInterface([]interface{}{})).Should(Equal("[]"))
			Expect(writeInterface([]interface{}{"a", 1, nil, []interface{}{true, 2.5}})).Should(
				Equal(`["a",1,null,[true,2.5]]`))
		})

		It("writes objects with sorted keys", func() {
			Expect(writeInterface(map[string]interface{}{})).Should(Equal("{}"))
			Expect(writeInterface(map[string]interface{}{
				"K": "Kelvin",
				"ß": "long s",
				"A": map[string]interface{}{"z": 1, "a": 2},
			})).Should(Equal(`{"A":{"a":2,"z":1},"K":"Kelvin","ß":"long s"}`))
		})

		It("hands other types to jsoniter", func() {
			type Point struct {
				X     int     `json:"x"`
				Y     float64 `json:"y"`
				Label string  `json:"label,omitempty"`
			}
			Expect(writeInterface([]interface{}{Point{X: 1, Y: 0.5}})).Should(MatchJSON(`[{"x":1,"y":0.5}]`))
			expectSameAsEncodingJSON(map[string][]int{"b": {2}, "a": {1}})
		})

		It("writes ValueMarshalers", func() {
			Expect(writeInterface([]interface{}{Red, Green, Red})).Should(Equal(`["red","green","red"]`))
			expectSameAsEncodingJSON([]Color{Green, Red})
		})

		It("writes nil pointers to ValueMarshaler as null", func() {
			var nilPointer *neverCalled
			Expect(writeInterface(nilPointer)).Should(Equal("null"))

			b, err := jsonwriter.Marshal(nilPointer)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(b)).Should(Equal("null"))
		})
	})

	Describe("errors", func() {
		It("records the first error from a ValueMarshaler", func() {
			stream := jsonwriter.NewStream(&strings.Builder{})
			stream.WriteInterface([]interface{}{Red, Color(7), Color(8)})

			var marshalerError *json.MarshalerError
			Expect(errors.As(stream.Flush(), &marshalerError)).Should(BeTrue())
			Expect(marshalerError.Err).Should(MatchError("invalid color 7"))
		})

		It("returns errors from Marshal unwrapped", func() {
			_, err := jsonwriter.Marshal(Color(3))
			Expect(err).Should(MatchError("invalid color 3"))
		})

		It("stops writing after the writer fails", func() {
			w := &brokenWriter{}
			stream := jsonwriter.NewStream(w)
			stream.WriteString(strings.Repeat("x", 5000))
			stream.WriteInt(1)
			stream.WriteString(strings.Repeat("y", 5000))
			Expect(stream.Error()).Should(MatchError("broken pipe"))
			Expect(stream.Flush()).Should(MatchError("broken pipe"))
			Expect(w.writes).Should(Equal(1))
		})
	})

	It("passes large output through to the writer", func() {
		values := make([]interface{}, 3000)
		for i := range values {
			values[i] = i * 7
		}

		expected, err := json.Marshal(values)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(writeInterface(values)).Should(Equal(string(expected)))
	})
})

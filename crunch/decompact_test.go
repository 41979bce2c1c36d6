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

package crunch_test

import (
	"github.com/botobag/helios/crunch"
	. "github.com/botobag/helios/internal/testutil"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// doublingPool returns a pool of levels arrays where each array holds the previous slot twice, so
// the tree it denotes has 2^(levels+1)-1 values.
func doublingPool(levels int) crunch.Pool {
	pool := crunch.Pool{crunch.PrimitiveSlot(1)}
	for i := 0; i < levels; i++ {
		pool = append(pool, crunch.ArraySlot(i, i))
	}
	return pool
}

func mustUnmarshalPool(data string) crunch.Pool {
	var pool crunch.Pool
	Expect(pool.UnmarshalJSON([]byte(data))).Should(Succeed())
	return pool
}

var _ = Describe("Decompact", func() {
	It("rebuilds the value tree", func() {
		value, err := crunch.Decompact(mustUnmarshalPool(`[1,2,[0,1],[2,2]]`))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cmp.Diff([]interface{}{
			[]interface{}{int64(1), int64(2)},
			[]interface{}{int64(1), int64(2)},
		}, value)).Should(BeEmpty())
	})

	It("rebuilds primitives and empty composites", func() {
		for _, tree := range []interface{}{
			nil,
			"",
			int64(42),
			0.25,
			[]interface{}{},
			map[string]interface{}{},
			map[string]interface{}{"": []interface{}{nil, map[string]interface{}{}}},
		} {
			expectRoundTrip(tree)
		}
	})

	It("returns a tree without aliases", func() {
		value, err := crunch.Decompact(mustCrunch([]interface{}{
			[]interface{}{"a"},
			[]interface{}{"a"},
		}))
		Expect(err).ShouldNot(HaveOccurred())

		array := value.([]interface{})
		array[0].([]interface{})[0] = "b"
		Expect(array[1]).Should(Equal([]interface{}{"a"}))
	})

	It("round-trips through the JSON form", func() {
		tree := map[string]interface{}{
			"name":  "helios",
			"tags":  []interface{}{"json", "json", "compact"},
			"ratio": 0.5,
			"nested": map[string]interface{}{
				"tags": []interface{}{"json", "json", "compact"},
				"ok":   true,
			},
		}

		b, err := mustCrunch(tree).MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())

		value, err := crunch.Decompact(mustUnmarshalPool(string(b)))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cmp.Diff(tree, value)).Should(BeEmpty())
	})

	Describe("errors", func() {
		It("rejects an empty pool", func() {
			_, err := crunch.Decompact(crunch.Pool{})
			Expect(err).Should(MatchCrunchError(
				OpIs("crunch.Decompact"),
				KindIs(crunch.ErrKindDecoding),
				MessageEqual("empty pool"),
			))
		})

		It("rejects a slot that references itself", func() {
			_, err := crunch.Decompact(mustUnmarshalPool(`[[0]]`))
			Expect(err).Should(MatchCrunchError(
				KindIs(crunch.ErrKindDecoding),
				PathEqual(0),
			))
		})

		It("rejects references to later slots", func() {
			_, err := crunch.Decompact(mustUnmarshalPool(`[{"a":1},[0]]`))
			Expect(err).Should(HaveOccurred())

			_, err = crunch.Decompact(mustUnmarshalPool(`[1,{"a":1}]`))
			Expect(err).Should(MatchCrunchError(
				KindIs(crunch.ErrKindDecoding),
				PathEqual("a"),
			))
		})

		It("limits the number of rebuilt values", func() {
			_, err := crunch.Decompact(doublingPool(10), crunch.MaxNodes(2047))
			Expect(err).ShouldNot(HaveOccurred())

			_, err = crunch.Decompact(doublingPool(10), crunch.MaxNodes(2046))
			Expect(err).Should(MatchCrunchError(
				OpIs("crunch.Decompact"),
				KindIs(crunch.ErrKindDecoding),
			))
			Expect(err.Error()).Should(ContainSubstring("pool expands to more than 2046 values"))
		})

		It("stops early on pools that expand exponentially", func() {
			pool := doublingPool(64)

			b, err := pool.MarshalJSON()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(len(b)).Should(BeNumerically("<", 1024))

			_, err = crunch.Decompact(mustUnmarshalPool(string(b)), crunch.MaxNodes(100000))
			Expect(crunch.IsKind(err, crunch.ErrKindDecoding)).Should(BeTrue())
		})

		It("limits depth", func() {
			pool := mustUnmarshalPool(`[1,[0],[1],[2]]`)

			_, err := crunch.Decompact(pool, crunch.MaxDepth(3))
			Expect(err).ShouldNot(HaveOccurred())

			_, err = crunch.Decompact(pool, crunch.MaxDepth(2))
			Expect(err).Should(MatchCrunchError(
				KindIs(crunch.ErrKindDecoding),
				PathEqual(0, 0),
			))
			Expect(err.Error()).Should(ContainSubstring("exceeded maximum depth 2"))
		})

		It("reports where the invalid reference is", func() {
			_, err := crunch.Decompact(mustUnmarshalPool(`[1,[0,7],[0,1]]`))
			Expect(err).Should(MatchCrunchError(
				OpIs("crunch.Decompact"),
				KindIs(crunch.ErrKindDecoding),
				PathEqual(1, 1),
			))
			Expect(err.Error()).Should(Equal(
				"crunch.Decompact at value in the path [1][1]: decoding error: slot 1 has invalid reference 7"))
		})
	})
})

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

package util_test

import (
	"github.com/botobag/helios/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SuggestionList", func() {
	It("suggests options within the edit distance threshold", func() {
		Expect(util.SuggestionList("jsn", []string{"json", "yaml"})).Should(Equal([]string{"json"}))
		Expect(util.SuggestionList("Humna", []string{"Droid", "Human", "String"})).Should(Equal([]string{"Human"}))
		Expect(util.SuggestionList("", []string{"abc", "a"})).Should(Equal([]string{"a"}))
	})

	It("returns nothing without close options", func() {
		Expect(util.SuggestionList("Wookiee", []string{"Human", "Droid"})).Should(BeEmpty())
		Expect(util.SuggestionList("anything", nil)).Should(BeEmpty())
	})

	It("orders suggestions by distance and then by name", func() {
		Expect(util.SuggestionList("abc", []string{"abcd", "ab", "xyz", "abc"})).Should(
			Equal([]string{"abc", "ab", "abcd"}))
		Expect(util.SuggestionList("NAME", []string{"name", "game"})).Should(Equal([]string{"game", "name"}))
	})

	It("counts a change of case or a swap of adjacent characters as one edit", func() {
		Expect(util.SuggestionList("ab", []string{"ba", "xyz"})).Should(Equal([]string{"ba"}))
		Expect(util.SuggestionList("xy", []string{"XY"})).Should(Equal([]string{"XY"}))
	})
})

var _ = Describe("DidYouMean", func() {
	It("formats suggestions", func() {
		Expect(util.DidYouMean(nil)).Should(BeEmpty())
		Expect(util.DidYouMean([]string{"json"})).Should(Equal(`Did you mean "json"?`))
		Expect(util.DidYouMean([]string{"a", "b"})).Should(Equal(`Did you mean "a" or "b"?`))
		Expect(util.DidYouMean([]string{"a", "b", "c", "d", "e", "f", "g"})).Should(
			Equal(`Did you mean "a", "b", "c", "d", or "e"?`))
	})
})

var _ = Describe("OrList", func() {
	It("joins items", func() {
		Expect(util.OrList(nil, 0, false)).Should(BeEmpty())
		Expect(util.OrList([]string{"x"}, 0, false)).Should(Equal("x"))
		Expect(util.OrList([]string{"x", "y"}, 0, false)).Should(Equal("x or y"))
		Expect(util.OrList([]string{"x", "y", "z"}, 0, false)).Should(Equal("x, y, or z"))
	})

	It("quotes items", func() {
		Expect(util.OrList([]string{"x", "y", "z"}, 0, true)).Should(Equal(`"x", "y", or "z"`))
	})

	It("lists at most limit items", func() {
		Expect(util.OrList([]string{"1", "2", "3", "4"}, 2, false)).Should(Equal("1 or 2"))
		Expect(util.OrList([]string{"1", "2", "3", "4"}, 4, false)).Should(Equal("1, 2, 3, or 4"))
	})
})

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

var _ = Describe("CamelCase", func() {
	It("converts string to camelCase", func() {
		testcases := map[string]string{
			"":             "",
			"a":            "a",
			"foo":          "foo",
			"A":            "A",
			"FOO":          "FOO",
			"camelCase":    "camelCase",
			"first_name":   "firstName",
			"Foo_Bar":      "FooBar",
			"snake_case":   "snakeCase",
			"snake_HTTP":   "snakeHttp",
			"foo_bar_":     "fooBar_",
			"_foo_bar":     "FooBar",
			"foo__bar":     "foo_Bar",
			"foo___bar":    "foo__Bar",
			"foo1_bar2":    "foo1Bar2",
			"is_2fa_ready": "is2faReady",
			"ünï_çödé":     "ünïÇödé",
		}

		for s, expected := range testcases {
			Expect(util.CamelCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})

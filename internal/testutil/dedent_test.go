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

package testutil_test

import (
	"github.com/botobag/helios/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dedent", func() {
	It("removes the indentation of the first line", func() {
		Expect(testutil.Dedent(`
			x: 1
			y:
			  - a
			  - b
		`)).Should(Equal("x: 1\ny:\n  - a\n  - b\n"))
	})

	It("keeps text without indentation", func() {
		Expect(testutil.Dedent("a\n  b")).Should(Equal("a\n  b"))
		Expect(testutil.Dedent("")).Should(BeEmpty())
		Expect(testutil.Dedent("\n\n  \t")).Should(BeEmpty())
	})

	It("dedents lines indented with spaces", func() {
		Expect(testutil.Dedent("\n    [1,\n     2]\n  ")).Should(Equal("[1,\n 2]\n"))
	})
})

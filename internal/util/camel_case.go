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

package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// capitalize writes s to b with its first character in upper case and the rest in lower case.
func capitalize(b *strings.Builder, s string) {
	r, size := utf8.DecodeRuneInString(s)
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(strings.ToLower(s[size:]))
}

// CamelCase converts a snake_case name into camelCase. The string is split at underscores; The
// first component is kept as is and each of the others is capitalized. An empty component (which
// comes from repeated, leading or trailing underscores) is turned into a single "_". For example:
//
//	"first_name"  => "firstName"
//	"snake_HTTP"  => "snakeHttp"
//	"foo__bar"    => "foo_Bar"
//	"_foo"        => "Foo"
func CamelCase(s string) string {
	if strings.IndexByte(s, '_') < 0 {
		return s
	}

	components := strings.Split(s, "_")

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(components[0])
	for _, component := range components[1:] {
		if len(component) == 0 {
			b.WriteByte('_')
		} else {
			capitalize(&b, component)
		}
	}

	return b.String()
}

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

package testutil

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/json-iterator/go"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// SerializeToJSONAs matches a value whose JSON encoding denotes the same JSON value as the encoding
// of expected. Both sides are decoded into generic values (maps, slices, float64 and so on) before
// comparison so Go types that encode identically are considered equal.
func SerializeToJSONAs(expected interface{}) types.GomegaMatcher {
	return &jsonValueMatcher{expected: expected}
}

type jsonValueMatcher struct {
	expected interface{}
	diff     string
}

func (m *jsonValueMatcher) Match(actual interface{}) (bool, error) {
	a, err := toJSONValue(actual)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs: actual: %s", err)
	}

	e, err := toJSONValue(m.expected)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs: expected: %s", err)
	}

	m.diff = cmp.Diff(e, a)
	return m.diff == "", nil
}

func toJSONValue(v interface{}) (interface{}, error) {
	data, err := jsonAPI.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %T into JSON: %s", v, err)
	}

	var value interface{}
	if err := jsonAPI.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("cannot decode %s: %s", data, err)
	}
	return value, nil
}

func (m *jsonValueMatcher) FailureMessage(actual interface{}) string {
	return fmt.Sprintf("%s\nto serialize to the same JSON value as\n%s\ndiff (-expected +actual):\n%s",
		format.Object(actual, 1), format.Object(m.expected, 1), m.diff)
}

func (m *jsonValueMatcher) NegatedFailureMessage(actual interface{}) string {
	return format.Message(actual, "not to serialize to the same JSON value as", m.expected)
}

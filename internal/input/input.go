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

// Package input decodes value trees from JSON or YAML documents.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/botobag/helios/internal/util"

	"github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Format of a document
type Format uint8

// Enumeration of Format
const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ParseFormat parses the name of a format ("json" or "yaml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	if hint := util.DidYouMean(util.SuggestionList(name, []string{"json", "yaml"})); len(hint) > 0 {
		return FormatJSON, fmt.Errorf(`unknown format "%s". %s`, name, hint)
	}
	return FormatJSON, fmt.Errorf(`unknown format "%s"`, name)
}

// FormatOfFile determines the format from extension of the file name. Files that don't end with
// ".yaml" or ".yml" are considered JSON.
func FormatOfFile(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// FormatOfMediaType determines the format from the value of a Content-Type header. An empty
// content type is considered JSON. It returns false for media types that are neither JSON nor YAML.
func FormatOfMediaType(contentType string) (Format, bool) {
	if len(contentType) == 0 {
		return FormatJSON, true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatJSON, false
	}

	switch mediaType {
	case "application/json", "text/json":
		return FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	}

	if strings.HasSuffix(mediaType, "+json") {
		return FormatJSON, true
	} else if strings.HasSuffix(mediaType, "+yaml") {
		return FormatYAML, true
	}

	return FormatJSON, false
}

// jsonAPI keeps numbers in json.Number to not lose precision.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

var errEmptyDocument = errors.New("empty document")

// Decode parses a document into a value tree. JSON numbers are decoded into json.Number. YAML
// timestamps are kept as strings.
func Decode(data []byte, format Format) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyDocument
	}

	var value interface{}

	switch format {
	case FormatJSON:
		if err := jsonAPI.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("invalid JSON document: %w", err)
		}

	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("invalid YAML document: %w", err)
		}
		if node.Kind == 0 {
			return nil, errEmptyDocument
		}
		timestampsAsStrings(&node)
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid YAML document: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}

	return value, nil
}

// timestampsAsStrings retags every scalar resolved as !!timestamp to !!str so that it decodes into
// its literal text instead of a time.Time.
func timestampsAsStrings(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!timestamp" {
		node.Tag = "!!str"
	}
	for _, child := range node.Content {
		timestampsAsStrings(child)
	}
}

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

package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/botobag/helios/internal/util"

	"github.com/mitchellh/mapstructure"
)

// InputObject is a structured collection of fields which may be supplied to a field argument.
type InputObject struct {
	name          string
	description   string
	autoCamelCase bool
	fields        []*InputField
	fieldIndex    map[string]int
	err           error
}

var _ NamedType = (*InputObject)(nil)

// NewInputObject starts defining an input object type.
func NewInputObject(name string) *InputObject {
	o := &InputObject{
		name:          name,
		autoCamelCase: true,
		fieldIndex:    map[string]int{},
	}
	if len(name) == 0 {
		o.err = NewError("Must provide name for InputObject.", Op("schema.NewInputObject"), ErrKindDefinition)
	}
	return o
}

// WithDescription sets the description of the input object.
func (o *InputObject) WithDescription(description string) *InputObject {
	o.description = description
	return o
}

// AutoCamelCase sets whether names of fields added afterwards are converted to camelCase.
func (o *InputObject) AutoCamelCase(enabled bool) *InputObject {
	o.autoCamelCase = enabled
	return o
}

// Field adds a field to the input object.
func (o *InputObject) Field(name string, config InputFieldConfig) *InputObject {
	o.addField(name, newInputField(config, 0))
	return o
}

// Mount adds fields declared through a Session in the order of their sequence numbers.
func (o *InputObject) Mount(fields map[string]*InputField) *InputObject {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := fields[names[i]], fields[names[j]]
		if a.seq != b.seq {
			return a.seq < b.seq
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		o.addField(name, fields[name])
	}
	return o
}

func (o *InputObject) addField(attname string, declared *InputField) {
	const op Op = "schema.InputObject.Field"

	if o.err != nil {
		return
	}

	if len(attname) == 0 {
		o.err = NewError(fmt.Sprintf("Must provide name for field in %s.", o.name), op, ErrKindDefinition)
		return
	}

	name := attname
	if o.autoCamelCase {
		name = util.CamelCase(attname)
	}

	if declared.config.Type == nil {
		o.err = NewError(fmt.Sprintf("%s.%s must have a type.", o.name, name), op, ErrKindDefinition)
		return
	}

	if _, exists := o.fieldIndex[name]; exists {
		o.err = NewError(fmt.Sprintf("%s.%s is defined more than once.", o.name, name), op, ErrKindDefinition)
		return
	}

	field := *declared
	field.name = name

	o.fieldIndex[name] = len(o.fields)
	if _, exists := o.fieldIndex[attname]; !exists {
		o.fieldIndex[attname] = len(o.fields)
	}
	o.fields = append(o.fields, &field)
}

// Err returns the first error occurred while defining the input object.
func (o *InputObject) Err() error {
	return o.err
}

// Kind implements Type.
func (o *InputObject) Kind() TypeKind {
	return TypeKindInputObject
}

// String implements Type.
func (o *InputObject) String() string {
	return o.name
}

// Name implements NamedType.
func (o *InputObject) Name() string {
	return o.name
}

// Description implements NamedType.
func (o *InputObject) Description() string {
	return o.description
}

// Fields returns the fields of the input object in the order they were added.
func (o *InputObject) Fields() []*InputField {
	return o.fields
}

// FieldByName returns the field with the given name or nil if there's no such field.
func (o *InputObject) FieldByName(name string) *InputField {
	if index, exists := o.fieldIndex[name]; exists {
		return o.fields[index]
	}
	return nil
}

// Container returns a copy of values keyed by field names with an entry for every field of the
// input object. Values may also be keyed by the names given to Field or Mount. Fields absent from
// values are set to their default values (nil when there's none). Keys that are not
// fields of the input object fail with ErrKindCoercion.
func (o *InputObject) Container(values map[string]interface{}) (map[string]interface{}, error) {
	const op Op = "schema.InputObject.Container"

	container := make(map[string]interface{}, len(o.fields))
	for key, value := range values {
		field := o.FieldByName(key)
		if field == nil {
			return nil, NewError(fmt.Sprintf(`Field "%s" is not defined by type %s.`, key, o.name), op, ErrKindCoercion)
		}
		container[field.name] = value
	}

	for _, field := range o.fields {
		if _, exists := container[field.name]; !exists {
			container[field.name] = field.DefaultValue()
		}
	}

	return container, nil
}

// matchFieldName matches an input field name against a Go struct field name (or its graphql tag)
// regardless of camelCase or snake_case.
func matchFieldName(mapKey string, fieldName string) bool {
	return strings.EqualFold(mapKey, fieldName) ||
		util.SnakeCase(mapKey) == util.SnakeCase(fieldName)
}

// Decode fills out (a pointer to struct or map) with the container of values. Struct fields are
// matched with input fields by their `graphql` tags or names, ignoring differences between
// camelCase and snake_case.
func (o *InputObject) Decode(values map[string]interface{}, out interface{}) error {
	const op Op = "schema.InputObject.Decode"

	container, err := o.Container(values)
	if err != nil {
		return NewError("", op, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:   "graphql",
		MatchName: matchFieldName,
		Result:    out,
	})
	if err != nil {
		return NewError(fmt.Sprintf("cannot decode %s", o.name), op, ErrKindCoercion, err)
	}

	if err := decoder.Decode(container); err != nil {
		return NewError(fmt.Sprintf("cannot decode %s", o.name), op, ErrKindCoercion, err)
	}

	return nil
}

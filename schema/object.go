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

	"github.com/botobag/helios/internal/util"
)

// Object is a type with a set of named fields.
type Object struct {
	name          string
	description   string
	autoCamelCase bool
	fields        []*Field

	// Map field name and attribute name to index in fields
	fieldIndex map[string]int

	// The first error occurred while building the object
	err error
}

var _ NamedType = (*Object)(nil)

// NewObject starts defining an object type. Fields are added with Field and Mount. Errors are
// reported by Err (and by NewSchema).
func NewObject(name string) *Object {
	o := &Object{
		name:          name,
		autoCamelCase: true,
		fieldIndex:    map[string]int{},
	}
	if len(name) == 0 {
		o.err = NewError("Must provide name for Object.", Op("schema.NewObject"), ErrKindDefinition)
	}
	return o
}

// WithDescription sets the description of the object.
func (o *Object) WithDescription(description string) *Object {
	o.description = description
	return o
}

// AutoCamelCase sets whether names of fields (and their arguments) added afterwards are converted
// to camelCase. It is enabled by default.
func (o *Object) AutoCamelCase(enabled bool) *Object {
	o.autoCamelCase = enabled
	return o
}

func (o *Object) fieldName(name string) string {
	if o.autoCamelCase {
		return util.CamelCase(name)
	}
	return name
}

// Field adds a field to the object.
func (o *Object) Field(name string, config FieldConfig) *Object {
	o.addField(name, newField(config, 0))
	return o
}

// Mount adds fields declared through a Session. They are added in the order of their sequence
// numbers. A Field can be mounted to more than one object.
func (o *Object) Mount(fields map[string]*Field) *Object {
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

func (o *Object) addField(attname string, declared *Field) {
	const op Op = "schema.Object.Field"

	if o.err != nil {
		return
	}

	if len(attname) == 0 {
		o.err = NewError(fmt.Sprintf("Must provide name for field in %s.", o.name), op, ErrKindDefinition)
		return
	}

	name := o.fieldName(attname)
	if declared.config.Type == nil {
		o.err = NewError(fmt.Sprintf("%s.%s must have a type.", o.name, name), op, ErrKindDefinition)
		return
	}

	if _, exists := o.fieldIndex[name]; exists {
		o.err = NewError(fmt.Sprintf("%s.%s is defined more than once.", o.name, name), op, ErrKindDefinition)
		return
	}

	args, err := o.buildArgs(name, declared.config.Args)
	if err != nil {
		o.err = NewError("", op, err)
		return
	}

	// Copy declared field so it can be mounted elsewhere under another name.
	field := *declared
	field.name = name
	field.attname = attname
	if len(field.config.Source) > 0 {
		field.attname = field.config.Source
	}
	field.args = args

	o.fieldIndex[name] = len(o.fields)
	if _, exists := o.fieldIndex[attname]; !exists {
		o.fieldIndex[attname] = len(o.fields)
	}
	o.fields = append(o.fields, &field)
}

func (o *Object) buildArgs(fieldName string, configs []ArgumentConfig) ([]Argument, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	args := make([]Argument, len(configs))
	seen := make(map[string]bool, len(configs))
	for i, config := range configs {
		if len(config.Name) == 0 {
			return nil, NewError(fmt.Sprintf("Must provide name for argument of %s.%s.", o.name, fieldName), ErrKindDefinition)
		}

		name := o.fieldName(config.Name)
		if seen[name] {
			return nil, NewError(fmt.Sprintf("Argument %s of %s.%s is defined more than once.", name, o.name, fieldName), ErrKindDefinition)
		}
		seen[name] = true

		if config.Type == nil {
			return nil, NewError(fmt.Sprintf("Argument %s of %s.%s must have a type.", name, o.name, fieldName), ErrKindDefinition)
		}

		args[i] = Argument{
			name:         name,
			description:  config.Description,
			ttype:        config.Type,
			defaultValue: config.DefaultValue,
		}
	}

	return args, nil
}

// Err returns the first error occurred while defining the object.
func (o *Object) Err() error {
	return o.err
}

// Kind implements Type.
func (o *Object) Kind() TypeKind {
	return TypeKindObject
}

// String implements Type.
func (o *Object) String() string {
	return o.name
}

// Name implements NamedType.
func (o *Object) Name() string {
	return o.name
}

// Description implements NamedType.
func (o *Object) Description() string {
	return o.description
}

// Fields returns the fields of the object in the order they were added.
func (o *Object) Fields() []*Field {
	return o.fields
}

// FieldByName returns the field with the given name. The name given to Field or Mount (before
// camelCase conversion) is also accepted. It returns nil if there's no such field.
func (o *Object) FieldByName(name string) *Field {
	if index, exists := o.fieldIndex[name]; exists {
		return o.fields[index]
	}
	return nil
}

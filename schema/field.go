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
	"context"
	"sort"
)

// FieldResolver resolves the value of a field from the value of its enclosing object.
type FieldResolver interface {
	// Source is the value resolved for the enclosing object. Args contains the argument values given
	// to the field.
	Resolve(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)

// Resolve calls f(ctx, source, args).
func (f FieldResolverFunc) Resolve(
	ctx context.Context,
	source interface{},
	args map[string]interface{}) (interface{}, error) {
	return f(ctx, source, args)
}

// FieldResolverFunc implements FieldResolver.
var _ FieldResolver = FieldResolverFunc(nil)

// An intentionally internal type for marking a "null" as default value
type nilDefaultValueType int

// NilDefaultValue sets the default value of an argument or an input field to "null". Leaving
// DefaultValue nil means there's no default value.
const NilDefaultValue nilDefaultValueType = 0

// ArgumentConfig provides definition for defining an argument in a field.
type ArgumentConfig struct {
	// Name of the argument; It is converted to camelCase if the enclosing object does so for field
	// names.
	Name string

	// Description of the argument
	Description string

	// Type of the value that can be given to the argument
	Type Type

	// DefaultValue specifies the value to be assigned to the argument when no value is provided.
	DefaultValue interface{}
}

// Argument is accepted in querying a field to further specify the return value.
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the value that can be given to the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if the argument has a default value.
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue returns the value assigned to the argument when no value is provided.
func (arg *Argument) DefaultValue() interface{} {
	if _, ok := arg.defaultValue.(nilDefaultValueType); ok {
		return nil
	}
	return arg.defaultValue
}

// FieldConfig provides definition of a field in an object.
type FieldConfig struct {
	// Description of the field
	Description string

	// Type of the value yielded by the field
	Type Type

	// Args in the order they are declared
	Args []ArgumentConfig

	// Resolver of the field; DefaultResolver is used when not given.
	Resolver FieldResolver

	// Source is the name of the attribute read by the default resolver; It defaults to the name
	// given to the field before camelCase conversion.
	Source string

	// DefaultValue is returned by the default resolver when the attribute is absent.
	DefaultValue interface{}

	// DeprecationReason is non-empty when the field is deprecated.
	DeprecationReason string
}

// Field is a field in an object.
type Field struct {
	config  FieldConfig
	name    string
	attname string
	args    []Argument
	seq     uint64
}

func newField(config FieldConfig, seq uint64) *Field {
	return &Field{
		config: config,
		seq:    seq,
	}
}

// NewField declares a field to be mounted to an object with Object.Mount. The field has no
// sequence number and is placed before fields that have one.
func NewField(config FieldConfig) *Field {
	return newField(config, 0)
}

// Name of the field; Empty for a field that hasn't been added to an object.
func (f *Field) Name() string {
	return f.name
}

// String implements fmt.Stringer.
func (f *Field) String() string {
	return f.name
}

// Description of the field
func (f *Field) Description() string {
	return f.config.Description
}

// Type of the value yielded by the field
func (f *Field) Type() Type {
	return f.config.Type
}

// Args returns the arguments of the field in declaration order.
func (f *Field) Args() []Argument {
	return f.args
}

// Resolver returns the resolver of the field.
func (f *Field) Resolver() FieldResolver {
	if f.config.Resolver != nil {
		return f.config.Resolver
	}
	return DefaultResolver(f.attname, f.config.DefaultValue)
}

// Resolve resolves the field value from source.
func (f *Field) Resolve(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	return f.Resolver().Resolve(ctx, source, args)
}

// IsDeprecated returns true if the field is deprecated.
func (f *Field) IsDeprecated() bool {
	return len(f.config.DeprecationReason) > 0
}

// DeprecationReason explains why the field is deprecated.
func (f *Field) DeprecationReason() string {
	return f.config.DeprecationReason
}

// Sequence returns the sequence number given by the Session that declared the field.
func (f *Field) Sequence() uint64 {
	return f.seq
}

// InputFieldConfig provides definition of a field in an input object.
type InputFieldConfig struct {
	// Description of the field
	Description string

	// Type of the value that can be given to the field
	Type Type

	// DefaultValue specifies the value to be assigned to the field when no value is provided.
	DefaultValue interface{}

	// DeprecationReason is non-empty when the field is deprecated.
	DeprecationReason string
}

// InputField is a field in an input object.
type InputField struct {
	config InputFieldConfig
	name   string
	seq    uint64
}

func newInputField(config InputFieldConfig, seq uint64) *InputField {
	return &InputField{
		config: config,
		seq:    seq,
	}
}

// NewInputField declares a field to be mounted to an input object with InputObject.Mount.
func NewInputField(config InputFieldConfig) *InputField {
	return newInputField(config, 0)
}

// Name of the field
func (f *InputField) Name() string {
	return f.name
}

// String implements fmt.Stringer.
func (f *InputField) String() string {
	return f.name
}

// Description of the field
func (f *InputField) Description() string {
	return f.config.Description
}

// Type of the value that can be given to the field
func (f *InputField) Type() Type {
	return f.config.Type
}

// HasDefaultValue returns true if the field has a default value.
func (f *InputField) HasDefaultValue() bool {
	return f.config.DefaultValue != nil
}

// DefaultValue returns the value assigned to the field when no value is provided.
func (f *InputField) DefaultValue() interface{} {
	if _, ok := f.config.DefaultValue.(nilDefaultValueType); ok {
		return nil
	}
	return f.config.DefaultValue
}

// IsDeprecated returns true if the field is deprecated.
func (f *InputField) IsDeprecated() bool {
	return len(f.config.DeprecationReason) > 0
}

// DeprecationReason explains why the field is deprecated.
func (f *InputField) DeprecationReason() string {
	return f.config.DeprecationReason
}

// Sequence returns the sequence number given by the Session that declared the field.
func (f *InputField) Sequence() uint64 {
	return f.seq
}

// SortFields sorts fields by their sequence numbers. Fields with the same number keep their
// relative order.
func SortFields(fields []*Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].seq < fields[j].seq
	})
}

// SortInputFields is like SortFields but for input fields.
func SortInputFields(fields []*InputField) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].seq < fields[j].seq
	})
}

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
	"strings"
	"sync"

	"github.com/botobag/helios/internal/util"
)

// Registry holds named types grouped in modules so they can be referred to by dotted paths such as
// "starwars.Human". It allows types to refer to types that are defined later (see Lazy). A
// Registry is safe for concurrent use.
type Registry struct {
	mutex   sync.RWMutex
	modules map[string]map[string]NamedType
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: map[string]map[string]NamedType{},
	}
}

// Register adds types to the module. Registering a type under a name that is already taken by
// another type in the module fails.
func (r *Registry) Register(module string, types ...NamedType) error {
	const op Op = "schema.Registry.Register"

	if len(module) == 0 {
		return NewError("Must provide module name.", op, ErrKindDefinition)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	defined := r.modules[module]
	if defined == nil {
		defined = map[string]NamedType{}
		r.modules[module] = defined
	}

	for _, t := range types {
		if lazy, isLazy := t.(*LazyType); isLazy {
			return NewError(fmt.Sprintf(`cannot register lazy type "%s"`, lazy.Path()), op, ErrKindDefinition)
		}

		name := t.Name()
		if len(name) == 0 {
			return NewError(fmt.Sprintf(`Module "%s" cannot define a type without name`, module), op, ErrKindDefinition)
		}

		if prev, exists := defined[name]; exists && prev != t {
			return NewError(fmt.Sprintf(`Module "%s" already defines a "%s" type`, module, name), op, ErrKindDefinition)
		}
		defined[name] = t
	}

	return nil
}

// Lookup returns the type designated by the last name in a dotted path. For example,
// "starwars.Human" designates the type "Human" in module "starwars".
func (r *Registry) Lookup(path string) (NamedType, error) {
	const op Op = "schema.Registry.Lookup"

	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return nil, NewError(fmt.Sprintf("%s doesn't look like a module path", path), op, ErrKindDefinition)
	}
	module, name := path[:i], path[i+1:]

	r.mutex.RLock()
	defined, exists := r.modules[module]
	var (
		t     NamedType
		names []string
	)
	if exists {
		t = defined[name]
		if t == nil {
			names = make([]string, 0, len(defined))
			for n := range defined {
				names = append(names, n)
			}
		}
	}
	r.mutex.RUnlock()

	if !exists {
		return nil, NewError(fmt.Sprintf(`Module "%s" does not exist`, module), op, ErrKindDefinition)
	} else if t == nil {
		message := fmt.Sprintf(`Module "%s" does not define a "%s" attribute/type`, module, name)
		return nil, NewError(withSuggestions(message, name, names), op, ErrKindDefinition)
	}

	return t, nil
}

// LookupPath looks up the type designated by path and then follows the dotted attributes from it.
// An attribute of an object (or an input object) is one of its fields; An attribute of a field is
// an attribute of the underlying type of the field. For example,
//
//	LookupPath("starwars.Human", "friends.name")
//
// returns the field "name" of the type of the field "friends" in "Human". It returns the type when
// attributes is empty.
func (r *Registry) LookupPath(path string, attributes string) (interface{}, error) {
	const op Op = "schema.Registry.LookupPath"

	t, err := r.Lookup(path)
	if err != nil {
		return nil, NewError("", op, err)
	}

	if len(attributes) == 0 {
		return t, nil
	}

	var current interface{} = t
	for _, attr := range strings.Split(attributes, ".") {
		next := attributeOf(current, attr)
		if next == nil {
			message := fmt.Sprintf(`Object "%s" does not have attribute "%s"`, attributeOwner(current), attributes)
			return nil, NewError(withSuggestions(message, attr, attributeNames(current)), op, ErrKindDefinition)
		}
		current = next
	}

	return current, nil
}

func attributeOf(v interface{}, attr string) interface{} {
	switch owner := attributeOwner(v).(type) {
	case *Object:
		if field := owner.FieldByName(attr); field != nil {
			return field
		}
	case *InputObject:
		if field := owner.FieldByName(attr); field != nil {
			return field
		}
	}
	return nil
}

// attributeOwner returns the type whose fields are the attributes of v.
func attributeOwner(v interface{}) interface{} {
	switch v := v.(type) {
	case *Field:
		return UnderlyingType(v.Type())
	case *InputField:
		return UnderlyingType(v.Type())
	}
	return v
}

func attributeNames(v interface{}) []string {
	var names []string
	switch v := attributeOwner(v).(type) {
	case *Object:
		for _, field := range v.Fields() {
			names = append(names, field.Name())
		}
	case *InputObject:
		for _, field := range v.Fields() {
			names = append(names, field.Name())
		}
	}
	return names
}

// withSuggestions appends a "Did you mean" hint to message if any of names is close to input.
func withSuggestions(message string, input string, names []string) string {
	if hint := util.DidYouMean(util.SuggestionList(input, names)); len(hint) > 0 {
		return message + ". " + hint
	}
	return message
}

// Lazy returns a type that refers to the type designated by path. The path is not looked up until
// the type is used, which allows a type to refer to types registered after it.
func (r *Registry) Lazy(path string) *LazyType {
	return &LazyType{
		registry: r,
		path:     path,
	}
}

// LazyType refers to a type in a Registry by path.
type LazyType struct {
	registry *Registry
	path     string

	mutex    sync.Mutex
	resolved NamedType
}

var _ NamedType = (*LazyType)(nil)

// Resolve looks up the type. Once the lookup succeeds, the result is cached.
func (t *LazyType) Resolve() (NamedType, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.resolved != nil {
		return t.resolved, nil
	}

	resolved, err := t.registry.Lookup(t.path)
	if err != nil {
		return nil, err
	}
	t.resolved = resolved
	return resolved, nil
}

// Path returns the dotted path of the referred type.
func (t *LazyType) Path() string {
	return t.path
}

// Kind implements Type. It returns TypeKindInvalid if the type cannot be resolved.
func (t *LazyType) Kind() TypeKind {
	resolved, err := t.Resolve()
	if err != nil {
		return TypeKindInvalid
	}
	return resolved.Kind()
}

// String implements Type. It returns the path if the type cannot be resolved.
func (t *LazyType) String() string {
	resolved, err := t.Resolve()
	if err != nil {
		return t.path
	}
	return resolved.String()
}

// Name implements NamedType.
func (t *LazyType) Name() string {
	resolved, err := t.Resolve()
	if err != nil {
		return ""
	}
	return resolved.Name()
}

// Description implements NamedType.
func (t *LazyType) Description() string {
	resolved, err := t.Resolve()
	if err != nil {
		return ""
	}
	return resolved.Description()
}

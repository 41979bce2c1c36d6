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

package schema_test

import (
	"context"

	"github.com/botobag/helios/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func fieldNames(fields []*schema.Field) []string {
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}
	return names
}

var _ = Describe("Object", func() {
	It("keeps fields in the order they are added", func() {
		person := schema.NewObject("Person").
			WithDescription("A person").
			Field("first_name", schema.FieldConfig{Type: schema.NonNullOf(schema.String)}).
			Field("last_name", schema.FieldConfig{Type: schema.String}).
			Field("age", schema.FieldConfig{Type: schema.Int, DeprecationReason: "Use birthday."})
		Expect(person.Err()).ShouldNot(HaveOccurred())

		Expect(person.Name()).Should(Equal("Person"))
		Expect(person.String()).Should(Equal("Person"))
		Expect(person.Description()).Should(Equal("A person"))
		Expect(person.Kind()).Should(Equal(schema.TypeKindObject))
		Expect(fieldNames(person.Fields())).Should(Equal([]string{"firstName", "lastName", "age"}))

		Expect(person.FieldByName("first_name")).Should(BeIdenticalTo(person.FieldByName("firstName")))
		Expect(person.FieldByName("middleName")).Should(BeNil())

		age := person.FieldByName("age")
		Expect(age.IsDeprecated()).Should(BeTrue())
		Expect(age.DeprecationReason()).Should(Equal("Use birthday."))
		Expect(person.FieldByName("lastName").IsDeprecated()).Should(BeFalse())
	})

	It("keeps names when AutoCamelCase is off", func() {
		object := schema.NewObject("Raw").
			AutoCamelCase(false).
			Field("first_name", schema.FieldConfig{
				Type: schema.String,
				Args: []schema.ArgumentConfig{{Name: "max_len", Type: schema.Int}},
			})
		Expect(object.Err()).ShouldNot(HaveOccurred())
		Expect(fieldNames(object.Fields())).Should(Equal([]string{"first_name"}))
		Expect(object.Fields()[0].Args()[0].Name()).Should(Equal("max_len"))
	})

	It("builds arguments in declaration order", func() {
		object := schema.NewObject("Query").
			Field("friends", schema.FieldConfig{
				Type: schema.ListOf(schema.String),
				Args: []schema.ArgumentConfig{
					{Name: "first_n", Type: schema.Int, DefaultValue: 10, Description: "How many"},
					{Name: "after_id", Type: schema.ID},
					{Name: "filter", Type: schema.String, DefaultValue: schema.NilDefaultValue},
				},
			})
		Expect(object.Err()).ShouldNot(HaveOccurred())

		args := object.FieldByName("friends").Args()
		Expect(args).Should(HaveLen(3))

		Expect(args[0].Name()).Should(Equal("firstN"))
		Expect(args[0].Description()).Should(Equal("How many"))
		Expect(args[0].Type()).Should(BeIdenticalTo(schema.Int))
		Expect(args[0].HasDefaultValue()).Should(BeTrue())
		Expect(args[0].DefaultValue()).Should(Equal(10))

		Expect(args[1].Name()).Should(Equal("afterId"))
		Expect(args[1].HasDefaultValue()).Should(BeFalse())

		Expect(args[2].HasDefaultValue()).Should(BeTrue())
		Expect(args[2].DefaultValue()).Should(BeNil())
	})

	Describe("definition errors", func() {
		It("rejects an object without name", func() {
			err := schema.NewObject("").Err()
			Expect(rootMessage(err)).Should(Equal("Must provide name for Object."))
			Expect(schema.IsKind(err, schema.ErrKindDefinition)).Should(BeTrue())
		})

		It("rejects duplicated fields", func() {
			object := schema.NewObject("Person").
				Field("firstName", schema.FieldConfig{Type: schema.String}).
				Field("first_name", schema.FieldConfig{Type: schema.String}).
				Field("age", schema.FieldConfig{Type: schema.Int})
			Expect(rootMessage(object.Err())).Should(Equal("Person.firstName is defined more than once."))
			Expect(object.Fields()).Should(HaveLen(1))
		})

		It("rejects a field without type", func() {
			object := schema.NewObject("Person").Field("age", schema.FieldConfig{})
			Expect(rootMessage(object.Err())).Should(Equal("Person.age must have a type."))
		})

		It("rejects a field without name", func() {
			object := schema.NewObject("Person").Field("", schema.FieldConfig{Type: schema.Int})
			Expect(rootMessage(object.Err())).Should(Equal("Must provide name for field in Person."))
		})

		It("rejects duplicated arguments", func() {
			object := schema.NewObject("Query").Field("search", schema.FieldConfig{
				Type: schema.String,
				Args: []schema.ArgumentConfig{
					{Name: "text", Type: schema.String},
					{Name: "text", Type: schema.String},
				},
			})
			Expect(rootMessage(object.Err())).Should(Equal("Argument text of Query.search is defined more than once."))
			Expect(schema.IsKind(object.Err(), schema.ErrKindDefinition)).Should(BeTrue())
		})

		It("rejects an argument without type", func() {
			object := schema.NewObject("Query").Field("search", schema.FieldConfig{
				Type: schema.String,
				Args: []schema.ArgumentConfig{{Name: "text"}},
			})
			Expect(rootMessage(object.Err())).Should(Equal("Argument text of Query.search must have a type."))
		})
	})

	Describe("Mount", func() {
		It("orders fields by the sequence numbers from the session", func() {
			s := schema.NewSession()
			zeta := s.Field(schema.FieldConfig{Type: schema.String})
			alpha := s.Field(schema.FieldConfig{Type: schema.String})
			middle := s.Field(schema.FieldConfig{Type: schema.Int})

			object := schema.NewObject("Mounted").Mount(map[string]*schema.Field{
				"middle_name": middle,
				"alpha":       alpha,
				"zeta":        zeta,
			})
			Expect(object.Err()).ShouldNot(HaveOccurred())
			Expect(fieldNames(object.Fields())).Should(Equal([]string{"zeta", "alpha", "middleName"}))
		})

		It("places fields without sequence numbers first", func() {
			s := schema.NewSession()
			object := schema.NewObject("Mounted").
				Field("id", schema.FieldConfig{Type: schema.ID}).
				Mount(map[string]*schema.Field{
					"b": s.Field(schema.FieldConfig{Type: schema.String}),
					"y": schema.NewField(schema.FieldConfig{Type: schema.String}),
					"x": schema.NewField(schema.FieldConfig{Type: schema.String}),
				})
			Expect(fieldNames(object.Fields())).Should(Equal([]string{"id", "x", "y", "b"}))
		})

		It("mounts a field to more than one object", func() {
			s := schema.NewSession()
			name := s.Field(schema.FieldConfig{Type: schema.String, Description: "Name"})

			a := schema.NewObject("A").Mount(map[string]*schema.Field{"name": name})
			b := schema.NewObject("B").Mount(map[string]*schema.Field{"full_name": name})

			Expect(a.FieldByName("name").Name()).Should(Equal("name"))
			Expect(b.FieldByName("fullName").Name()).Should(Equal("fullName"))
			Expect(b.FieldByName("fullName").Description()).Should(Equal("Name"))
			Expect(name.Name()).Should(BeEmpty())
		})
	})

	It("sorts fields by sequence numbers", func() {
		s := schema.NewSession()
		a := s.Field(schema.FieldConfig{Type: schema.Int})
		b := s.Field(schema.FieldConfig{Type: schema.Int})
		c := s.Field(schema.FieldConfig{Type: schema.Int})

		fields := []*schema.Field{c, a, b}
		schema.SortFields(fields)
		Expect(fields).Should(Equal([]*schema.Field{a, b, c}))

		x := s.InputField(schema.InputFieldConfig{Type: schema.Int})
		y := s.InputField(schema.InputFieldConfig{Type: schema.Int})
		inputFields := []*schema.InputField{y, x}
		schema.SortInputFields(inputFields)
		Expect(inputFields).Should(Equal([]*schema.InputField{x, y}))
	})

	Describe("resolving fields", func() {
		var person *schema.Object

		BeforeEach(func() {
			person = schema.NewObject("Person").
				Field("first_name", schema.FieldConfig{Type: schema.String}).
				Field("nickname", schema.FieldConfig{Type: schema.String, DefaultValue: "none"}).
				Field("surname", schema.FieldConfig{Type: schema.String, Source: "last_name"}).
				Field("greeting", schema.FieldConfig{
					Type: schema.String,
					Args: []schema.ArgumentConfig{{Name: "name", Type: schema.String}},
					Resolver: schema.FieldResolverFunc(func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
						return "Hello, " + args["name"].(string), nil
					}),
				})
			Expect(person.Err()).ShouldNot(HaveOccurred())
		})

		It("reads the attribute named before camelCase conversion", func() {
			value, err := person.FieldByName("firstName").Resolve(context.Background(), map[string]interface{}{
				"first_name": "Ada",
			}, nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal("Ada"))
		})

		It("returns the default value for an absent attribute", func() {
			value, err := person.FieldByName("nickname").Resolve(context.Background(), map[string]interface{}{}, nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal("none"))
		})

		It("reads the source attribute", func() {
			value, err := person.FieldByName("surname").Resolve(context.Background(), map[string]interface{}{
				"last_name": "Lovelace",
			}, nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal("Lovelace"))
		})

		It("calls the given resolver", func() {
			value, err := person.FieldByName("greeting").Resolve(context.Background(), nil, map[string]interface{}{
				"name": "Ada",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal("Hello, Ada"))
		})
	})
})

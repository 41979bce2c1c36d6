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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/botobag/helios/crunch"
	"github.com/botobag/helios/internal/testutil"
	"github.com/botobag/helios/schema"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func executeContext(ctx context.Context, stdin string, args ...string) result {
	cmd := newRootCmd()

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return result{
		stdout: stdout.String(),
		stderr: stderr.String(),
		err:    err,
	}
}

func execute(stdin string, args ...string) result {
	return executeContext(context.Background(), stdin, args...)
}

func writeTempFile(dir string, name string, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0644)).Should(Succeed())
	return path
}

var _ = Describe("helios", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "helios")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).Should(Succeed())
	})

	It("prints version", func() {
		r := execute("", "version")
		Expect(r.err).ShouldNot(HaveOccurred())
		Expect(r.stdout).Should(Equal("helios version dev\n"))
	})

	It("rejects invalid log level", func() {
		r := execute("", "--log-level", "loud", "version")
		Expect(r.err).Should(MatchError(`invalid log level "loud"`))
	})

	It("reads log level from environment", func() {
		os.Setenv("HELIOS_LOG_LEVEL", "debug")
		defer os.Unsetenv("HELIOS_LOG_LEVEL")

		r := execute(`[1,1]`, "crunch")
		Expect(r.err).ShouldNot(HaveOccurred())
		Expect(r.stderr).Should(ContainSubstring("level=DEBUG"))
		Expect(r.stderr).Should(ContainSubstring(`msg="crunched document"`))
	})

	Describe("crunch", func() {
		It("reads JSON from stdin", func() {
			r := execute(`{"x": 1, "y": 1}`, "crunch")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[1,{\"x\":0,\"y\":0}]\n"))
			Expect(r.stderr).Should(BeEmpty())
		})

		It("reads file", func() {
			path := writeTempFile(dir, "tree.json", `[[1,2],[1,2]]`)
			r := execute("", "crunch", path)
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[1,2,[0,1],[2,2]]\n"))
		})

		It("reads YAML file", func() {
			path := writeTempFile(dir, "tree.yaml", "x: 1\ny: 1\n")
			r := execute("", "crunch", path)
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[1,{\"x\":0,\"y\":0}]\n"))

			path = writeTempFile(dir, "hero.yml", testutil.Dedent(`
				name: Luke
				friends:
				  - name: Han
				  - name: Leia
				tags: [jedi, pilot]
			`))
			r = execute("", "crunch", path)
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal(
				`["Han",{"name":0},"Leia",{"name":2},[1,3],"Luke","jedi","pilot",[6,7],{"friends":4,"name":5,"tags":8}]` + "\n"))
		})

		It("reads YAML from stdin with --format", func() {
			r := execute("- a\n- a\n", "crunch", "--format", "yaml")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[\"a\",[0,0]]\n"))

			r = execute("- 2019-01-02\n- 2019-01-02\n", "crunch", "--format", "yaml")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[\"2019-01-02\",[0,0]]\n"))

			r = execute("1", "crunch", "--format", "toml")
			Expect(r.err).Should(MatchError(`unknown format "toml". Did you mean "yaml"?`))
		})

		It("prints statistics", func() {
			r := execute(`[1,1,1]`, "crunch", "--stats")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stderr).Should(ContainSubstring("slots: 2\n"))
			Expect(r.stderr).Should(ContainSubstring("references: 3\n"))
			Expect(r.stderr).Should(ContainSubstring("shared references: 2\n"))
		})

		It("fails on invalid document", func() {
			r := execute(`{"x": `, "crunch")
			Expect(r.err).Should(HaveOccurred())
			Expect(crunch.IsKind(r.err, crunch.ErrKindEncoding)).Should(BeTrue())
			Expect(r.err.Error()).Should(ContainSubstring("invalid JSON input"))
		})

		It("limits depth", func() {
			r := execute(`[[1]]`, "crunch", "--max-depth", "1")
			Expect(crunch.IsKind(r.err, crunch.ErrKindDepth)).Should(BeTrue())

			r = execute(`[[1]]`, "crunch", "--max-depth", "2")
			Expect(r.err).ShouldNot(HaveOccurred())
		})

		It("fails on missing file", func() {
			r := execute("", "crunch", filepath.Join(dir, "missing.json"))
			Expect(os.IsNotExist(r.err)).Should(BeTrue())
		})
	})

	Describe("decompact", func() {
		It("rebuilds document", func() {
			r := execute(`[1,[0,0,0]]`, "decompact")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[1,1,1]\n"))
		})

		It("indents output", func() {
			path := writeTempFile(dir, "pool.json", `[1,{"x":0}]`)
			r := execute("", "decompact", "--indent", path)
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(ContainSubstring("\n  \"x\""))
			Expect(r.stdout).Should(MatchJSON(`{"x":1}`))
		})

		It("reverses crunch", func() {
			document := `{"a": [1, 2.5, "x", null, true, {"b": [1, 2.5]}], "c": {"b": [1, 2.5]}}`

			crunched := execute(document, "crunch")
			Expect(crunched.err).ShouldNot(HaveOccurred())

			r := execute(crunched.stdout, "decompact")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(MatchJSON(document))
		})

		It("fails on malformed pool", func() {
			r := execute(`[1,[0,7]]`, "decompact")
			Expect(crunch.IsKind(r.err, crunch.ErrKindDecoding)).Should(BeTrue())

			r = execute(`{}`, "decompact")
			Expect(crunch.IsKind(r.err, crunch.ErrKindDecoding)).Should(BeTrue())

			r = execute(`[1,[0]] [2]`, "decompact")
			Expect(crunch.IsKind(r.err, crunch.ErrKindDecoding)).Should(BeTrue())
		})

		It("limits the number of rebuilt values", func() {
			r := execute(`[1,[0,0],[1,1]]`, "decompact", "--max-nodes", "7")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stdout).Should(Equal("[[1,1],[1,1]]\n"))

			r = execute(`[1,[0,0],[1,1]]`, "decompact", "--max-nodes", "6")
			Expect(crunch.IsKind(r.err, crunch.ErrKindDecoding)).Should(BeTrue())
			Expect(r.err.Error()).Should(ContainSubstring("pool expands to more than 6 values"))
		})
	})

	Describe("describe", func() {
		It("describes built-in scalars", func() {
			r := execute("", "describe")
			Expect(r.err).ShouldNot(HaveOccurred())

			var description struct {
				QueryType struct {
					Name string `json:"name"`
				} `json:"queryType"`
				Types []struct {
					Name   string `json:"name"`
					Fields []struct {
						Name string `json:"name"`
					} `json:"fields"`
				} `json:"types"`
			}
			Expect(json.Unmarshal([]byte(r.stdout), &description)).Should(Succeed())
			Expect(description.QueryType.Name).Should(Equal("Query"))

			var (
				typeNames  []string
				fieldNames []string
			)
			for _, t := range description.Types {
				typeNames = append(typeNames, t.Name)
				if t.Name == "Query" {
					for _, field := range t.Fields {
						fieldNames = append(fieldNames, field.Name)
					}
				}
			}
			Expect(typeNames).Should(Equal([]string{"BigInt", "Boolean", "Float", "ID", "Int", "Query", "String"}))
			Expect(fieldNames).Should(Equal([]string{"int", "bigInt", "float", "string", "boolean", "id"}))
		})

		It("prints crunched description", func() {
			plain := execute("", "describe")
			Expect(plain.err).ShouldNot(HaveOccurred())

			crunched := execute("", "describe", "--crunch")
			Expect(crunched.err).ShouldNot(HaveOccurred())

			var pool crunch.Pool
			Expect(json.Unmarshal([]byte(crunched.stdout), &pool)).Should(Succeed())
			Expect(pool.Stats().SharedReferences).Should(BeNumerically(">", 0))

			value, err := crunch.Decompact(pool)
			Expect(err).ShouldNot(HaveOccurred())

			var expected interface{}
			Expect(json.Unmarshal([]byte(plain.stdout), &expected)).Should(Succeed())
			Expect(cmp.Diff(expected, value)).Should(BeEmpty())
		})

		It("echoes arguments", func() {
			s, err := builtinSchema()
			Expect(err).ShouldNot(HaveOccurred())

			field := s.Query().FieldByName("bigInt")
			Expect(field.Type()).Should(BeIdenticalTo(schema.BigInt))
			Expect(field.Args()[0].HasDefaultValue()).Should(BeTrue())
			Expect(field.Args()[0].DefaultValue()).Should(BeNil())

			value, err := field.Resolve(context.Background(), nil, map[string]interface{}{"value": 42})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal(42))
		})
	})

	Describe("serve", func() {
		It("stops when context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			r := executeContext(ctx, "", "serve", "--addr", "127.0.0.1:0", "--log-level", "info")
			Expect(r.err).ShouldNot(HaveOccurred())
			Expect(r.stderr).Should(ContainSubstring("server stopped"))
		})

		It("rejects negative compression size", func() {
			r := execute("", "serve", "--compress-min-size", "-1")
			Expect(r.err).Should(HaveOccurred())
		})
	})
})

package gen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

const getUserText = "select User { id, name, color } filter .id = <uuid>$id"

// getUser is a query returning at most one user shape by id.
func getUser() QuerySource {
	return QuerySource{
		Name: "get_user",
		Text: getUserText,
		Description: &descriptor.CommandDescription{
			ResultCardinality: descriptor.AtMostOne,
			Input: *typedesc(1,
				&descriptor.BaseScalar{ID: stdUUID},
				&descriptor.InputShape{Elements: []descriptor.ShapeElement{
					{Name: "id", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
				}},
			),
			Output: *typedesc(3,
				&descriptor.BaseScalar{ID: stdUUID},
				&descriptor.BaseScalar{ID: stdStr},
				&descriptor.Enumeration{Name: "default::Color", Members: []string{"Red", "Green"}},
				&descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
					{Name: "id", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
					{Name: "name", Cardinality: descriptor.Card(descriptor.AtMostOne), TypePos: 1},
					{Name: "color", Cardinality: descriptor.Card(descriptor.One), TypePos: 2},
				}},
			),
		},
	}
}

func TestEmitQuery(t *testing.T) {
	t.Run("single result with input", func(t *testing.T) {
		tree := testTree(t, schemaRows())
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, getUser()))
		assert.Equal(t, []string{"get_user/get_user.go"}, out.Paths())

		src := string(mustGet(t, out, "get_user/get_user.go"))
		assert.Contains(t, src, "// Package getuser wraps the get_user query.")
		assert.Contains(t, src, "package getuser")
		assert.Contains(t, src, `const Statement = "`+getUserText+`"`)
		assert.Contains(t, src, "type Input struct")
		assert.Contains(t, src, "func (i Input) Args() map[string]any")
		assert.Contains(t, src, "type Output struct")
		assert.Contains(t, src, "Color db.Color")
		assert.Contains(t, src, `"example.com/app/db"`)
		assert.Contains(t, src, "func Query(ctx context.Context, c gelx.Querier, in Input) (*Output, error)")
		assert.Contains(t, src, "found, err := c.QuerySingle(ctx, Statement, &out, in.Args())")
		assert.Contains(t, src, "func Transaction(ctx context.Context, tx gelx.Querier, in Input) (*Output, error)")
		assert.Contains(t, src, "return Query(ctx, tx, in)")
	})

	t.Run("many results without input", func(t *testing.T) {
		tree := testTree(t, schemaRows())
		q := QuerySource{
			Name: "ListNames",
			Text: "select User.name",
			Description: &descriptor.CommandDescription{
				ResultCardinality: descriptor.Many,
				Output:            *typedesc(0, &descriptor.BaseScalar{ID: stdStr}),
			},
		}
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, q))
		src := string(mustGet(t, out, "list_names/list_names.go"))
		assert.Contains(t, src, "package listnames")
		assert.Contains(t, src, "type Input = struct{}")
		assert.Contains(t, src, "type Output = string")
		assert.NotContains(t, src, "Args()")
		assert.Contains(t, src, "func Query(ctx context.Context, c gelx.Querier) ([]Output, error)")
		assert.Contains(t, src, "err := c.Query(ctx, Statement, &out, nil)")
		assert.Contains(t, src, "return Query(ctx, tx)")
	})

	t.Run("no result", func(t *testing.T) {
		tree := testTree(t, schemaRows())
		q := QuerySource{
			Name:        "reset",
			Text:        "delete User",
			Description: &descriptor.CommandDescription{ResultCardinality: descriptor.NoResult},
		}
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, q))
		src := string(mustGet(t, out, "reset/reset.go"))
		assert.Contains(t, src, "type Output = struct{}")
		assert.Contains(t, src, "return nil, c.Execute(ctx, Statement, nil)")
	})

	t.Run("required single", func(t *testing.T) {
		tree := testTree(t, schemaRows())
		q := QuerySource{
			Name: "count",
			Text: "select count(User)",
			Description: &descriptor.CommandDescription{
				ResultCardinality: descriptor.One,
				Output:            *typedesc(0, &descriptor.BaseScalar{ID: stdInt64}),
			},
		}
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, q))
		src := string(mustGet(t, out, "count/count.go"))
		assert.Contains(t, src, "func Query(ctx context.Context, c gelx.Querier) (Output, error)")
		assert.Contains(t, src, "err := c.QueryRequiredSingle(ctx, Statement, &out, nil)")
	})

	t.Run("query wrappers behind an alias", func(t *testing.T) {
		tree := testTree(t, schemaRows(), WithCapability(capability.Query, capability.Behind("gelquery")))
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, getUser()))
		assert.Equal(t, []string{"get_user/get_user.go", "get_user/get_user_gelquery.go"}, out.Paths())
		assert.NotContains(t, string(mustGet(t, out, "get_user/get_user.go")), "func Query(")
		companion := string(mustGet(t, out, "get_user/get_user_gelquery.go"))
		assert.Contains(t, companion, "//go:build gelquery")
		assert.Contains(t, companion, "func Query(")
	})

	t.Run("query capability off", func(t *testing.T) {
		tree := testTree(t, schemaRows(), WithCapability(capability.Query, capability.Off()))
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, getUser()))
		assert.Equal(t, []string{"get_user/get_user.go"}, out.Paths())
		src := string(mustGet(t, out, "get_user/get_user.go"))
		assert.NotContains(t, src, "//go:build")
		assert.Contains(t, src, "func (i Input) Args()")
		assert.Contains(t, src, "func Query(ctx context.Context, c gelx.Querier, in Input) (*Output, error)")
		assert.Contains(t, src, "func Transaction(ctx context.Context, tx gelx.Querier, in Input) (*Output, error)")
	})

	t.Run("custom names", func(t *testing.T) {
		tree := testTree(t, schemaRows(), WithNames(Names{Input: "Params", Output: "Row", Query: "Run", Statement: "SQL"}))
		out := NewOutput()
		require.NoError(t, tree.EmitQuery(out, getUser()))
		src := string(mustGet(t, out, "get_user/get_user.go"))
		assert.Contains(t, src, "const SQL =")
		assert.Contains(t, src, "type Params struct")
		assert.Contains(t, src, "func Run(ctx context.Context, c gelx.Querier, in Params) (*Row, error)")
		assert.Contains(t, src, "return Run(ctx, tx, in)")
	})
}

func TestEmitQueryFromCatalog(t *testing.T) {
	colors := uuid.New()
	items := uuid.New()
	itemRows := []catalog.TypeRow{
		{ID: stdStr, Name: "std::str", Kind: "scalar"},
		{ID: colors, Name: "default::Color", Kind: "scalar", EnumValues: []string{"Red", "Green", "Blue"}},
		{ID: items, Name: "default::Item", Kind: "object", Pointers: []catalog.PointerRow{
			{Card: "One", Name: "name", TargetID: ptr(stdStr), Kind: "property"},
			{Card: "One", Name: "color", TargetID: ptr(colors), Kind: "property"},
		}},
	}

	tests := []struct {
		name        string
		rows        []catalog.TypeRow
		query       QuerySource
		path        string
		contains    []string
		notContains []string
		matches     []string
	}{
		{
			name: "object with a schema enumeration",
			rows: itemRows,
			query: QuerySource{
				Name: "list_items",
				Text: "select Item {name, color}",
				Description: &descriptor.CommandDescription{
					ResultCardinality: descriptor.Many,
					Output: *typedesc(2,
						&descriptor.BaseScalar{ID: stdStr},
						&descriptor.Enumeration{Name: "default::Color", Members: []string{"Red", "Green", "Blue"}},
						&descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
							{Name: "name", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
							{Name: "color", Cardinality: descriptor.Card(descriptor.One), TypePos: 1},
						}},
					),
				},
			},
			path: "list_items/list_items.go",
			contains: []string{
				`const Statement = "select Item {name, color}"`,
				"type Output struct",
				"Color db.Color",
				`"example.com/app/db"`,
				"func Query(ctx context.Context, c gelx.Querier) ([]Output, error)",
				"err := c.Query(ctx, Statement, &out, nil)",
				"func Transaction(ctx context.Context, tx gelx.Querier) ([]Output, error)",
			},
			notContains: []string{"type Color", "*db.Color"},
			matches:     []string{`Name\s+string`},
		},
		{
			name: "system enumeration declared in the query package",
			rows: schemaRows(),
			query: QuerySource{
				Name: "isolation",
				Text: "select sys::get_transaction_isolation()",
				Description: &descriptor.CommandDescription{
					ResultCardinality: descriptor.One,
					Output: *typedesc(0, &descriptor.Enumeration{
						Name:    "sys::TransactionIsolation",
						Members: []string{"RepeatableRead", "Serializable"},
					}),
				},
			},
			path: "isolation/isolation.go",
			contains: []string{
				"// SysTransactionIsolation is the sys::TransactionIsolation enumeration.",
				"type SysTransactionIsolation string",
				"type Output = SysTransactionIsolation",
				"func Query(ctx context.Context, c gelx.Querier) (Output, error)",
			},
			notContains: []string{"db.SysTransactionIsolation", `"example.com/app/db"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := testTree(t, tt.rows)
			out := NewOutput()
			require.NoError(t, tree.EmitQuery(out, tt.query))
			src := string(mustGet(t, out, tt.path))
			for _, s := range tt.contains {
				assert.Contains(t, src, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, src, s)
			}
			for _, re := range tt.matches {
				assert.Regexp(t, re, src)
			}
		})
	}
}

func TestEmitQueryErrors(t *testing.T) {
	tree := testTree(t, schemaRows())

	tests := []struct {
		name  string
		q     QuerySource
		check func(error) bool
	}{
		{"no description", QuerySource{Name: "a"}, IsContractError},
		{"unknown cardinality", QuerySource{Name: "a", Description: &descriptor.CommandDescription{ResultCardinality: 1}}, IsContractError},
		{"input is not a shape", QuerySource{Name: "a", Description: &descriptor.CommandDescription{
			ResultCardinality: descriptor.One,
			Input:             *typedesc(0, &descriptor.BaseScalar{ID: stdStr}),
		}}, IsContractError},
		{"type missing from catalog", QuerySource{Name: "a", Description: &descriptor.CommandDescription{
			ResultCardinality: descriptor.One,
			Output:            *typedesc(0, &descriptor.Enumeration{Name: "default::Missing"}),
		}}, IsContractError},
		{"name without identifier characters", QuerySource{Name: "--", Description: &descriptor.CommandDescription{}}, IsConfigError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.EmitQuery(NewOutput(), tt.q)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestInline(t *testing.T) {
	cfg := MustNewConfig()

	t.Run("self-contained file", func(t *testing.T) {
		src, err := Inline(cfg, getUser(), "main")
		require.NoError(t, err)
		s := string(src)
		assert.Contains(t, s, "// "+Header)
		assert.Contains(t, s, "package main")
		assert.Contains(t, s, "const GetUserStatement =")
		assert.Contains(t, s, "type GetUserInput struct")
		assert.Contains(t, s, "type GetUserOutput struct")
		assert.Contains(t, s, "type GetUserDefaultColor string")
		assert.Contains(t, s, "Color GetUserDefaultColor")
		assert.Contains(t, s, "func GetUserQuery(ctx context.Context, c gelx.Querier, in GetUserInput) (*GetUserOutput, error)")
		assert.Contains(t, s, "func GetUserTransaction(")
		assert.NotContains(t, s, "example.com")
	})

	t.Run("aliased query capability keeps the wrappers untagged", func(t *testing.T) {
		cfg := MustNewConfig(WithCapability(capability.Query, capability.Behind("gelquery")))
		src, err := Inline(cfg, getUser(), "main")
		require.NoError(t, err)
		assert.Contains(t, string(src), "func GetUserQuery(")
		assert.NotContains(t, string(src), "go:build")
	})

	t.Run("anonymous enumeration", func(t *testing.T) {
		q := QuerySource{
			Name: "get_mode",
			Text: "select { mode := <str>'a' }",
			Description: &descriptor.CommandDescription{
				ResultCardinality: descriptor.One,
				Output: *typedesc(1,
					&descriptor.Enumeration{Members: []string{"fast", "slow"}},
					&descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
						{Name: "mode", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
					}},
				),
			},
		}
		src, err := Inline(cfg, q, "main")
		require.NoError(t, err)
		s := string(src)
		assert.Contains(t, s, "// GetModeOutputMode is an anonymous enumeration.")
		assert.Contains(t, s, "type GetModeOutputMode string")
		assert.Contains(t, s, "Mode GetModeOutputMode")
	})
}

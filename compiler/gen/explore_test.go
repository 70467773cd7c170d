package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

func typedesc(root int, ds ...descriptor.Descriptor) *descriptor.Typedesc {
	return &descriptor.Typedesc{Descriptors: ds, RootPos: descriptor.Pos(root)}
}

func defNames(defs []Definition) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.DefName()
	}
	return names
}

// fixedResolver resolves every catalog name to an identifier of pkg.
type fixedResolver struct{ pkg string }

func (r fixedResolver) Resolve(name catalog.ModuleName) (*jen.Statement, error) {
	return jen.Qual(r.pkg, pascal(name.Name)), nil
}

func TestExploreObjectShape(t *testing.T) {
	td := typedesc(3,
		&descriptor.BaseScalar{ID: stdUUID},
		&descriptor.BaseScalar{ID: stdStr},
		&descriptor.Enumeration{Name: "default::Color", Members: []string{"Red", "Green"}},
		&descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
			{Name: "id", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
			{Name: "nickname", Cardinality: descriptor.Card(descriptor.AtMostOne), TypePos: 1},
			{Name: "tags", Cardinality: descriptor.Card(descriptor.Many), TypePos: 1},
			{Name: "color", Cardinality: descriptor.Card(descriptor.One), TypePos: 2},
		}},
	)
	e := &Explorer{Typedesc: td, Runtime: RuntimePackage, Resolver: fixedResolver{"example.com/db"}}
	ref, defs, err := e.ExploreRoot("Output")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "Output", typeOf(t, ref.Code))
	require.Equal(t, []string{"Output"}, defNames(defs))

	rec, ok := defs[0].(*RecordDef)
	require.True(t, ok)
	assert.False(t, rec.Input)
	require.Len(t, rec.Fields, 4)

	id := rec.Fields[0]
	assert.Equal(t, "ID", id.Name)
	assert.Equal(t, "id", id.SchemaName)
	assert.True(t, id.Renamed())
	assert.Equal(t, "uuid.UUID", typeOf(t, id.Code()))

	nick := rec.Fields[1]
	assert.True(t, nick.Optional)
	assert.Equal(t, "*string", typeOf(t, nick.Code()))
	assert.Equal(t, "string", typeOf(t, nick.Type.Code))

	tags := rec.Fields[2]
	assert.False(t, tags.Optional)
	assert.Equal(t, descriptor.Many, tags.Cardinality)
	assert.Equal(t, "string", typeOf(t, tags.Code()))

	color := rec.Fields[3]
	assert.Equal(t, "db.Color", typeOf(t, color.Code()))
}

func TestExploreSet(t *testing.T) {
	td := typedesc(0,
		&descriptor.Set{TypePos: 1},
		&descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
			{Name: "name", Cardinality: descriptor.Card(descriptor.One), TypePos: 2},
		}},
		&descriptor.BaseScalar{ID: stdStr},
	)
	e := &Explorer{Typedesc: td, Runtime: RuntimePackage}
	ref, defs, err := e.ExploreRoot("Output")
	require.NoError(t, err)
	assert.True(t, ref.List)
	assert.Equal(t, []string{"OutputSet", "Output"}, defNames(defs))

	alias, ok := defs[1].(*AliasDef)
	require.True(t, ok)
	assert.Equal(t, "[]OutputSet", typeOf(t, alias.Type.Code))
}

func TestExploreScalars(t *testing.T) {
	t.Run("base scalar at the root is aliased", func(t *testing.T) {
		e := &Explorer{Typedesc: typedesc(0, &descriptor.BaseScalar{ID: stdInt64}), Runtime: RuntimePackage}
		ref, defs, err := e.ExploreRoot("Output")
		require.NoError(t, err)
		assert.Equal(t, "Output", typeOf(t, ref.Code))
		require.Len(t, defs, 1)
		assert.Equal(t, "int64", typeOf(t, defs[0].(*AliasDef).Type.Code))
	})

	t.Run("system scalar maps by id", func(t *testing.T) {
		e := &Explorer{Typedesc: typedesc(0, &descriptor.Scalar{ID: stdBool, Name: "std::bool"}), Runtime: RuntimePackage}
		_, defs, err := e.ExploreRoot("Output")
		require.NoError(t, err)
		assert.Equal(t, "bool", typeOf(t, defs[0].(*AliasDef).Type.Code))
	})

	custom := typedesc(3,
		&descriptor.BaseScalar{ID: stdStr},
		&descriptor.Scalar{ID: uuid.New(), Name: "default::Slug", BaseTypePos: descriptor.Pos(0)},
		&descriptor.Scalar{ID: uuid.New(), Name: "default::Handle", BaseTypePos: descriptor.Pos(1)},
		&descriptor.InputShape{Elements: []descriptor.ShapeElement{
			{Name: "handle", Cardinality: descriptor.Card(descriptor.One), TypePos: 2},
		}},
	)

	t.Run("embedded mode flattens user scalars", func(t *testing.T) {
		e := &Explorer{Typedesc: custom, Mode: capability.Embedded, Runtime: RuntimePackage}
		_, defs, err := e.ExploreRoot("Input")
		require.NoError(t, err)
		rec := defs[0].(*RecordDef)
		assert.True(t, rec.Input)
		assert.Equal(t, "string", typeOf(t, rec.Fields[0].Code()))
	})

	t.Run("standalone mode resolves user scalars", func(t *testing.T) {
		e := &Explorer{Typedesc: custom, Runtime: RuntimePackage, Resolver: fixedResolver{"example.com/db"}}
		_, defs, err := e.ExploreRoot("Input")
		require.NoError(t, err)
		assert.Equal(t, "db.Handle", typeOf(t, defs[0].(*RecordDef).Fields[0].Code()))
	})

	t.Run("standalone mode needs a resolver", func(t *testing.T) {
		e := &Explorer{Typedesc: custom, Runtime: RuntimePackage}
		_, _, err := e.ExploreRoot("Input")
		require.Error(t, err)
		assert.True(t, IsContractError(err))
	})
}

func TestExploreTuple(t *testing.T) {
	td := typedesc(2,
		&descriptor.BaseScalar{ID: stdStr},
		&descriptor.BaseScalar{ID: stdInt64},
		&descriptor.Tuple{ElementTypes: []descriptor.TypePos{0, 1}},
	)
	e := &Explorer{Typedesc: td, Runtime: RuntimePackage}
	ref, defs, err := e.ExploreRoot("Output")
	require.NoError(t, err)
	assert.Equal(t, "Output", typeOf(t, ref.Code))
	require.Len(t, defs, 1)
	tuple, ok := defs[0].(*TupleDef)
	require.True(t, ok)
	require.Len(t, tuple.Elements, 2)
	assert.Equal(t, "int64", typeOf(t, tuple.Elements[1].Code))
}

func TestExploreNamedTupleFieldCollision(t *testing.T) {
	td := typedesc(1,
		&descriptor.BaseScalar{ID: stdStr},
		&descriptor.NamedTuple{Elements: []descriptor.TupleElement{
			{Name: "name", TypePos: 0},
			{Name: "Name", TypePos: 0},
		}},
	)
	e := &Explorer{Typedesc: td, Runtime: RuntimePackage}
	_, defs, err := e.ExploreRoot("Output")
	require.NoError(t, err)
	rec := defs[0].(*RecordDef)
	assert.Equal(t, "Name", rec.Fields[0].Name)
	assert.Equal(t, "Name2", rec.Fields[1].Name)
	assert.Equal(t, "Name", rec.Fields[1].SchemaName)
}

func TestExploreEnumeration(t *testing.T) {
	color := &descriptor.Enumeration{Name: "default::Color", Members: []string{"Red", "Green"}}

	t.Run("embedded enumerations are declared once with the prefix", func(t *testing.T) {
		td := typedesc(1, color, &descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
			{Name: "primary", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
			{Name: "secondary", Cardinality: descriptor.Card(descriptor.AtMostOne), TypePos: 0},
		}})
		e := &Explorer{Typedesc: td, Mode: capability.Embedded, Runtime: RuntimePackage, Prefix: "GetUser"}
		_, defs, err := e.ExploreRoot("GetUserOutput")
		require.NoError(t, err)
		assert.Equal(t, []string{"GetUserDefaultColor", "GetUserOutput"}, defNames(defs))
		enum := defs[0].(*EnumDef)
		assert.Equal(t, "default::Color", enum.SchemaName)
		assert.Equal(t, []string{"Red", "Green"}, enum.Members)
		rec := defs[1].(*RecordDef)
		assert.Equal(t, "*GetUserDefaultColor", typeOf(t, rec.Fields[1].Code()))
	})

	t.Run("embedded anonymous enumerations are declared inline", func(t *testing.T) {
		td := typedesc(1, &descriptor.Enumeration{Members: []string{"a", "b"}}, &descriptor.ObjectShape{Elements: []descriptor.ShapeElement{
			{Name: "mode", Cardinality: descriptor.Card(descriptor.One), TypePos: 0},
		}})
		e := &Explorer{Typedesc: td, Mode: capability.Embedded, Runtime: RuntimePackage, Prefix: "GetMode"}
		_, defs, err := e.ExploreRoot("GetModeOutput")
		require.NoError(t, err)
		assert.Equal(t, []string{"GetModeOutputMode", "GetModeOutput"}, defNames(defs))
		enum := defs[0].(*EnumDef)
		assert.Empty(t, enum.SchemaName)
		assert.Equal(t, []string{"a", "b"}, enum.Members)
		assert.Equal(t, "GetModeOutputMode", typeOf(t, defs[1].(*RecordDef).Fields[0].Code()))
	})

	t.Run("embedded anonymous root enumeration", func(t *testing.T) {
		td := typedesc(0, &descriptor.Enumeration{Members: []string{"a"}})
		e := &Explorer{Typedesc: td, Mode: capability.Embedded, Runtime: RuntimePackage}
		_, defs, err := e.ExploreRoot("Output")
		require.NoError(t, err)
		assert.Equal(t, []string{"Output"}, defNames(defs))
		assert.IsType(t, &EnumDef{}, defs[0])
	})

	t.Run("standalone anonymous enumerations are strings", func(t *testing.T) {
		td := typedesc(0, &descriptor.Enumeration{Members: []string{"a"}})
		e := &Explorer{Typedesc: td, Runtime: RuntimePackage}
		_, defs, err := e.ExploreRoot("Output")
		require.NoError(t, err)
		assert.Equal(t, "string", typeOf(t, defs[0].(*AliasDef).Type.Code))
	})

	t.Run("system enumerations are declared inline", func(t *testing.T) {
		td := typedesc(0, &descriptor.Enumeration{Name: "sys::TransactionIsolation", Members: []string{"RepeatableRead", "Serializable"}})
		e := &Explorer{Typedesc: td, Runtime: RuntimePackage, Resolver: fixedResolver{"example.com/db"}}
		_, defs, err := e.ExploreRoot("Output")
		require.NoError(t, err)
		assert.Equal(t, []string{"SysTransactionIsolation", "Output"}, defNames(defs))
		assert.Equal(t, "sys::TransactionIsolation", defs[0].(*EnumDef).SchemaName)
		assert.Equal(t, "SysTransactionIsolation", typeOf(t, defs[1].(*AliasDef).Type.Code))
	})

	t.Run("standalone enumerations resolve", func(t *testing.T) {
		e := &Explorer{Typedesc: typedesc(0, color), Runtime: RuntimePackage, Resolver: fixedResolver{"example.com/db"}}
		_, defs, err := e.ExploreRoot("Output")
		require.NoError(t, err)
		assert.Equal(t, "db.Color", typeOf(t, defs[0].(*AliasDef).Type.Code))
	})
}

func TestExploreRange(t *testing.T) {
	td := typedesc(1, &descriptor.BaseScalar{ID: stdInt64}, &descriptor.Range{TypePos: 0})
	e := &Explorer{Typedesc: td, Runtime: RuntimePackage}
	_, defs, err := e.ExploreRoot("Output")
	require.NoError(t, err)
	assert.Equal(t, "gelx.Range[int64]", typeOf(t, defs[0].(*AliasDef).Type.Code))
}

func TestExploreArray(t *testing.T) {
	td := typedesc(1, &descriptor.BaseScalar{ID: stdStr}, &descriptor.Array{TypePos: 0})
	e := &Explorer{Typedesc: td, Runtime: RuntimePackage}
	ref, defs, err := e.ExploreRoot("Output")
	require.NoError(t, err)
	assert.True(t, ref.List)
	assert.Equal(t, "[]string", typeOf(t, defs[0].(*AliasDef).Type.Code))
}

func TestExploreEmpty(t *testing.T) {
	e := &Explorer{Typedesc: &descriptor.Typedesc{}, Runtime: RuntimePackage}
	ref, defs, err := e.ExploreRoot("Input")
	require.NoError(t, err)
	assert.Nil(t, ref)
	require.Len(t, defs, 1)
	assert.Equal(t, "struct{}", typeOf(t, defs[0].(*AliasDef).Type.Code))
}

func TestExploreErrors(t *testing.T) {
	tests := []struct {
		name string
		td   *descriptor.Typedesc
	}{
		{"multirange", typedesc(1, &descriptor.BaseScalar{ID: stdInt64}, &descriptor.MultiRange{TypePos: 0})},
		{"object", typedesc(0, &descriptor.Object{Name: "default::User"})},
		{"compound", typedesc(0, &descriptor.Compound{Name: "default::A | default::B"})},
		{"sql row", typedesc(0, &descriptor.SQLRow{})},
		{"type annotation", typedesc(0, &descriptor.TypeAnnotation{})},
		{"position out of range", typedesc(0, &descriptor.Set{TypePos: 7})},
		{"root out of range", typedesc(3, &descriptor.BaseScalar{ID: stdStr})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Explorer{Typedesc: tt.td, Runtime: RuntimePackage}
			_, _, err := e.ExploreRoot("Output")
			require.Error(t, err)
			assert.True(t, IsContractError(err))
		})
	}
}

package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOption(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Option
		wantErr bool
	}{
		{"nil", nil, On(), false},
		{"true", true, On(), false},
		{"false", false, Off(), false},
		{"string false", "false", Off(), false},
		{"alias", "ssr", Behind("ssr"), false},
		{"dotted alias", "go1.22", Behind("go1.22"), false},
		{"expression", "ssr || wasm", Option{}, true},
		{"empty", "", Option{}, true},
		{"number", 3, Option{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOption(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionString(t *testing.T) {
	assert.Equal(t, "true", On().String())
	assert.Equal(t, "false", Off().String())
	assert.Equal(t, "ssr", Behind("ssr").String())
	assert.True(t, Behind("ssr").IsAliased())
	assert.False(t, On().IsAliased())
}

func TestOptionsSetGet(t *testing.T) {
	opts := Default()
	for _, c := range All {
		assert.Equal(t, On(), opts.Get(c.Name), c.Name)
	}
	require.NoError(t, opts.Set(EnumString, Behind("strings")))
	assert.Equal(t, Behind("strings"), opts.Get(EnumString))
	assert.Error(t, opts.Set(Name("nope"), On()))
	assert.Equal(t, Off(), opts.Get(Name("nope")))
}

func TestEnabled(t *testing.T) {
	opts := Options{
		Serialization: On(),
		Builder:       Off(),
		Query:         Behind("gel"),
		EnumString:    Behind("gel"),
	}
	assert.True(t, opts.Enabled(Serialization, Standalone))
	assert.True(t, opts.Enabled(Serialization, Embedded))
	assert.False(t, opts.Enabled(Builder, Standalone))
	assert.True(t, opts.Enabled(Query, Standalone))
	assert.False(t, opts.Enabled(Query, Embedded))
}

func TestResolve(t *testing.T) {
	t.Run("defaults on record", func(t *testing.T) {
		res := Resolve(Default(), RecordCapabilities, Context{Target: Record})
		require.Len(t, res.Groups, 1)
		assert.Equal(t, "", res.Groups[0].Alias)
		assert.Equal(t, []Attachment{JSONCodec, FieldList}, res.Groups[0].Attachments)
		require.Len(t, res.Auxiliary, 1)
		assert.Equal(t, []Attachment{QueryContract}, res.Auxiliary[0].Attachments)
		assert.False(t, res.Has(BuilderType))
		assert.Empty(t, res.Aliases())
	})

	t.Run("input record gets builder", func(t *testing.T) {
		res := Resolve(Default(), RecordCapabilities, Context{Target: InputRecord})
		assert.Equal(t, []Attachment{JSONCodec, BuilderType, FieldList}, res.Groups[0].Attachments)
		assert.Equal(t, []Attachment{BuilderContract, QueryContract}, res.Auxiliary[0].Attachments)
	})

	t.Run("shared alias makes one group", func(t *testing.T) {
		opts := Options{
			Serialization: Behind("ssr"),
			Builder:       On(),
			Query:         Behind("db"),
			EnumString:    Behind("ssr"),
		}
		res := Resolve(opts, EnumCapabilities, Context{Target: Enumeration})
		require.Len(t, res.Groups, 3)
		assert.Equal(t, Group{}, res.Groups[0])
		assert.Equal(t, Group{Alias: "ssr", Attachments: []Attachment{TextCodec, StringMethods}}, res.Groups[1])
		assert.Equal(t, Group{Alias: "db", Attachments: []Attachment{ValueList}}, res.Groups[2])
		assert.Equal(t, []string{"ssr", "db"}, res.Aliases())
		assert.Equal(t, []Attachment{ValueList, QueryContract}, res.Attachments("db"))

		alias, ok := res.AliasOf(StringMethods)
		require.True(t, ok)
		assert.Equal(t, "ssr", alias)
	})

	t.Run("embedded drops aliased", func(t *testing.T) {
		opts := Options{
			Serialization: On(),
			Builder:       Behind("build"),
			Query:         Behind("db"),
			EnumString:    Off(),
		}
		res := Resolve(opts, RecordCapabilities, Context{Mode: Embedded, Target: InputRecord})
		require.Len(t, res.Groups, 1)
		assert.Equal(t, []Attachment{JSONCodec}, res.Groups[0].Attachments)
		assert.Empty(t, res.Auxiliary)
	})

	t.Run("scalar wrapper", func(t *testing.T) {
		res := Resolve(Default(), ScalarCapabilities, Context{Target: ScalarWrapper})
		require.Len(t, res.Groups, 1)
		assert.Equal(t, []Attachment{JSONCodec, TypeCheck}, res.Groups[0].Attachments)
		assert.True(t, res.Has(QueryContract))
		assert.False(t, res.Has(BuilderType))
	})

	t.Run("all off", func(t *testing.T) {
		res := Resolve(Options{}, EnumCapabilities, Context{Target: Enumeration})
		require.Len(t, res.Groups, 1)
		assert.Empty(t, res.Groups[0].Attachments)
		assert.Empty(t, res.Aliases())
	})
}

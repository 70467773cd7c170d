package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gelx/compiler/capability"
)

func TestWithTarget(t *testing.T) {
	t.Run("sets target", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithTarget("internal/db")(c))
		assert.Equal(t, "internal/db", c.Target)
	})

	t.Run("empty target is rejected", func(t *testing.T) {
		err := WithTarget("")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithPackage(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithPackage("example.com/app/internal/db")(c))
	assert.Equal(t, "example.com/app/internal/db", c.Package)
	assert.Error(t, WithPackage("")(c))
	assert.Error(t, WithRuntime("")(c))
}

func TestWithNames(t *testing.T) {
	tests := []struct {
		name    string
		in      Names
		want    Names
		wantErr bool
	}{
		{"empty keeps defaults", Names{}, DefaultNames(), false},
		{"partial override", Names{Input: "Args", Query: "Run"}, Names{
			Input: "Args", Output: "Output", Query: "Run", Transaction: "Transaction", Statement: "Statement",
		}, false},
		{"unexported", Names{Output: "output"}, Names{}, true},
		{"not an identifier", Names{Statement: "Query Text"}, Names{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			err := WithNames(tt.in)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Names)
		})
	}
}

func TestWithCapability(t *testing.T) {
	t.Run("alias", func(t *testing.T) {
		c := DefaultConfig()
		require.NoError(t, WithCapability(capability.EnumString, capability.Behind("strings"))(c))
		assert.Equal(t, capability.Behind("strings"), c.Capabilities.EnumString)
	})

	t.Run("invalid alias", func(t *testing.T) {
		err := WithCapability(capability.Query, capability.Behind("a b"))(DefaultConfig())
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("unknown capability", func(t *testing.T) {
		assert.Error(t, WithCapability("orm", capability.On())(DefaultConfig()))
	})

	t.Run("replace all", func(t *testing.T) {
		c := DefaultConfig()
		require.NoError(t, WithCapabilities(capability.Options{Serialization: capability.On()})(c))
		assert.Equal(t, capability.Off(), c.Capabilities.Builder)
		assert.Error(t, WithCapabilities(capability.Options{Query: capability.Behind("x||y")})(c))
	})
}

func TestApplyAll(t *testing.T) {
	c := DefaultConfig()
	err := c.ApplyAll(WithTarget(""), WithPackage(""), WithWorkers(0), WithTarget("out"))
	require.Error(t, err)
	assert.Equal(t, "out", c.Target)
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Package")
	assert.Contains(t, err.Error(), "Workers")
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig(WithPackage("example.com/app/db"), WithWorkers(2))
	require.NoError(t, err)
	assert.Equal(t, RuntimePackage, c.Runtime)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, capability.Default(), c.Capabilities)
	require.NoError(t, c.Validate())
	assert.Equal(t, "example.com/app/db/other", c.modulePath("other"))
	assert.Equal(t, "example.com/app/db", c.modulePath(""))

	_, err = NewConfig(WithTarget(""))
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewConfig(WithWorkers(-1)) })
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	assert.True(t, IsConfigError(c.Validate()))
	c.Package = RuntimePackage
	assert.Error(t, c.Validate())
}

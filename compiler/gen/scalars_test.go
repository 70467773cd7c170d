package gen

import (
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typeOf renders code as the right hand side of a type declaration.
func typeOf(t *testing.T, code jen.Code) string {
	t.Helper()
	f := jen.NewFile("x")
	f.Type().Id("T").Add(code)
	_, after, ok := strings.Cut(f.GoString(), "type T ")
	require.True(t, ok)
	return strings.TrimSpace(after)
}

func TestLookupScalar(t *testing.T) {
	t.Run("built-ins", func(t *testing.T) {
		tests := []struct {
			id   uuid.UUID
			want string
		}{
			{stdStr, "string"},
			{stdInt64, "int64"},
			{stdBool, "bool"},
			{stdBytes, "[]byte"},
			{stdUUID, "uuid.UUID"},
			{stdDatetime, "gelx.DateTime"},
			{pgTimestamptz, "gelx.DateTime"},
			{pgvectorVector, "gelx.Vector"},
		}
		for _, tt := range tests {
			st, ok := LookupScalar(tt.id)
			require.True(t, ok, tt.id)
			assert.Equal(t, tt.want, typeOf(t, st.Code(RuntimePackage)))
		}
	})

	t.Run("unmapped ids fall back to dynamic", func(t *testing.T) {
		id := uuid.MustParse("00000000-0000-0000-0000-000001000005")
		_, ok := LookupScalar(id)
		assert.False(t, ok)
		assert.Equal(t, "gelx.Dynamic", typeOf(t, scalarCode(id, RuntimePackage)))
	})

	t.Run("runtime override", func(t *testing.T) {
		assert.Equal(t, "rt.Decimal", typeOf(t, scalarCode(stdDecimal, "example.com/rt")))
	})
}

package gelx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gelx"
)

func TestNoDataError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := gelx.NewNoDataError("select User")
		assert.Equal(t, "gelx: query returned no data: select User", err.Error())
		assert.Equal(t, "gelx: query returned no data", gelx.NewNoDataError("").Error())
	})

	t.Run("IsNoData", func(t *testing.T) {
		err := gelx.NewNoDataError("select 1")
		assert.True(t, errors.Is(err, gelx.ErrNoData))
		assert.True(t, gelx.IsNoData(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, gelx.IsNoData(gelx.ErrNoData))
		assert.False(t, gelx.IsNoData(errors.New("other")))
		assert.False(t, gelx.IsNoData(nil))
	})
}

func TestMissingFieldError(t *testing.T) {
	err := gelx.NewMissingFieldError("Input", "Custom")
	assert.Equal(t, "gelx: Input.Custom is required", err.Error())
	assert.True(t, errors.Is(err, gelx.ErrMissingField))
	assert.True(t, gelx.IsMissingField(fmt.Errorf("build: %w", err)))
	assert.False(t, gelx.IsMissingField(gelx.ErrNoData))
}

func TestInvalidEnumError(t *testing.T) {
	err := gelx.NewInvalidEnumError("Color", "Purple")
	assert.Equal(t, `gelx: "Purple" is not a valid Color`, err.Error())
	assert.True(t, errors.Is(err, gelx.ErrInvalidEnum))
}

func TestCheckScalar(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000105")
	other := uuid.MustParse("00000000-0000-0000-0000-000000000101")

	require.NoError(t, gelx.CheckScalar(id, id, "default::Slug"))

	err := gelx.CheckScalar(other, id, "default::Slug")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gelx.ErrScalarMismatch))
	assert.Contains(t, err.Error(), "default::Slug")

	var mismatch *gelx.ScalarMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, other, mismatch.Actual)
}

func TestNewRange(t *testing.T) {
	lo, hi := 1, 10
	r := gelx.NewRange(&lo, &hi)
	assert.True(t, r.IncLower)
	assert.False(t, r.IncUpper)
	assert.False(t, r.Empty)

	open := gelx.NewRange[int](nil, &hi)
	assert.False(t, open.IncLower)
}

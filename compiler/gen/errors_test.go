package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewProtocolError("compile", "queries/get_user.edgeql", cause)

		assert.Contains(t, err.Error(), "gelx: protocol error")
		assert.Contains(t, err.Error(), "during compile")
		assert.Contains(t, err.Error(), "queries/get_user.edgeql")
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewProtocolError("fetch catalog", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.NotContains(t, err.Error(), "query:")
	})

	t.Run("Is matches ErrProtocol", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewProtocolError("fetch globals", "", nil))
		assert.True(t, errors.Is(err, ErrProtocol))
		assert.True(t, IsProtocolError(err))
		assert.False(t, IsProtocolError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Names.Input", "input", "must be an exported identifier")

		assert.Contains(t, err.Error(), "gelx: config error")
		assert.Contains(t, err.Error(), "Names.Input")
		assert.Contains(t, err.Error(), "input")
		assert.Contains(t, err.Error(), "must be an exported identifier")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrInvalidConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestContractError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := NewContractError("MultiRange", "descriptor is not supported", nil)

		assert.Equal(t, "gelx: contract violation on MultiRange: descriptor is not supported", err.Error())
	})

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("type position 9 out of range")
		err := NewContractError("Output", "", cause)

		assert.True(t, errors.Is(err, ErrContract))
		assert.True(t, errors.Is(err, cause))
		assert.True(t, IsContractError(err))
		assert.False(t, errors.Is(err, ErrProtocol))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("syntax error")
		err := NewGenerationError("format", "default.go", "gofmt failed", cause)

		assert.Contains(t, err.Error(), "gelx: generation error")
		assert.Contains(t, err.Error(), "phase format")
		assert.Contains(t, err.Error(), "file: default.go")
		assert.Contains(t, err.Error(), "gofmt failed")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("query", "", "", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, IsGenerationError(err))
	})
}

func TestWriteError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewWriteError("internal/db/index.go", cause)

	assert.Equal(t, "gelx: write internal/db/index.go: permission denied", err.Error())
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsWriteError(errors.Join(errors.New("other"), err)))
}

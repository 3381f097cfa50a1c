package guard_test

import (
	"errors"
	"testing"

	"lockerhub/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Cell must be created via NewCell")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsage demonstrates the intended embedding pattern.
func TestConstructorGuardUsage(t *testing.T) {
	type cellCode struct {
		value string
		guard guard.ConstructorGuard
	}

	errCodeNotConstructed := errors.New("cellCode must be created via newCellCode")

	newCellCode := func(value string) (cellCode, error) {
		if value == "" {
			return cellCode{}, errors.New("value is required")
		}
		return cellCode{value: value, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction", func(t *testing.T) {
		code, err := newCellCode("A1")

		require.NoError(t, err)
		require.NoError(t, code.guard.Validate(errCodeNotConstructed))
		assert.Equal(t, "A1", code.value)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var code cellCode

		err := code.guard.Validate(errCodeNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errCodeNotConstructed, err)
	})
}

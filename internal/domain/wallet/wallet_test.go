package wallet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		beforeCreation := time.Now()
		w, err := New(7, "Checking", "🏦", TypeBank, 100000, true)
		afterCreation := time.Now()

		require.NoError(t, err)
		require.NotNil(t, w)

		assert.Equal(t, int64(7), w.UserID)
		assert.Equal(t, "Checking", w.Name)
		assert.Equal(t, "🏦", w.Icon)
		assert.Equal(t, TypeBank, w.Type)
		assert.Equal(t, int64(100000), w.Balance)
		assert.True(t, w.IsDefault)

		assert.WithinDuration(t, beforeCreation, w.CreatedAt, afterCreation.Sub(beforeCreation)+time.Millisecond)
		assert.WithinDuration(t, w.CreatedAt, w.UpdatedAt, time.Millisecond)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := New(7, "", "", TypeCash, 0, false)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := New(7, "Stash", "", Type("crypto"), 0, false)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("NegativeInitialBalance", func(t *testing.T) {
		_, err := New(7, "Stash", "", TypeCash, -1, false)
		assert.ErrorIs(t, err, ErrNegativeBalance)
	})

	t.Run("ZeroInitialBalanceAllowed", func(t *testing.T) {
		w, err := New(7, "Stash", "", TypeCash, 0, false)
		require.NoError(t, err)
		assert.Equal(t, int64(0), w.Balance)
	})
}

func TestType_Valid(t *testing.T) {
	for _, typ := range []Type{TypeCash, TypeBank, TypeCard, TypeSavings} {
		assert.True(t, typ.Valid(), "%s should be valid", typ)
	}
	assert.False(t, Type("").Valid())
	assert.False(t, Type("crypto").Valid())
}

package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		deadline := time.Now().AddDate(0, 6, 0)

		beforeCreation := time.Now()
		g, err := New(7, "Emergency fund", "Three months of expenses", 100000, &deadline, "🛟", "#4CAF50")
		afterCreation := time.Now()

		require.NoError(t, err)
		require.NotNil(t, g)

		assert.Equal(t, int64(7), g.UserID)
		assert.Equal(t, "Emergency fund", g.Title)
		assert.Equal(t, int64(100000), g.TargetAmount)
		assert.Equal(t, int64(0), g.CurrentAmount)
		assert.Equal(t, &deadline, g.Deadline)
		assert.False(t, g.IsCompleted)
		assert.WithinDuration(t, beforeCreation, g.CreatedAt, afterCreation.Sub(beforeCreation)+time.Millisecond)
	})

	t.Run("NilDeadlineAllowed", func(t *testing.T) {
		g, err := New(7, "Emergency fund", "", 100000, nil, "", "")
		require.NoError(t, err)
		assert.Nil(t, g.Deadline)
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		_, err := New(7, "", "", 100000, nil, "", "")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("NonPositiveTarget", func(t *testing.T) {
		_, err := New(7, "Emergency fund", "", 0, nil, "", "")
		assert.ErrorIs(t, err, ErrInvalidTarget)

		_, err = New(7, "Emergency fund", "", -500, nil, "", "")
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestGoal_TargetReached(t *testing.T) {
	t.Run("BelowTarget", func(t *testing.T) {
		g := &Goal{TargetAmount: 100000, CurrentAmount: 99999}
		assert.False(t, g.TargetReached())
	})

	t.Run("ExactlyAtTarget", func(t *testing.T) {
		g := &Goal{TargetAmount: 100000, CurrentAmount: 100000}
		assert.True(t, g.TargetReached())
	})

	t.Run("OverTarget", func(t *testing.T) {
		g := &Goal{TargetAmount: 100000, CurrentAmount: 105000}
		assert.True(t, g.TargetReached())
	})
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	event := shared.NewGoalCompletedEvent(7, 11, "Emergency fund", 100000, 105000, 50, "corr-1")
	msg, err := outbox.NewGoalCompletedMessage(event)
	require.NoError(t, err)

	query := `
		INSERT INTO event_outbox \(event_id, user_id, payload, status, attempts, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
		RETURNING id
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(msg.EventID, msg.UserID, msg.Payload, msg.Status, msg.Attempts, msg.CreatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

		err := repo.Create(ctx, msg)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), msg.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_GetPending(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	// Anchored so the plain SELECT is not followed by a locking clause;
	// the poller runs this on the pool, outside any transaction.
	query := `
		SELECT id, event_id, user_id, payload, status, attempts, created_at, last_attempt_at
		FROM event_outbox
		WHERE status = \$1
		ORDER BY created_at ASC
		LIMIT \$2\s*$`

	t.Run("returns pending batch", func(t *testing.T) {
		now := time.Now()
		rows := pgxmock.NewRows([]string{"id", "event_id", "user_id", "payload", "status", "attempts", "created_at", "last_attempt_at"}).
			AddRow(int64(1), uuid.New(), int64(7), []byte(`{}`), shared.OutboxStatusPending, 0, now, nil).
			AddRow(int64(2), uuid.New(), int64(7), []byte(`{}`), shared.OutboxStatusPending, 1, now, &now)

		mock.ExpectQuery(query).WithArgs(shared.OutboxStatusPending, 10).WillReturnRows(rows)

		messages, err := repo.GetPending(ctx, 10)
		assert.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, int64(1), messages[0].ID)
		assert.Equal(t, 1, messages[1].Attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "event_id", "user_id", "payload", "status", "attempts", "created_at", "last_attempt_at"})
		mock.ExpectQuery(query).WithArgs(shared.OutboxStatusPending, 10).WillReturnRows(rows)

		messages, err := repo.GetPending(ctx, 10)
		assert.NoError(t, err)
		assert.Empty(t, messages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		UPDATE event_outbox
		SET status = \$1, last_attempt_at = NOW\(\)
		WHERE id = \$2
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shared.OutboxStatusProcessed, int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(ctx, 1, shared.OutboxStatusProcessed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing message", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shared.OutboxStatusFailedToPublish, int64(9)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, 9, shared.OutboxStatusFailedToPublish)
		assert.ErrorAs(t, err, &outbox.ErrMessageNotFound{})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_IncrementAttempts(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		UPDATE event_outbox
		SET attempts = attempts \+ 1, last_attempt_at = NOW\(\)
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.IncrementAttempts(ctx, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

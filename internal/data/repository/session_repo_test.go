package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionRepository_Revoke(t *testing.T) {
	token := uuid.NewString()

	t.Run("live session", func(t *testing.T) {
		db := &scriptedDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 1")}}

		require.NoError(t, NewSessionRepository(db, zap.NewNop()).Revoke(context.Background(), token))
		assert.Equal(t, []any{token}, db.args[0])
	})

	t.Run("already revoked", func(t *testing.T) {
		db := &scriptedDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 0")}}

		err := NewSessionRepository(db, zap.NewNop()).Revoke(context.Background(), token)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestSessionRepository_CleanExpiredSessions(t *testing.T) {
	db := &scriptedDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("DELETE 3")}}

	require.NoError(t, NewSessionRepository(db, zap.NewNop()).CleanExpiredSessions(context.Background()))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "DELETE FROM sessions")
	assert.Equal(t, []any{sessionRetention}, db.args[0])
}

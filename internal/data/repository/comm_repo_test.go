package repository

import (
	"context"
	"reflect"
	"testing"
	"time"

	"marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedRow struct {
	values []any
	err    error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// scriptedDB hands out canned rows and command tags in call order.
type scriptedDB struct {
	rows  []pgx.Row
	tags  []pgconn.CommandTag
	execs []string
	args  [][]any
}

func (db *scriptedDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (db *scriptedDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if len(db.rows) == 0 {
		return scriptedRow{err: errors.New("unexpected query row")}
	}
	row := db.rows[0]
	db.rows = db.rows[1:]
	return row
}

func (db *scriptedDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	db.args = append(db.args, args)
	if len(db.tags) == 0 {
		return pgconn.CommandTag{}, errors.New("unexpected exec")
	}
	tag := db.tags[0]
	db.tags = db.tags[1:]
	return tag, nil
}

func (db *scriptedDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("unexpected begin")
}

func (db *scriptedDB) Ping(ctx context.Context) error { return nil }

func (db *scriptedDB) Close() {}

func threadRow(thread *entity.CommThread) scriptedRow {
	return scriptedRow{values: []any{thread.ID, thread.WebappID, thread.VersionID, thread.CreatedAt}}
}

func TestCommRepository_GetOrCreateThread(t *testing.T) {
	webappID := uuid.New()
	noRow := scriptedRow{err: pgx.ErrNoRows}

	t.Run("existing", func(t *testing.T) {
		existing := &entity.CommThread{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			WebappID:   webappID,
		}
		db := &scriptedDB{rows: []pgx.Row{threadRow(existing)}}

		thread, created, err := NewCommRepository(db, zap.NewNop()).GetOrCreateThread(context.Background(), webappID, nil)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, thread.ID)
		assert.Empty(t, db.execs)
	})

	t.Run("created", func(t *testing.T) {
		version := uuid.New()
		db := &scriptedDB{
			rows: []pgx.Row{noRow},
			tags: []pgconn.CommandTag{pgconn.NewCommandTag("INSERT 0 1")},
		}

		thread, created, err := NewCommRepository(db, zap.NewNop()).GetOrCreateThread(context.Background(), webappID, &version)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, webappID, thread.WebappID)
		assert.Equal(t, &version, thread.VersionID)
		require.Len(t, db.execs, 1)
		assert.Contains(t, db.execs[0], "ON CONFLICT DO NOTHING")
	})

	t.Run("concurrent insert wins", func(t *testing.T) {
		winner := &entity.CommThread{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			WebappID:   webappID,
		}
		db := &scriptedDB{
			rows: []pgx.Row{noRow, threadRow(winner)},
			tags: []pgconn.CommandTag{pgconn.NewCommandTag("INSERT 0 0")},
		}

		thread, created, err := NewCommRepository(db, zap.NewNop()).GetOrCreateThread(context.Background(), webappID, nil)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, winner.ID, thread.ID)
	})

	t.Run("conflict without row", func(t *testing.T) {
		db := &scriptedDB{
			rows: []pgx.Row{noRow, noRow},
			tags: []pgconn.CommandTag{pgconn.NewCommandTag("INSERT 0 0")},
		}

		_, _, err := NewCommRepository(db, zap.NewNop()).GetOrCreateThread(context.Background(), webappID, nil)

		assert.Error(t, err)
	})
}

package repository

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CommRepository stores reviewer/developer communication threads and notes.
type CommRepository interface {
	GetOrCreateThread(ctx context.Context, webappID uuid.UUID, versionID *uuid.UUID) (*entity.CommThread, bool, error)
	FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.CommThread, error)
	FindThreadsByWebapp(ctx context.Context, webappID uuid.UUID) ([]*entity.CommThread, error)
	CreateNote(ctx context.Context, note *entity.CommNote) error
	FindNotesByThread(ctx context.Context, threadID uuid.UUID) ([]*entity.CommNote, error)
}

type commRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommRepository(db database.PgxIface, log *zap.Logger) CommRepository {
	return &commRepository{
		db:  db,
		log: log.With(zap.String("repository", "comm")),
	}
}

// GetOrCreateThread returns the thread for an app version; the bool is true
// when it was created by this call. A concurrent insert for the same app
// version is resolved by re-reading the winner's row.
func (r *commRepository) GetOrCreateThread(ctx context.Context, webappID uuid.UUID, versionID *uuid.UUID) (*entity.CommThread, bool, error) {
	thread, err := r.findThread(ctx, webappID, versionID)
	if err != nil {
		return nil, false, err
	}
	if thread != nil {
		return thread, false, nil
	}

	thread = &entity.CommThread{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		WebappID:   webappID,
		VersionID:  versionID,
	}

	insert := `
		INSERT INTO comm_threads (id, webapp_id, version_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`
	result, err := r.db.Exec(ctx, insert, thread.ID, thread.WebappID, thread.VersionID, thread.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create thread", zap.Error(err), zap.String("webapp_id", webappID.String()))
		return nil, false, fmt.Errorf("create thread for app %s: %w", webappID.String(), err)
	}

	if result.RowsAffected() == 0 {
		existing, err := r.findThread(ctx, webappID, versionID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("thread for app %s conflicted but was not found", webappID.String())
		}
		return existing, false, nil
	}

	r.log.Info("Comm thread created",
		zap.String("thread_id", thread.ID.String()),
		zap.String("webapp_id", webappID.String()),
	)
	return thread, true, nil
}

func (r *commRepository) findThread(ctx context.Context, webappID uuid.UUID, versionID *uuid.UUID) (*entity.CommThread, error) {
	query := `
		SELECT id, webapp_id, version_id, created_at
		FROM comm_threads
		WHERE webapp_id = $1 AND version_id IS NOT DISTINCT FROM $2
	`

	var thread entity.CommThread
	err := r.db.QueryRow(ctx, query, webappID, versionID).Scan(
		&thread.ID,
		&thread.WebappID,
		&thread.VersionID,
		&thread.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find thread", zap.Error(err), zap.String("webapp_id", webappID.String()))
		return nil, fmt.Errorf("find thread for app %s: %w", webappID.String(), err)
	}

	return &thread, nil
}

func (r *commRepository) FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.CommThread, error) {
	query := `SELECT id, webapp_id, version_id, created_at FROM comm_threads WHERE id = $1`

	var thread entity.CommThread
	err := r.db.QueryRow(ctx, query, id).Scan(
		&thread.ID,
		&thread.WebappID,
		&thread.VersionID,
		&thread.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find thread", zap.Error(err), zap.String("thread_id", id.String()))
		return nil, fmt.Errorf("find thread %s: %w", id.String(), err)
	}

	return &thread, nil
}

func (r *commRepository) FindThreadsByWebapp(ctx context.Context, webappID uuid.UUID) ([]*entity.CommThread, error) {
	query := `
		SELECT id, webapp_id, version_id, created_at
		FROM comm_threads
		WHERE webapp_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, webappID)
	if err != nil {
		r.log.Error("Failed to list threads", zap.Error(err), zap.String("webapp_id", webappID.String()))
		return nil, fmt.Errorf("list threads for app %s: %w", webappID.String(), err)
	}
	defer rows.Close()

	var threads []*entity.CommThread
	for rows.Next() {
		var thread entity.CommThread
		if err := rows.Scan(&thread.ID, &thread.WebappID, &thread.VersionID, &thread.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan thread row: %w", err)
		}
		threads = append(threads, &thread)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate thread rows: %w", err)
	}

	return threads, nil
}

func (r *commRepository) CreateNote(ctx context.Context, note *entity.CommNote) error {
	query := `
		INSERT INTO comm_notes (id, thread_id, author_id, note_type, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		note.ID,
		note.ThreadID,
		note.AuthorID,
		note.NoteType,
		note.Body,
		note.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create note",
			zap.Error(err),
			zap.String("thread_id", note.ThreadID.String()),
		)
		return fmt.Errorf("create note in thread %s: %w", note.ThreadID.String(), err)
	}

	return nil
}

// FindNotesByThread returns notes oldest first with their authors attached.
func (r *commRepository) FindNotesByThread(ctx context.Context, threadID uuid.UUID) ([]*entity.CommNote, error) {
	query := `
		SELECT n.id, n.thread_id, n.author_id, n.note_type, n.body, n.created_at,
		       u.username, u.email, u.display_name
		FROM comm_notes n
		LEFT JOIN users u ON u.id = n.author_id
		WHERE n.thread_id = $1
		ORDER BY n.created_at
	`

	rows, err := r.db.Query(ctx, query, threadID)
	if err != nil {
		r.log.Error("Failed to list notes", zap.Error(err), zap.String("thread_id", threadID.String()))
		return nil, fmt.Errorf("list notes for thread %s: %w", threadID.String(), err)
	}
	defer rows.Close()

	var notes []*entity.CommNote
	for rows.Next() {
		var (
			note        entity.CommNote
			username    *string
			email       *string
			displayName *string
		)
		if err := rows.Scan(
			&note.ID,
			&note.ThreadID,
			&note.AuthorID,
			&note.NoteType,
			&note.Body,
			&note.CreatedAt,
			&username,
			&email,
			&displayName,
		); err != nil {
			return nil, fmt.Errorf("scan note row: %w", err)
		}
		if note.AuthorID != nil && username != nil {
			note.Author = &entity.UserProfile{
				Base:        entity.Base{ID: *note.AuthorID},
				Username:    *username,
				Email:       email,
				DisplayName: displayName,
			}
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note rows: %w", err)
	}

	return notes, nil
}

package repository

import (
	"context"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type WebappRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Webapp, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Webapp, error)
	FindListedByAuthor(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Webapp, error)
	IsAuthor(ctx context.Context, webappID, userID uuid.UUID) (bool, error)
	FindVersion(ctx context.Context, id uuid.UUID) (*entity.Version, error)
}

type webappRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWebappRepository(db database.PgxIface, log *zap.Logger) WebappRepository {
	return &webappRepository{
		db:  db,
		log: log.With(zap.String("repository", "webapp")),
	}
}

const webappColumns = `w.id, w.app_slug, w.name, w.description, w.icon_type, w.icon_hash,
	w.status, w.current_version_id, w.created_at, w.updated_at`

func scanWebapp(row pgx.Row) (*entity.Webapp, error) {
	var app entity.Webapp
	err := row.Scan(
		&app.ID,
		&app.AppSlug,
		&app.Name,
		&app.Description,
		&app.IconType,
		&app.IconHash,
		&app.Status,
		&app.CurrentVersionID,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *webappRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Webapp, error) {
	query := `SELECT ` + webappColumns + ` FROM webapps w WHERE w.id = $1`

	app, err := scanWebapp(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find webapp by ID", zap.Error(err), zap.String("webapp_id", id.String()))
		return nil, fmt.Errorf("find webapp %s: %w", id.String(), err)
	}

	return app, nil
}

func (r *webappRepository) FindBySlug(ctx context.Context, slug string) (*entity.Webapp, error) {
	query := `SELECT ` + webappColumns + ` FROM webapps w WHERE w.app_slug = $1`

	app, err := scanWebapp(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find webapp by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find webapp %s: %w", slug, err)
	}

	return app, nil
}

// FindListedByAuthor returns the apps a user is a listed author of, by name.
func (r *webappRepository) FindListedByAuthor(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Webapp, error) {
	query := `
		SELECT ` + webappColumns + `
		FROM webapps w
		JOIN addons_users au ON au.webapp_id = w.id
		WHERE au.user_id = $1 AND au.listed = TRUE
		ORDER BY w.name
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.log.Error("Failed to find apps by author",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find apps for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var apps []*entity.Webapp
	for rows.Next() {
		app, err := scanWebapp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webapp row: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webapp rows: %w", err)
	}

	return apps, nil
}

func (r *webappRepository) IsAuthor(ctx context.Context, webappID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM addons_users WHERE webapp_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, webappID, userID).Scan(&exists); err != nil {
		r.log.Error("Failed to check authorship", zap.Error(err))
		return false, fmt.Errorf("check author of %s: %w", webappID.String(), err)
	}

	return exists, nil
}

func (r *webappRepository) FindVersion(ctx context.Context, id uuid.UUID) (*entity.Version, error) {
	query := `SELECT id, webapp_id, version, created_at FROM versions WHERE id = $1`

	var version entity.Version
	err := r.db.QueryRow(ctx, query, id).Scan(
		&version.ID,
		&version.WebappID,
		&version.Version,
		&version.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find version", zap.Error(err), zap.String("version_id", id.String()))
		return nil, fmt.Errorf("find version %s: %w", id.String(), err)
	}

	return &version, nil
}

package repository

import (
	"context"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type BuildIDRepository interface {
	FindByRepo(ctx context.Context, repo string) (*entity.DeployBuildID, error)
	Upsert(ctx context.Context, buildID *entity.DeployBuildID) error
}

type buildIDRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBuildIDRepository(db database.PgxIface, log *zap.Logger) BuildIDRepository {
	return &buildIDRepository{
		db:  db,
		log: log.With(zap.String("repository", "build_id")),
	}
}

func (r *buildIDRepository) FindByRepo(ctx context.Context, repo string) (*entity.DeployBuildID, error) {
	query := `SELECT repo, build_id, modified FROM deploy_build_ids WHERE repo = $1`

	var buildID entity.DeployBuildID
	err := r.db.QueryRow(ctx, query, repo).Scan(&buildID.Repo, &buildID.BuildID, &buildID.Modified)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find build id", zap.Error(err), zap.String("repo", repo))
		return nil, fmt.Errorf("find build id for %s: %w", repo, err)
	}

	return &buildID, nil
}

// Upsert records the build id of a fresh deploy.
func (r *buildIDRepository) Upsert(ctx context.Context, buildID *entity.DeployBuildID) error {
	query := `
		INSERT INTO deploy_build_ids (repo, build_id, modified)
		VALUES ($1, $2, $3)
		ON CONFLICT (repo) DO UPDATE SET build_id = EXCLUDED.build_id, modified = EXCLUDED.modified
	`

	if _, err := r.db.Exec(ctx, query, buildID.Repo, buildID.BuildID, buildID.Modified); err != nil {
		r.log.Error("Failed to save build id", zap.Error(err), zap.String("repo", buildID.Repo))
		return fmt.Errorf("save build id for %s: %w", buildID.Repo, err)
	}

	r.log.Info("Build id recorded",
		zap.String("repo", buildID.Repo),
		zap.String("build_id", buildID.BuildID),
	)
	return nil
}

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

// GroupRepository manages access groups and their memberships.
type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	FindAll(ctx context.Context) ([]*entity.Group, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
}

type groupRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGroupRepository(db database.PgxIface, log *zap.Logger) GroupRepository {
	return &groupRepository{
		db:  db,
		log: log.With(zap.String("repository", "group")),
	}
}

func (r *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	query := `
		INSERT INTO groups (id, name, rules, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, group.ID, group.Name, group.Rules, group.Notes, group.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create group", zap.Error(err), zap.String("name", group.Name))
		return fmt.Errorf("create group %s: %w", group.Name, err)
	}

	return nil
}

func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	query := `SELECT id, name, rules, notes, created_at FROM groups WHERE id = $1`

	var group entity.Group
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Rules,
		&group.Notes,
		&group.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find group", zap.Error(err), zap.String("group_id", id.String()))
		return nil, fmt.Errorf("find group %s: %w", id.String(), err)
	}

	return &group, nil
}

func (r *groupRepository) FindAll(ctx context.Context) ([]*entity.Group, error) {
	query := `SELECT id, name, rules, notes, created_at FROM groups ORDER BY name`
	return r.query(ctx, query)
}

// FindByUserID returns every group the user is a member of.
func (r *groupRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Group, error) {
	query := `
		SELECT g.id, g.name, g.rules, g.notes, g.created_at
		FROM groups g
		JOIN groups_users gu ON gu.group_id = g.id
		WHERE gu.user_id = $1
		ORDER BY g.name
	`
	return r.query(ctx, query, userID)
}

func (r *groupRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Group, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query groups", zap.Error(err))
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []*entity.Group
	for rows.Next() {
		var group entity.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Rules,
			&group.Notes,
			&group.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}

	return groups, nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `INSERT INTO groups_users (group_id, user_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, groupID, userID)
	if isUniqueViolation(err) {
		return errors.Wrapf(ErrAlreadyExists, "user %s in group %s", userID, groupID)
	}
	if err != nil {
		r.log.Error("Failed to add group member",
			zap.Error(err),
			zap.String("group_id", groupID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("add user %s to group %s: %w", userID, groupID, err)
	}

	r.log.Info("Group member added",
		zap.String("group_id", groupID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `DELETE FROM groups_users WHERE group_id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, groupID, userID)
	if err != nil {
		r.log.Error("Failed to remove group member",
			zap.Error(err),
			zap.String("group_id", groupID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("remove user %s from group %s: %w", userID, groupID, err)
	}

	if result.RowsAffected() == 0 {
		return errors.Wrapf(ErrNotFound, "user %s in group %s", userID, groupID)
	}

	return nil
}

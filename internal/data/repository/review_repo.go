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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// Top-level reviews only; replies are never listed as reviews.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByWebappID(ctx context.Context, webappID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByWebappID(ctx context.Context, webappID uuid.UUID) (int64, error)
	FindByUserAndWebapp(ctx context.Context, userID, webappID uuid.UUID) (*entity.Review, error)

	FindReplies(ctx context.Context, reviewIDs []uuid.UUID) (map[uuid.UUID]*entity.Review, error)
	FindReplyTo(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error)

	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, webapp_id, version_id, user_id, reply_to, rating, body, created_at, updated_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.WebappID,
		&review.VersionID,
		&review.UserID,
		&review.ReplyTo,
		&review.Rating,
		&review.Body,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, webapp_id, version_id, user_id, reply_to, rating, body,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.WebappID,
		review.VersionID,
		review.UserID,
		review.ReplyTo,
		review.Rating,
		review.Body,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return errors.Wrap(ErrAlreadyExists, "review")
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("webapp_id", review.WebappID.String()),
		)
		return fmt.Errorf("create review for app %s by user %s: %w",
			review.WebappID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1 AND reply_to IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, userID, limit, offset)
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE user_id = $1 AND reply_to IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by user", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count reviews by user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByWebappID(ctx context.Context, webappID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE webapp_id = $1 AND reply_to IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, webappID, limit, offset)
}

func (r *reviewRepository) CountByWebappID(ctx context.Context, webappID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE webapp_id = $1 AND reply_to IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, webappID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by app", zap.Error(err), zap.String("webapp_id", webappID.String()))
		return 0, fmt.Errorf("count reviews by app %s: %w", webappID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUserAndWebapp(ctx context.Context, userID, webappID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1 AND webapp_id = $2 AND reply_to IS NULL
		LIMIT 1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, userID, webappID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and app",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("webapp_id", webappID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and app %s: %w",
			userID.String(), webappID.String(), err)
	}

	return review, nil
}

// FindReplies maps review id -> its reply for every id that has one.
func (r *reviewRepository) FindReplies(ctx context.Context, reviewIDs []uuid.UUID) (map[uuid.UUID]*entity.Review, error) {
	replies := make(map[uuid.UUID]*entity.Review)
	if len(reviewIDs) == 0 {
		return replies, nil
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE reply_to = ANY($1)`

	list, err := r.list(ctx, query, reviewIDs)
	if err != nil {
		return nil, err
	}
	for _, reply := range list {
		replies[*reply.ReplyTo] = reply
	}

	return replies, nil
}

func (r *reviewRepository) FindReplyTo(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE reply_to = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, reviewID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reply", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("find reply to %s: %w", reviewID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query reviews", zap.Error(err))
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, body = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Body,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return errors.Wrapf(ErrNotFound, "review %s", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return errors.Wrapf(ErrNotFound, "review %s", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

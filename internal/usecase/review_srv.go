package usecase

import (
	"context"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Reply(ctx context.Context, userID, reviewID uuid.UUID, req *request.ReplyRequest) (*response.ReviewResponse, error)
	GetAppReviews(ctx context.Context, slug string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	webappID, err := uuid.Parse(req.WebappID)
	if err != nil {
		return nil, fieldError("app", "Must be a valid UUID.")
	}

	app, err := s.repo.Webapp.FindByID(ctx, webappID)
	if err != nil {
		return nil, errors.Wrap(err, "find app")
	}
	if app == nil || !app.IsPublic() {
		return nil, errors.Wrapf(ErrNotFound, "app %s", req.WebappID)
	}

	existing, err := s.repo.Review.FindByUserAndWebapp(ctx, userID, webappID)
	if err != nil {
		return nil, errors.Wrap(err, "check existing review")
	}
	if existing != nil {
		return nil, errors.Wrap(ErrConflict, "user already reviewed this app")
	}

	now := time.Now()
	rating := req.Rating
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WebappID:  webappID,
		VersionID: app.CurrentVersionID,
		UserID:    userID,
		Rating:    &rating,
		Body:      req.Body,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.Wrap(ErrConflict, "user already reviewed this app")
		}
		return nil, errors.Wrap(err, "create review")
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("webapp_id", webappID.String()),
		zap.Int("rating", rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

// Reply lets an author of the reviewed app answer a review once.
func (s *reviewService) Reply(ctx context.Context, userID, reviewID uuid.UUID, req *request.ReplyRequest) (*response.ReviewResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, errors.Wrap(err, "find review")
	}
	if review == nil {
		return nil, errors.Wrapf(ErrNotFound, "review %s", reviewID.String())
	}
	if review.IsReply() {
		return nil, errors.Wrap(ErrInvalidInput, "cannot reply to a reply")
	}

	isAuthor, err := s.repo.Webapp.IsAuthor(ctx, review.WebappID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "check authorship")
	}
	if !isAuthor {
		return nil, errors.Wrap(ErrForbidden, "only app authors can reply")
	}

	existing, err := s.repo.Review.FindReplyTo(ctx, reviewID)
	if err != nil {
		return nil, errors.Wrap(err, "check existing reply")
	}
	if existing != nil {
		return nil, errors.Wrap(ErrConflict, "review already has a reply")
	}

	now := time.Now()
	reply := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WebappID:  review.WebappID,
		VersionID: review.VersionID,
		UserID:    userID,
		ReplyTo:   &review.ID,
		Body:      req.Body,
	}

	if err := s.repo.Review.Create(ctx, reply); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.Wrap(ErrConflict, "review already has a reply")
		}
		return nil, errors.Wrap(err, "create reply")
	}

	s.log.Info("Review reply created",
		zap.String("review_id", reviewID.String()),
		zap.String("reply_id", reply.ID.String()),
	)

	resp := response.ReviewToResponse(reply)
	return &resp, nil
}

func (s *reviewService) GetAppReviews(ctx context.Context, slug string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	app, err := s.repo.Webapp.FindBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "find app")
	}
	if app == nil {
		return nil, errors.Wrapf(ErrNotFound, "app %s", slug)
	}

	reviews, err := s.repo.Review.FindByWebappID(ctx, app.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list app reviews")
	}

	total, err := s.repo.Review.CountByWebappID(ctx, app.ID)
	if err != nil {
		return nil, errors.Wrap(err, "count app reviews")
	}

	ids := make([]uuid.UUID, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.ID)
	}

	replies, err := s.repo.Review.FindReplies(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "load replies")
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp := response.ReviewToResponse(review)
		if reply, ok := replies[review.ID]; ok {
			replyResp := response.ReviewToResponse(reply)
			resp.Reply = &replyResp
		}
		data = append(data, resp)
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	review, err := s.ownReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		if review.IsReply() {
			return nil, fieldError("rating", "Replies cannot be rated.")
		}
		review.Rating = req.Rating
	}
	if req.Body != nil {
		review.Body = *req.Body
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "review %s", reviewID.String())
		}
		return nil, errors.Wrap(err, "update review")
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	if _, err := s.ownReview(ctx, userID, reviewID); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "review %s", reviewID.String())
		}
		return errors.Wrap(err, "delete review")
	}
	return nil
}

func (s *reviewService) ownReview(ctx context.Context, userID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, errors.Wrap(err, "find review")
	}
	if review == nil {
		return nil, errors.Wrapf(ErrNotFound, "review %s", reviewID.String())
	}
	if review.UserID != userID {
		return nil, errors.Wrap(ErrForbidden, "review belongs to another user")
	}
	return review, nil
}

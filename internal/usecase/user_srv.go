package usecase

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DefaultMyAppsCount is how many apps MyApps returns when n is not positive.
const DefaultMyAppsCount = 8

const (
	msgRequired   = "This field is required."
	msgNoSuchUser = "No user with that email."
)

type UserService interface {
	// Load returns the user with groups attached, or ErrNotFound.
	Load(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	Reviews(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	MyApps(ctx context.Context, userID uuid.UUID, n int) ([]response.WebappResponse, error)
	Anonymize(ctx context.Context, userID uuid.UUID) error

	// CleanEmail resolves a form email to an existing user.
	CleanEmail(ctx context.Context, email string) (*entity.UserProfile, error)

	// Admin
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	LookupByEmail(ctx context.Context, email string) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) Load(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	if user == nil {
		return nil, errors.Wrapf(ErrNotFound, "user %s", userID.String())
	}

	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) loadGroups(ctx context.Context, user *entity.UserProfile) error {
	groups, err := s.repo.Group.FindByUserID(ctx, user.ID)
	if err != nil {
		return errors.Wrap(err, "load groups")
	}
	user.Groups = groups
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	user, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
	}
	if req.Lang != nil {
		tag, err := language.Parse(*req.Lang)
		if err != nil {
			return nil, fieldError("lang", "Select a valid choice.")
		}
		lang := tag.String()
		user.Lang = &lang
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Reviews lists the user's own reviews; developer replies are excluded.
func (s *userService) Reviews(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list user reviews")
	}

	total, err := s.repo.Review.CountByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "count user reviews")
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		if review.IsReply() {
			continue
		}
		data = append(data, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *userService) MyApps(ctx context.Context, userID uuid.UUID, n int) ([]response.WebappResponse, error) {
	if n <= 0 {
		n = DefaultMyAppsCount
	}

	apps, err := s.repo.Webapp.FindListedByAuthor(ctx, userID, n)
	if err != nil {
		return nil, errors.Wrap(err, "list my apps")
	}

	data := make([]response.WebappResponse, 0, len(apps))
	for _, app := range apps {
		data = append(data, response.WebappToResponse(app))
	}
	return data, nil
}

// Anonymize scrubs personal data and ends every session of the user.
func (s *userService) Anonymize(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "find user")
	}
	if user == nil {
		return errors.Wrapf(ErrNotFound, "user %s", userID.String())
	}

	user.Anonymize(time.Now())
	if err := s.repo.User.Update(ctx, user); err != nil {
		return errors.Wrap(err, "anonymize user")
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		return errors.Wrap(err, "revoke sessions")
	}

	s.log.Info("User anonymized", zap.String("user_id", userID.String()))
	return nil
}

func (s *userService) CleanEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fieldError("email", msgRequired)
	}
	if err := utils.ValidateVar(email, "email"); err != nil {
		return nil, fieldError("email", msgNoSuchUser)
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	if user == nil {
		return nil, fieldError("email", msgNoSuchUser)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count users")
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		if err := s.loadGroups(ctx, user); err != nil {
			return nil, err
		}
		data = append(data, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *userService) LookupByEmail(ctx context.Context, email string) (*response.UserResponse, error) {
	user, err := s.CleanEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ActivateLang returns ctx with the user's language active, or ctx unchanged
// when the user has no usable language preference.
func ActivateLang(ctx context.Context, user *entity.UserProfile) context.Context {
	if user == nil || user.Lang == nil || *user.Lang == "" {
		return ctx
	}

	tag, err := language.Parse(*user.Lang)
	if err != nil {
		return ctx
	}
	return utils.SetLanguageContext(ctx, tag)
}

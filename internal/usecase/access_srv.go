package usecase

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/access"
	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AccessService manages groups and answers permission questions.
type AccessService interface {
	ListGroups(ctx context.Context) ([]response.GroupResponse, error)
	CreateGroup(ctx context.Context, req *request.CreateGroupRequest) (*response.GroupResponse, error)
	AddMember(ctx context.Context, groupID uuid.UUID, req *request.UserEmailRequest) (*response.UserResponse, error)
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error

	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	ActionAllowed(ctx context.Context, userID uuid.UUID, app, action string) (bool, error)
}

type accessService struct {
	repo  *repository.Repository
	users UserService
	log   *zap.Logger
}

func NewAccessService(repo *repository.Repository, users UserService, log *zap.Logger) AccessService {
	return &accessService{
		repo:  repo,
		users: users,
		log:   log.With(zap.String("service", "access")),
	}
}

func (s *accessService) ListGroups(ctx context.Context) ([]response.GroupResponse, error) {
	groups, err := s.repo.Group.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list groups")
	}

	data := make([]response.GroupResponse, 0, len(groups))
	for _, group := range groups {
		data = append(data, response.GroupToResponse(group))
	}
	return data, nil
}

func (s *accessService) CreateGroup(ctx context.Context, req *request.CreateGroupRequest) (*response.GroupResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	for _, rule := range strings.Split(req.Rules, ",") {
		if _, _, ok := strings.Cut(strings.TrimSpace(rule), ":"); !ok {
			return nil, fieldError("rules", "Rules must be comma-separated App:Action pairs.")
		}
	}

	group := &entity.Group{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       strings.TrimSpace(req.Name),
		Rules:      strings.TrimSpace(req.Rules),
		Notes:      req.Notes,
	}

	if err := s.repo.Group.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.Wrapf(ErrConflict, "group %s", group.Name)
		}
		return nil, errors.Wrap(err, "create group")
	}

	s.log.Info("Group created",
		zap.String("group_id", group.ID.String()),
		zap.String("rules", group.Rules),
	)

	resp := response.GroupToResponse(group)
	return &resp, nil
}

func (s *accessService) AddMember(ctx context.Context, groupID uuid.UUID, req *request.UserEmailRequest) (*response.UserResponse, error) {
	group, err := s.repo.Group.FindByID(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "find group")
	}
	if group == nil {
		return nil, errors.Wrapf(ErrNotFound, "group %s", groupID.String())
	}

	user, err := s.users.CleanEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Group.AddMember(ctx, groupID, user.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.Wrap(ErrConflict, "user is already a member")
		}
		return nil, errors.Wrap(err, "add member")
	}

	s.log.Info("Group member added",
		zap.String("group_id", groupID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Bool("grants_admin", group.GrantsAdmin()),
	)

	return s.users.GetProfile(ctx, user.ID)
}

func (s *accessService) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	if err := s.repo.Group.RemoveMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errors.Wrap(ErrNotFound, "membership")
		}
		return errors.Wrap(err, "remove member")
	}

	s.log.Info("Group member removed",
		zap.String("group_id", groupID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (s *accessService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.users.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsStaff(), nil
}

func (s *accessService) ActionAllowed(ctx context.Context, userID uuid.UUID, app, action string) (bool, error) {
	groups, err := s.repo.Group.FindByUserID(ctx, userID)
	if err != nil {
		return false, errors.Wrap(err, "load groups")
	}

	rules := make([]string, 0, len(groups))
	for _, g := range groups {
		rules = append(rules, g.Rules)
	}
	return access.ActionAllowed(rules, app, action), nil
}

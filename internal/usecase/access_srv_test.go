package usecase

import (
	"context"
	"testing"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccessService(repo *repository.Repository) AccessService {
	return NewAccessService(repo, NewUserService(repo, testLog), testLog)
}

func TestAccessService_IsAdmin(t *testing.T) {
	tests := []struct {
		name   string
		groups []*entity.Group
		want   bool
	}{
		{"no groups", []*entity.Group{}, false},
		{"admins group", []*entity.Group{{Name: "Admins", Rules: "*:*"}}, true},
		{"api group", []*entity.Group{{Name: "API", Rules: "API.Users:*"}}, false},
		{"membership removed", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newTestRepos()
			user := regularUser()
			m.User.On("FindByID", mock.Anything, user.ID).Return(user, nil)
			m.Group.On("FindByUserID", mock.Anything, user.ID).Return(tt.groups, nil)

			got, err := newAccessService(repo).IsAdmin(context.Background(), user.ID)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessService_IsAdmin_UnknownUser(t *testing.T) {
	m, repo := newTestRepos()
	id := uuid.New()
	m.User.On("FindByID", mock.Anything, id).Return(nil, nil)

	got, err := newAccessService(repo).IsAdmin(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, got)
}

func TestAccessService_ActionAllowed(t *testing.T) {
	m, repo := newTestRepos()
	id := uuid.New()
	m.Group.On("FindByUserID", mock.Anything, id).
		Return([]*entity.Group{{Rules: "Apps:Review, Apps:Edit"}}, nil)

	svc := newAccessService(repo)

	ok, err := svc.ActionAllowed(context.Background(), id, "Apps", "Review")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ActionAllowed(context.Background(), id, "Users", "Edit")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccessService_AddMember(t *testing.T) {
	m, repo := newTestRepos()
	user := regularUser()
	group := &entity.Group{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Admins", Rules: "*:*"}

	m.Group.On("FindByID", mock.Anything, group.ID).Return(group, nil)
	m.User.On("FindByEmail", mock.Anything, "regular@mozilla.com").Return(user, nil)
	m.Group.On("AddMember", mock.Anything, group.ID, user.ID).Return(nil)
	m.User.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	m.Group.On("FindByUserID", mock.Anything, user.ID).Return([]*entity.Group{group}, nil)

	profile, err := newAccessService(repo).AddMember(context.Background(), group.ID,
		&request.UserEmailRequest{Email: "regular@mozilla.com"})

	require.NoError(t, err)
	assert.True(t, profile.IsStaff)
	m.Group.AssertExpectations(t)
}

func TestAccessService_AddMember_EmptyEmail(t *testing.T) {
	m, repo := newTestRepos()
	group := &entity.Group{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Admins", Rules: "*:*"}
	m.Group.On("FindByID", mock.Anything, group.ID).Return(group, nil)

	_, err := newAccessService(repo).AddMember(context.Background(), group.ID, &request.UserEmailRequest{})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields["email"])
	m.Group.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccessService_CreateGroup(t *testing.T) {
	m, repo := newTestRepos()
	m.Group.On("Create", mock.Anything, mock.AnythingOfType("*entity.Group")).Return(nil)

	svc := newAccessService(repo)

	group, err := svc.CreateGroup(context.Background(), &request.CreateGroupRequest{Name: "Admins", Rules: "*:*"})
	require.NoError(t, err)
	assert.True(t, group.GrantsAdmin)

	_, err = svc.CreateGroup(context.Background(), &request.CreateGroupRequest{Name: "Bad", Rules: "nonsense"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "rules")
}

func TestAccessService_RemoveMember_NotFound(t *testing.T) {
	m, repo := newTestRepos()
	groupID, userID := uuid.New(), uuid.New()
	m.Group.On("RemoveMember", mock.Anything, groupID, userID).
		Return(errors.Wrap(repository.ErrNotFound, "membership"))

	err := newAccessService(repo).RemoveMember(context.Background(), groupID, userID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

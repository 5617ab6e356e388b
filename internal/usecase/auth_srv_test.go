package usecase

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewAuthService(repo, testConfig(), testLog)

	m.User.On("FindByEmail", mock.Anything, "new@mozilla.com").Return(nil, nil)
	m.User.On("FindByUsername", mock.Anything, "newuser").Return(nil, nil)
	m.User.On("Create", mock.Anything, mock.AnythingOfType("*entity.UserProfile")).Return(nil)
	m.Session.On("Create", mock.Anything, mock.AnythingOfType("*entity.Session")).Return(nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "newuser",
		Email:    "new@mozilla.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "newuser", resp.Username)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, time.Minute)

	created := m.User.Calls[2].Arguments.Get(1).(*entity.UserProfile)
	assert.NotEqual(t, "correct horse", created.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("correct horse", created.PasswordHash))
}

func TestAuthService_Register_Errors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		_, repo := newTestRepos()
		svc := NewAuthService(repo, testConfig(), testLog)

		_, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "x", Email: "nope"})

		var validation *ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Contains(t, validation.Fields, "email")
		assert.Contains(t, validation.Fields, "password")
	})

	t.Run("email taken", func(t *testing.T) {
		m, repo := newTestRepos()
		svc := NewAuthService(repo, testConfig(), testLog)
		m.User.On("FindByEmail", mock.Anything, "taken@mozilla.com").Return(regularUser(), nil)

		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Username: "someone",
			Email:    "taken@mozilla.com",
			Password: "correct horse",
		})
		assert.True(t, errors.Is(err, ErrConflict))
	})

	t.Run("race on insert", func(t *testing.T) {
		m, repo := newTestRepos()
		svc := NewAuthService(repo, testConfig(), testLog)
		m.User.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil)
		m.User.On("FindByUsername", mock.Anything, mock.Anything).Return(nil, nil)
		m.User.On("Create", mock.Anything, mock.Anything).Return(errors.Wrap(repository.ErrAlreadyExists, "user"))

		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Username: "someone",
			Email:    "someone@mozilla.com",
			Password: "correct horse",
		})
		assert.True(t, errors.Is(err, ErrConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	user := regularUser()
	user.PasswordHash = hash

	t.Run("by username", func(t *testing.T) {
		m, repo := newTestRepos()
		svc := NewAuthService(repo, testConfig(), testLog)
		m.User.On("FindByEmail", mock.Anything, "regularuser").Return(nil, nil)
		m.User.On("FindByUsername", mock.Anything, "regularuser").Return(user, nil)
		m.User.On("Update", mock.Anything, user).Return(nil)
		m.Session.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Login(context.Background(), &request.LoginRequest{Username: "regularuser", Password: "correct horse"})

		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), resp.UserID)
		assert.NotNil(t, user.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		m, repo := newTestRepos()
		svc := NewAuthService(repo, testConfig(), testLog)
		m.User.On("FindByEmail", mock.Anything, "regular@mozilla.com").Return(user, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Username: "regular@mozilla.com", Password: "wrong"})
		assert.True(t, errors.Is(err, ErrUnauthorized))
		m.Session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("deleted account", func(t *testing.T) {
		m, repo := newTestRepos()
		svc := NewAuthService(repo, testConfig(), testLog)
		deleted := *user
		deleted.Deleted = true
		m.User.On("FindByEmail", mock.Anything, "regular@mozilla.com").Return(&deleted, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Username: "regular@mozilla.com", Password: "correct horse"})
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})
}

func TestAuthService_Logout(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewAuthService(repo, testConfig(), testLog)

	token := uuid.NewString()
	m.Session.On("Revoke", mock.Anything, token).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.True(t, errors.Is(svc.Logout(context.Background(), "not-a-token"), ErrInvalidInput))
}

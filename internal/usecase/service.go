package usecase

import (
	"marketplace/internal/data/repository"
	"marketplace/pkg/storage"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Access      AccessService
	Review      ReviewService
	Comm        CommService
	FxA         FxAService
	Commonplace CommonplaceService
}

func NewService(repo *repository.Repository, store storage.Storage, config *utils.Config, log *zap.Logger) *Service {
	user := NewUserService(repo, log)
	access := NewAccessService(repo, user, log)
	fxa := NewFxAService(config.FxA)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        user,
		Access:      access,
		Review:      NewReviewService(repo, log),
		Comm:        NewCommService(repo, access, log),
		FxA:         fxa,
		Commonplace: NewCommonplaceService(repo, store, fxa, config, log),
	}
}

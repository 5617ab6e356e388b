package wire

import (
	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, repo *repository.Repository, log *zap.Logger) {
	r.Post("/account/register", authHandler.Register)
	r.Post("/account/login", authHandler.Login)

	r.With(middleware.AuthSession(repo.Session, log)).Post("/account/logout", authHandler.Logout)
}

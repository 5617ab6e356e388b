package wire

import (
	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, repo *repository.Repository, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/account/profile", userHandler.GetProfile)
		r.Patch("/account/profile", userHandler.UpdateProfile)
		r.Get("/account/reviews", userHandler.Reviews)
		r.Get("/account/apps", userHandler.MyApps)
		r.Delete("/account", userHandler.DeleteAccount)
	})
}

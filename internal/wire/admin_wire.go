package wire

import (
	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin mounts routes for users whose groups grant *:*.
func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	checker middleware.AdminChecker,
	log *zap.Logger,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(checker, log))

		r.Get("/users", handler.User.ListUsers)

		r.Get("/groups", handler.Access.ListGroups)
		r.Post("/groups", handler.Access.CreateGroup)
		r.Post("/groups/{id}/members", handler.Access.AddMember)
		r.Delete("/groups/{id}/members/{userID}", handler.Access.RemoveMember)

		r.Post("/build-id", handler.Commonplace.SetBuildID)
	})
}

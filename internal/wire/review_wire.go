package wire

import (
	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, repo *repository.Repository, log *zap.Logger) {
	r.Get("/apps/{slug}/reviews", reviewHandler.GetAppReviews)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/reviews", reviewHandler.CreateReview)
		r.Post("/reviews/{id}/reply", reviewHandler.Reply)
		r.Patch("/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/reviews/{id}", reviewHandler.DeleteReview)
	})
}

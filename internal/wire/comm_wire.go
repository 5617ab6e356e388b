package wire

import (
	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComm(r chi.Router, commHandler *adaptor.CommHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/comm", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/apps/{slug}/threads", commHandler.AppThreads)
		r.Post("/apps/{slug}/notes", commHandler.PostNote)
		r.Get("/threads/{id}/notes", commHandler.ThreadNotes)
	})
}

package wire

import (
	"net/http"

	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/internal/regions"
	"marketplace/internal/usecase"
	"marketplace/pkg/middleware"
	"marketplace/pkg/storage"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. resolver may be nil, in
// which case pages never carry a region.
func Wiring(
	repo *repository.Repository,
	store storage.Storage,
	resolver regions.Resolver,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, store, config, logger)
	handler := adaptor.NewHandler(service, resolver, config, logger)

	router := setupRouter(handler, service, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)

	locale := middleware.Locale(middleware.ParseTags(config.App.Languages), fallbackLanguage(config))

	wireCommonplace(r, handler.Commonplace, locale)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(corsOrigins(config)))
		r.Use(locale)

		wireAuth(r, handler.Auth, repo, logger)
		wireUser(r, handler.User, repo, logger)
		wireReview(r, handler.Review, repo, logger)
		wireComm(r, handler.Comm, repo, logger)
		wireAdmin(r, handler, repo, service.Access, logger)
	})

	r.Handle("/metrics", middleware.MetricsHandler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

func fallbackLanguage(config *utils.Config) language.Tag {
	tag, err := language.Parse(config.App.LanguageCode)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// corsOrigins uses the configured list, or the same origins marketplace
// frames accept.
func corsOrigins(config *utils.Config) []string {
	if len(config.CORS.AllowedOrigins) > 0 {
		return config.CORS.AllowedOrigins
	}
	return usecase.AllowedOrigins(config.App.Domain, "https", config.App.Debug, true)
}
